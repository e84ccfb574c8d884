package sheets

import (
	"context"

	"fintrack/internal/core"
)

// Ports for outbound backup adapters.
type BackupWriter interface {
	// Append writes one transaction to the backup sheet and returns a
	// reference to the written row.
	Append(ctx context.Context, tx core.Transaction) (rowRef string, err error)
}
