// Package worker mirrors the ledger into the backup sheet. Sync requests
// normally arrive over AMQP; a periodic pending-row sweep covers messages
// the broker lost.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/sheets"
)

// Ledger is the slice of storage the worker needs.
type Ledger interface {
	Get(ctx context.Context, id int64) (core.Transaction, error)
	PendingSync(ctx context.Context, limit int) ([]int64, error)
	MarkSynced(ctx context.Context, id int64) error
	MarkSyncError(ctx context.Context, id int64) error
}

// SyncWorker copies transactions from SQLite to the backup sheet.
type SyncWorker struct {
	ledger    Ledger
	backup    sheets.BackupWriter
	batchSize int
}

func NewSyncWorker(ledger Ledger, backup sheets.BackupWriter, batchSize int) *SyncWorker {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &SyncWorker{
		ledger:    ledger,
		backup:    backup,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single sync request from AMQP. A row that
// was deleted between publish and delivery is treated as done.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"id", msg.ID,
		"version", msg.Version)

	if err := w.syncOne(ctx, msg.ID); err != nil {
		return fmt.Errorf("sync transaction %d: %w", msg.ID, err)
	}
	return nil
}

func (w *SyncWorker) syncOne(ctx context.Context, id int64) error {
	tx, err := w.ledger.Get(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		slog.InfoContext(ctx, "Transaction gone before sync, skipping", "id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load transaction: %w", err)
	}

	rowRef, err := w.backup.Append(ctx, tx)
	if err != nil {
		if markErr := w.ledger.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", id, "error", markErr)
		}
		return fmt.Errorf("append to backup: %w", err)
	}

	if err := w.ledger.MarkSynced(ctx, id); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}

	slog.InfoContext(ctx, "Transaction backed up", "id", id, "row_ref", rowRef)
	return nil
}

// ProcessPending sweeps rows still marked pending. This is the safety net
// for lost AMQP messages.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	ids, err := w.ledger.PendingSync(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending transactions: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending transactions", "count", len(ids))

	for _, id := range ids {
		if err := w.syncOne(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to sync pending transaction", "id", id, "error", err)
		}
	}
	return nil
}

// StartupSyncCheck drains a larger pending batch once at worker startup to
// recover from downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	ids, err := w.ledger.PendingSync(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending transactions for startup check: %w", err)
	}
	if len(ids) == 0 {
		slog.InfoContext(ctx, "No pending transactions found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending transactions on startup", "count", len(ids))

	synced, failed := 0, 0
	for _, id := range ids {
		if err := w.syncOne(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to sync transaction during startup", "id", id, "error", err)
			failed++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(ids),
		"synced", synced,
		"errors", failed)
	return nil
}

// RunPendingSweep runs ProcessPending on a fixed interval until the context
// is cancelled.
func (w *SyncWorker) RunPendingSweep(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.ProcessPending(ctx); err != nil {
				slog.ErrorContext(ctx, "Pending sweep failed", "error", err)
			}
		}
	}
}
