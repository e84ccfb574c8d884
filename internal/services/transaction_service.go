// Package services orchestrates ledger operations across storage, the
// message broker, and the aggregation core.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/core"
)

// Ledger is the storage surface the services build on.
type Ledger interface {
	Create(ctx context.Context, tx core.Transaction) (int64, error)
	Get(ctx context.Context, id int64) (core.Transaction, error)
	Update(ctx context.Context, tx core.Transaction) error
	Delete(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]core.Transaction, error)
	SumByKind(ctx context.Context, ownerID int64, kind core.Kind, from, to core.Date) (core.Money, error)
	CategorySums(ctx context.Context, ownerID int64, kind core.Kind, from, to core.Date) ([]core.CategoryAmount, error)
	Recent(ctx context.Context, ownerID int64, limit int) ([]core.Transaction, error)
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)
	DistinctCategories(ctx context.Context, ownerID int64) ([]string, error)
}

// SyncPublisher notifies the backup worker about changed rows.
type SyncPublisher interface {
	PublishTransactionSync(ctx context.Context, id, version int64) error
}

// TransactionService handles writes: validation, ownership checks, and the
// backup notification that follows every change.
type TransactionService struct {
	ledger    Ledger
	publisher SyncPublisher
}

func NewTransactionService(ledger Ledger, publisher SyncPublisher) *TransactionService {
	return &TransactionService{
		ledger:    ledger,
		publisher: publisher,
	}
}

// Create validates and saves a new transaction, then publishes a sync
// message. Publish failures never fail the request; the pending sweep
// covers them.
func (s *TransactionService) Create(ctx context.Context, tx core.Transaction) (int64, error) {
	if err := tx.Validate(); err != nil {
		return 0, err
	}

	id, err := s.ledger.Create(ctx, tx)
	if err != nil {
		return 0, fmt.Errorf("save transaction: %w", err)
	}

	s.publishSync(ctx, id, 1)
	return id, nil
}

// Get loads a transaction the owner is allowed to see. A row belonging to
// someone else yields ErrForbidden, not ErrNotFound, so handlers can tell
// the cases apart.
func (s *TransactionService) Get(ctx context.Context, ownerID, id int64) (core.Transaction, error) {
	tx, err := s.ledger.Get(ctx, id)
	if err != nil {
		return core.Transaction{}, err
	}
	if tx.OwnerID != ownerID {
		return core.Transaction{}, core.ErrForbidden
	}
	return tx, nil
}

// Update replaces the mutable fields of an owned transaction.
func (s *TransactionService) Update(ctx context.Context, ownerID int64, tx core.Transaction) error {
	existing, err := s.Get(ctx, ownerID, tx.ID)
	if err != nil {
		return err
	}

	tx.OwnerID = existing.OwnerID
	tx.CreatedAt = existing.CreatedAt
	if err := tx.Validate(); err != nil {
		return err
	}

	if err := s.ledger.Update(ctx, tx); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	s.publishSync(ctx, tx.ID, 2)
	return nil
}

// Delete removes an owned transaction.
func (s *TransactionService) Delete(ctx context.Context, ownerID, id int64) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}

	if err := s.ledger.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.publishSync(ctx, id, 3)
	return nil
}

func (s *TransactionService) publishSync(ctx context.Context, id, version int64) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Sync publisher not available, skipping sync message", "id", id)
		return
	}
	if err := s.publisher.PublishTransactionSync(ctx, id, version); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message", "id", id, "error", err)
	}
}
