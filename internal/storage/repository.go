// Package storage persists transactions in SQLite and exposes the scoped
// queries the read pipeline is built on. Every query is bound to a single
// owner id; rows from other owners can never leak into a result set.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

const (
	syncPending = "pending"
	syncDone    = "synced"
	syncError   = "error"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Create inserts a transaction and returns its id. The caller validates;
// storage only persists.
func (r *SQLiteRepository) Create(ctx context.Context, tx core.Transaction) (int64, error) {
	createdAt := tx.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (owner_id, kind, amount_cents, category, description, occurred_on, created_at, sync_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.OwnerID, string(tx.Kind), tx.Amount.Cents, tx.Category, tx.Description,
		tx.Date.String(), createdAt.Format(time.RFC3339Nano), syncPending)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"owner_id", tx.OwnerID,
		"kind", tx.Kind,
		"amount_cents", tx.Amount.Cents,
		"category", tx.Category)

	return id, nil
}

// Get returns a single transaction by id, regardless of owner. Ownership
// checks belong to the service layer, which distinguishes foreign rows
// from missing ones.
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, kind, amount_cents, category, description, occurred_on, created_at
		FROM transactions
		WHERE id = ? AND deleted_at IS NULL`, id)

	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return tx, nil
}

// Update overwrites the mutable fields of a transaction.
func (r *SQLiteRepository) Update(ctx context.Context, tx core.Transaction) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET kind = ?, amount_cents = ?, category = ?, description = ?, occurred_on = ?, sync_status = ?
		WHERE id = ? AND deleted_at IS NULL`,
		string(tx.Kind), tx.Amount.Cents, tx.Category, tx.Description, tx.Date.String(), syncPending, tx.ID)
	if err != nil {
		return fmt.Errorf("update transaction %d: %w", tx.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update rows affected: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction updated", "id", tx.ID, "owner_id", tx.OwnerID)
	return nil
}

// Delete soft-deletes a transaction so the backup worker can still observe it.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete rows affected: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// ListByOwner returns the owner's full ledger, newest first (occurred date
// descending, creation time breaking ties).
func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, kind, amount_cents, category, description, occurred_on, created_at
		FROM transactions
		WHERE owner_id = ? AND deleted_at IS NULL
		ORDER BY occurred_on DESC, created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list transactions for owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// SumByKind sums amounts of one kind, optionally bounded by an inclusive
// date range. Empty bounds mean all-time.
func (r *SQLiteRepository) SumByKind(ctx context.Context, ownerID int64, kind core.Kind, from, to core.Date) (core.Money, error) {
	query := `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM transactions
		WHERE owner_id = ? AND kind = ? AND amount_cents > 0 AND deleted_at IS NULL`
	args := []any{ownerID, string(kind)}
	query, args = appendDateBounds(query, args, from, to)

	var cents int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&cents); err != nil {
		return core.Money{}, fmt.Errorf("sum %s for owner %d: %w", kind, ownerID, err)
	}
	return core.Money{Cents: cents}, nil
}

// CategorySums groups one kind's amounts by category, ordered by total
// descending with category name ascending as the deterministic tie-break.
func (r *SQLiteRepository) CategorySums(ctx context.Context, ownerID int64, kind core.Kind, from, to core.Date) ([]core.CategoryAmount, error) {
	query := `
		SELECT category, SUM(amount_cents) AS total
		FROM transactions
		WHERE owner_id = ? AND kind = ? AND amount_cents > 0 AND deleted_at IS NULL`
	args := []any{ownerID, string(kind)}
	query, args = appendDateBounds(query, args, from, to)
	query += `
		GROUP BY category
		ORDER BY total DESC, category ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("category sums for owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	var sums []core.CategoryAmount
	for rows.Next() {
		var name string
		var cents int64
		if err := rows.Scan(&name, &cents); err != nil {
			return nil, fmt.Errorf("scan category sum: %w", err)
		}
		sums = append(sums, core.CategoryAmount{Name: name, Amount: core.Money{Cents: cents}})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category sums: %w", err)
	}
	return sums, nil
}

// Recent returns the owner's most recent transactions, ordered by occurred
// date descending then creation time descending.
func (r *SQLiteRepository) Recent(ctx context.Context, ownerID int64, limit int) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, kind, amount_cents, category, description, occurred_on, created_at
		FROM transactions
		WHERE owner_id = ? AND deleted_at IS NULL
		ORDER BY occurred_on DESC, created_at DESC
		LIMIT ?`, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent transactions for owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// CountByOwner returns the owner's total transaction count.
func (r *SQLiteRepository) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM transactions
		WHERE owner_id = ? AND deleted_at IS NULL`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count transactions for owner %d: %w", ownerID, err)
	}
	return count, nil
}

// DistinctCategories lists the categories the owner has actually used,
// sorted ascending, for the filter dropdown.
func (r *SQLiteRepository) DistinctCategories(ctx context.Context, ownerID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT category FROM transactions
		WHERE owner_id = ? AND deleted_at IS NULL
		ORDER BY category ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("distinct categories for owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	var cats []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return cats, nil
}

// PendingSync returns ids of rows the backup worker has not confirmed yet.
func (r *SQLiteRepository) PendingSync(ctx context.Context, limit int) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id FROM transactions
		WHERE sync_status = ? AND deleted_at IS NULL
		ORDER BY id ASC
		LIMIT ?`, syncPending, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync transactions: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan pending id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending ids: %w", err)
	}
	return ids, nil
}

// MarkSynced records a successful backup append.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE transactions SET sync_status = ? WHERE id = ?`, syncDone, id); err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}
	slog.InfoContext(ctx, "Transaction marked as synced", "id", id)
	return nil
}

// MarkSyncError records a failed backup append so the batch pass retries it.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE transactions SET sync_status = ? WHERE id = ?`, syncError, id); err != nil {
		return fmt.Errorf("mark transaction sync error: %w", err)
	}
	slog.WarnContext(ctx, "Transaction marked with sync error", "id", id)
	return nil
}

func appendDateBounds(query string, args []any, from, to core.Date) (string, []any) {
	if !from.IsEmpty() {
		query += " AND occurred_on >= ?"
		args = append(args, from.String())
	}
	if !to.IsEmpty() {
		query += " AND occurred_on <= ?"
		args = append(args, to.String())
	}
	return query, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		tx         core.Transaction
		kind       string
		occurredOn string
		createdAt  string
	)
	if err := row.Scan(&tx.ID, &tx.OwnerID, &kind, &tx.Amount.Cents, &tx.Category, &tx.Description, &occurredOn, &createdAt); err != nil {
		return core.Transaction{}, err
	}

	// Stored rows may predate today's vocabulary; keep kind text as-is and
	// let the core tolerate it.
	tx.Kind = core.Kind(kind)
	if d, err := core.ParseDate(occurredOn); err == nil {
		tx.Date = d
	}
	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		tx.CreatedAt = ts
	}
	return tx, nil
}

func collectTransactions(rows *sql.Rows) ([]core.Transaction, error) {
	var txs []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}
