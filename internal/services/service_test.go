package services

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"fintrack/internal/core"
)

// fakeLedger is an in-memory Ledger for service tests.
type fakeLedger struct {
	rows      map[int64]core.Transaction
	nextID    int64
	published []int64
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{rows: map[int64]core.Transaction{}, nextID: 1}
}

func (f *fakeLedger) Create(_ context.Context, tx core.Transaction) (int64, error) {
	tx.ID = f.nextID
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}
	f.rows[tx.ID] = tx
	f.nextID++
	return tx.ID, nil
}

func (f *fakeLedger) Get(_ context.Context, id int64) (core.Transaction, error) {
	tx, ok := f.rows[id]
	if !ok {
		return core.Transaction{}, core.ErrNotFound
	}
	return tx, nil
}

func (f *fakeLedger) Update(_ context.Context, tx core.Transaction) error {
	if _, ok := f.rows[tx.ID]; !ok {
		return core.ErrNotFound
	}
	f.rows[tx.ID] = tx
	return nil
}

func (f *fakeLedger) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeLedger) ListByOwner(_ context.Context, ownerID int64) ([]core.Transaction, error) {
	var out []core.Transaction
	for _, tx := range f.rows {
		if tx.OwnerID == ownerID {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeLedger) SumByKind(ctx context.Context, ownerID int64, kind core.Kind, from, to core.Date) (core.Money, error) {
	txs, _ := f.ListByOwner(ctx, ownerID)
	var sum core.Money
	for _, tx := range txs {
		if tx.Kind == kind && inRange(tx.Date, from, to) {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum, nil
}

func (f *fakeLedger) CategorySums(ctx context.Context, ownerID int64, kind core.Kind, from, to core.Date) ([]core.CategoryAmount, error) {
	txs, _ := f.ListByOwner(ctx, ownerID)
	var inKind []core.Transaction
	for _, tx := range txs {
		if tx.Kind == kind && inRange(tx.Date, from, to) {
			inKind = append(inKind, tx)
		}
	}
	return core.CategoryTotals(inKind, kind), nil
}

func (f *fakeLedger) Recent(ctx context.Context, ownerID int64, limit int) ([]core.Transaction, error) {
	txs, _ := f.ListByOwner(ctx, ownerID)
	core.SortTransactions(txs, core.SortDateDesc)
	if len(txs) > limit {
		txs = txs[:limit]
	}
	return txs, nil
}

func (f *fakeLedger) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	txs, _ := f.ListByOwner(ctx, ownerID)
	return int64(len(txs)), nil
}

func (f *fakeLedger) DistinctCategories(ctx context.Context, ownerID int64) ([]string, error) {
	txs, _ := f.ListByOwner(ctx, ownerID)
	seen := map[string]struct{}{}
	var out []string
	for _, tx := range txs {
		if _, ok := seen[tx.Category]; !ok {
			seen[tx.Category] = struct{}{}
			out = append(out, tx.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func inRange(d, from, to core.Date) bool {
	if !from.IsEmpty() && d.Before(from) {
		return false
	}
	if !to.IsEmpty() && d.After(to) {
		return false
	}
	return true
}

type fakePublisher struct {
	ids []int64
	err error
}

func (p *fakePublisher) PublishTransactionSync(_ context.Context, id, _ int64) error {
	if p.err != nil {
		return p.err
	}
	p.ids = append(p.ids, id)
	return nil
}

func newTx(owner int64, kind core.Kind, cents int64, category, date string) core.Transaction {
	d, _ := core.ParseDate(date)
	return core.Transaction{
		OwnerID:  owner,
		Kind:     kind,
		Amount:   core.Money{Cents: cents},
		Category: category,
		Date:     d,
	}
}

func TestCreatePublishesSync(t *testing.T) {
	ledger := newFakeLedger()
	pub := &fakePublisher{}
	svc := NewTransactionService(ledger, pub)

	id, err := svc.Create(context.Background(), newTx(1, core.Expense, 1200, "food", "2025-03-10"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(pub.ids) != 1 || pub.ids[0] != id {
		t.Errorf("published ids = %v, want [%d]", pub.ids, id)
	}
}

func TestCreateRejectsInvalid(t *testing.T) {
	svc := NewTransactionService(newFakeLedger(), &fakePublisher{})

	bad := newTx(1, core.Expense, 0, "food", "2025-03-10")
	if _, err := svc.Create(context.Background(), bad); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("Create() error = %v, want ErrInvalidAmount", err)
	}
}

func TestCreateSurvivesPublishFailure(t *testing.T) {
	ledger := newFakeLedger()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewTransactionService(ledger, pub)

	id, err := svc.Create(context.Background(), newTx(1, core.Expense, 1200, "food", "2025-03-10"))
	if err != nil {
		t.Fatalf("Create() error = %v, want nil despite publish failure", err)
	}
	if _, ok := ledger.rows[id]; !ok {
		t.Error("transaction was not saved")
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	ledger := newFakeLedger()
	svc := NewTransactionService(ledger, nil)
	id, _ := svc.Create(context.Background(), newTx(1, core.Expense, 1200, "food", "2025-03-10"))

	if _, err := svc.Get(context.Background(), 2, id); !errors.Is(err, core.ErrForbidden) {
		t.Errorf("Get() foreign owner error = %v, want ErrForbidden", err)
	}
	if _, err := svc.Get(context.Background(), 1, 999); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Get() missing error = %v, want ErrNotFound", err)
	}
}

func TestUpdateKeepsOwnerAndCreation(t *testing.T) {
	ledger := newFakeLedger()
	pub := &fakePublisher{}
	svc := NewTransactionService(ledger, pub)
	ctx := context.Background()

	id, _ := svc.Create(ctx, newTx(1, core.Expense, 1200, "food", "2025-03-10"))
	created := ledger.rows[id].CreatedAt

	updated := newTx(999, core.Expense, 3400, "travel", "2025-03-12")
	updated.ID = id
	if err := svc.Update(ctx, 1, updated); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got := ledger.rows[id]
	if got.OwnerID != 1 {
		t.Errorf("Update() must not reassign owner, got %d", got.OwnerID)
	}
	if !got.CreatedAt.Equal(created) {
		t.Error("Update() must preserve creation time")
	}
	if got.Category != "travel" || got.Amount.Cents != 3400 {
		t.Errorf("Update() fields = %+v", got)
	}
}

func TestUpdateForeignRowForbidden(t *testing.T) {
	ledger := newFakeLedger()
	svc := NewTransactionService(ledger, nil)
	ctx := context.Background()

	id, _ := svc.Create(ctx, newTx(1, core.Expense, 1200, "food", "2025-03-10"))

	foreign := newTx(2, core.Expense, 500, "food", "2025-03-11")
	foreign.ID = id
	if err := svc.Update(ctx, 2, foreign); !errors.Is(err, core.ErrForbidden) {
		t.Errorf("Update() error = %v, want ErrForbidden", err)
	}
}

func TestDelete(t *testing.T) {
	ledger := newFakeLedger()
	pub := &fakePublisher{}
	svc := NewTransactionService(ledger, pub)
	ctx := context.Background()

	id, _ := svc.Create(ctx, newTx(1, core.Expense, 1200, "food", "2025-03-10"))

	if err := svc.Delete(ctx, 2, id); !errors.Is(err, core.ErrForbidden) {
		t.Errorf("Delete() foreign error = %v, want ErrForbidden", err)
	}
	if err := svc.Delete(ctx, 1, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := svc.Delete(ctx, 1, id); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}
}
