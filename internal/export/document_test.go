package export

import (
	"errors"
	"testing"
	"time"

	"fintrack/internal/core"
)

func tx(kind core.Kind, cents int64, category, date string) core.Transaction {
	d, _ := core.ParseDate(date)
	return core.Transaction{Kind: kind, Amount: core.Money{Cents: cents}, Category: category, Date: d}
}

func TestBuildDocumentEmpty(t *testing.T) {
	_, err := BuildDocument(nil, 1, time.Now())
	if !errors.Is(err, core.ErrNoTransactions) {
		t.Errorf("BuildDocument(empty) error = %v, want ErrNoTransactions", err)
	}
}

func TestBuildDocumentSummary(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	txs := []core.Transaction{
		tx(core.Income, 500000, "salary", "2025-03-01"),
		tx(core.Expense, 12500, "food", "2025-03-05"),
		tx(core.Expense, 30000, "travel", "2025-03-08"),
	}

	doc, err := BuildDocument(txs, 42, now)
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}

	s := doc.Summary
	if s.OwnerID != 42 || s.Count != 3 || s.IncomeCount != 1 || s.ExpenseCount != 2 {
		t.Errorf("Summary counts = %+v", s)
	}
	if s.TotalIncome.Cents != 500000 || s.TotalExpense.Cents != 42500 {
		t.Errorf("Summary totals = income %d, expense %d", s.TotalIncome.Cents, s.TotalExpense.Cents)
	}
	if s.NetBalance.Cents != 457500 {
		t.Errorf("NetBalance = %d, want 457500", s.NetBalance.Cents)
	}
	if !s.GeneratedAt.Equal(now) {
		t.Errorf("GeneratedAt = %v, want %v", s.GeneratedAt, now)
	}
}

func TestBuildDocumentSignsAmounts(t *testing.T) {
	txs := []core.Transaction{
		tx(core.Income, 500000, "salary", "2025-03-01"),
		tx(core.Expense, 12500, "food", "2025-03-05"),
	}

	doc, err := BuildDocument(txs, 1, time.Now())
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}
	if len(doc.Transactions) != 2 {
		t.Fatalf("got %d rows, want 2", len(doc.Transactions))
	}
	if doc.Transactions[0].Amount.Cents != 500000 {
		t.Errorf("income row amount = %d, want positive 500000", doc.Transactions[0].Amount.Cents)
	}
	if doc.Transactions[1].Amount.Cents != -12500 {
		t.Errorf("expense row amount = %d, want -12500", doc.Transactions[1].Amount.Cents)
	}
	if doc.Transactions[0].Kind != "Income" || doc.Transactions[1].Category != "Food" {
		t.Errorf("display fields = %q/%q", doc.Transactions[0].Kind, doc.Transactions[1].Category)
	}
}

func TestBuildDocumentBreakdownSortedByName(t *testing.T) {
	txs := []core.Transaction{
		tx(core.Expense, 3000, "travel", "2025-03-01"),
		tx(core.Expense, 2000, "food", "2025-03-02"),
		tx(core.Income, 50000, "salary", "2025-03-03"),
		tx(core.Expense, 1000, "food", "2025-03-04"),
	}

	doc, err := BuildDocument(txs, 1, time.Now())
	if err != nil {
		t.Fatalf("BuildDocument() error = %v", err)
	}

	want := []CategoryLine{
		{Category: "food", Expense: core.Money{Cents: 3000}, Net: core.Money{Cents: -3000}},
		{Category: "salary", Income: core.Money{Cents: 50000}, Net: core.Money{Cents: 50000}},
		{Category: "travel", Expense: core.Money{Cents: 3000}, Net: core.Money{Cents: -3000}},
	}
	if len(doc.Categories) != len(want) {
		t.Fatalf("got %d category lines, want %d", len(doc.Categories), len(want))
	}
	for i := range want {
		if doc.Categories[i] != want[i] {
			t.Errorf("Categories[%d] = %+v, want %+v", i, doc.Categories[i], want[i])
		}
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 3, 15, 10, 30, 45, 0, time.UTC)
	got := Filename(7, now)
	want := "transactions_7_20250315_103045.xlsx"
	if got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}
