package core

import "testing"

func TestBuildSummaryCoversFullFilteredSet(t *testing.T) {
	// 12 rows, 7 of which match the filter; pagination shows only 5 but the
	// summary must cover all 7.
	var ledger []Transaction
	for i := 1; i <= 7; i++ {
		ledger = append(ledger, Transaction{
			ID: int64(i), Kind: Expense, Amount: Money{Cents: 1000},
			Category: "food", Date: NewDate(2024, 3, i),
		})
	}
	for i := 8; i <= 12; i++ {
		ledger = append(ledger, Transaction{
			ID: int64(i), Kind: Income, Amount: Money{Cents: 2000},
			Category: "salary", Date: NewDate(2024, 3, i),
		})
	}

	fs := ParseFilterSet(FilterInput{Category: "food"})
	filtered := fs.Apply(ledger)
	summary := BuildSummary(filtered, fs)

	if summary.Count != 7 {
		t.Fatalf("expected count 7, got %d", summary.Count)
	}
	if summary.TotalExpense != 70.0 || summary.TotalIncome != 0 {
		t.Fatalf("unexpected totals: %+v", summary)
	}
	if summary.NetBalance != -70.0 {
		t.Fatalf("expected net -70, got %v", summary.NetBalance)
	}

	page := Paginate(filtered, 1, DefaultPageSize)
	if len(page.Items) != 5 {
		t.Fatalf("expected 5 items on page, got %d", len(page.Items))
	}
	// The summary is independent of pagination.
	if summary.Count == len(page.Items) {
		t.Fatal("summary must not be page-scoped")
	}
}

func TestBuildSummaryMatchesIndependentFold(t *testing.T) {
	ledger := sampleLedger()
	fs := ParseFilterSet(FilterInput{Kind: "expense"})
	filtered := fs.Apply(ledger)

	var expense int64
	for _, tx := range filtered {
		expense += tx.Amount.Cents
	}

	summary := BuildSummary(filtered, fs)
	if summary.TotalExpense != (Money{Cents: expense}).Float64() {
		t.Fatalf("summary total %v does not match fold %v", summary.TotalExpense, expense)
	}
	if summary.ActiveFilters["kind"] != "expense" || len(summary.ActiveFilters) != 1 {
		t.Fatalf("unexpected active filters: %v", summary.ActiveFilters)
	}
}

func TestBuildSummaryEmptySet(t *testing.T) {
	summary := BuildSummary(nil, FilterSet{})
	if summary.Count != 0 || summary.TotalIncome != 0 || summary.TotalExpense != 0 || summary.NetBalance != 0 {
		t.Fatalf("expected zero-valued summary, got %+v", summary)
	}
	if len(summary.ActiveFilters) != 0 {
		t.Fatalf("expected no active filters, got %v", summary.ActiveFilters)
	}
}

func TestBuildSummarySkipsMalformedAmounts(t *testing.T) {
	txs := []Transaction{
		{Kind: Income, Amount: Money{Cents: 1000}},
		{Kind: Income, Amount: Money{Cents: 0}},
		{Kind: Expense, Amount: Money{Cents: -500}},
	}
	summary := BuildSummary(txs, FilterSet{})
	if summary.Count != 3 {
		t.Fatalf("count covers all rows, got %d", summary.Count)
	}
	if summary.TotalIncome != 10.0 || summary.TotalExpense != 0 {
		t.Fatalf("malformed amounts must be excluded from totals: %+v", summary)
	}
}
