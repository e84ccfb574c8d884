package core

import (
	"math"
	"testing"
)

func TestCategoryTotalsDeterministicOrder(t *testing.T) {
	txs := []Transaction{
		{Kind: Expense, Amount: Money{Cents: 2000}, Category: "food"},
		{Kind: Expense, Amount: Money{Cents: 1000}, Category: "food"},
		{Kind: Expense, Amount: Money{Cents: 3000}, Category: "travel"},
		{Kind: Income, Amount: Money{Cents: 9999}, Category: "salary"}, // other kind ignored
		{Kind: Expense, Amount: Money{Cents: 0}, Category: "bills"},    // invalid row skipped
	}

	totals := CategoryTotals(txs, Expense)
	if len(totals) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(totals))
	}
	// food and travel tie at 3000; the tie-break is category name ascending.
	if totals[0].Name != "food" || totals[0].Amount.Cents != 3000 {
		t.Fatalf("expected food/3000 first, got %s/%d", totals[0].Name, totals[0].Amount.Cents)
	}
	if totals[1].Name != "travel" || totals[1].Amount.Cents != 3000 {
		t.Fatalf("expected travel/3000 second, got %s/%d", totals[1].Name, totals[1].Amount.Cents)
	}
}

func TestBuildBreakdownPercentages(t *testing.T) {
	totals := []CategoryAmount{
		{Name: "food", Amount: Money{Cents: 3000}},
		{Name: "travel", Amount: Money{Cents: 3000}},
	}
	bd := BuildBreakdown(totals, PeriodThisMonth, NewDate(2024, 3, 1), NewDate(2024, 3, 15))

	if bd.Total != 60.0 {
		t.Fatalf("expected total 60, got %v", bd.Total)
	}
	for _, c := range bd.Categories {
		if c.Percentage != 50.0 {
			t.Fatalf("%s: expected 50.0%%, got %v", c.Name, c.Percentage)
		}
		if c.Amount > bd.Total {
			t.Fatalf("%s: amount %v exceeds total %v", c.Name, c.Amount, bd.Total)
		}
	}
	if bd.Period != PeriodThisMonth || bd.StartDate != "2024-03-01" || bd.EndDate != "2024-03-15" {
		t.Fatalf("unexpected period window: %+v", bd)
	}
}

func TestBreakdownPercentagesSumToHundred(t *testing.T) {
	totals := []CategoryAmount{
		{Name: "food", Amount: Money{Cents: 3333}},
		{Name: "bills", Amount: Money{Cents: 3333}},
		{Name: "travel", Amount: Money{Cents: 3334}},
	}
	bd := BuildBreakdown(totals, PeriodAllTime, Date{}, Date{})

	var sum float64
	for _, c := range bd.Categories {
		sum += c.Percentage
	}
	if math.Abs(sum-100.0) > 0.2 {
		t.Fatalf("percentages should sum to ~100, got %v", sum)
	}
}

func TestBuildBreakdownZeroTotal(t *testing.T) {
	bd := BuildBreakdown(nil, PeriodThisMonth, Date{}, Date{})
	if bd.Total != 0 || len(bd.Categories) != 0 {
		t.Fatalf("expected empty breakdown, got %+v", bd)
	}

	// Zero-amount categories must not divide by zero.
	bd = BuildBreakdown([]CategoryAmount{{Name: "food", Amount: Money{}}}, PeriodThisMonth, Date{}, Date{})
	if bd.Categories[0].Percentage != 0 {
		t.Fatalf("expected 0%% on zero total, got %v", bd.Categories[0].Percentage)
	}
}

func TestBuildBreakdownUnknownCategoryDisplay(t *testing.T) {
	totals := []CategoryAmount{{Name: "crypto_stuff", Amount: Money{Cents: 100}}}
	bd := BuildBreakdown(totals, PeriodAllTime, Date{}, Date{})

	c := bd.Categories[0]
	if c.Label != "Crypto Stuff" {
		t.Fatalf("unexpected label %q", c.Label)
	}
	if c.Icon != "fa-circle" || c.Color != "secondary" {
		t.Fatalf("expected default icon/color for unknown category, got %s/%s", c.Icon, c.Color)
	}
}

func TestSavingsRate(t *testing.T) {
	cases := []struct {
		name    string
		income  int64
		expense int64
		want    float64
	}{
		{"half saved", 200000, 100000, 50.0},
		{"overspent", 100000, 150000, -50.0},
		{"one decimal rounding", 300000, 100000, 66.7},
		{"zero income", 0, 0, 0},
		// Zero income with positive expenses still reports 0.
		{"zero income positive expense", 0, 50000, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SavingsRate(Money{Cents: tc.income}, Money{Cents: tc.expense})
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestPercentage(t *testing.T) {
	if got := Percentage(Money{Cents: 1}, Money{Cents: 3}); got != 33.3 {
		t.Fatalf("expected 33.3, got %v", got)
	}
	if got := Percentage(Money{Cents: 5}, Money{}); got != 0 {
		t.Fatalf("expected 0 on zero total, got %v", got)
	}
}
