package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// CategoryShare is a category total annotated with its percentage of the
// aggregation's grand total, rounded to one decimal.
type CategoryShare struct {
	Name       string  `json:"name"`
	Label      string  `json:"label"`
	Icon       string  `json:"icon"`
	Color      string  `json:"color"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Breakdown is a category-grouped, percentage-annotated aggregation for one
// kind within a resolved period.
type Breakdown struct {
	Categories []CategoryShare `json:"categories"`
	Total      float64         `json:"total"`
	Period     string          `json:"period"`
	StartDate  string          `json:"start_date,omitempty"`
	EndDate    string          `json:"end_date,omitempty"`
}

// CategoryTotals groups txs of the given kind by category and sums amounts
// per group, ordered by amount descending with ties broken by category name
// ascending. Rows with non-positive amounts are invalid at write time and
// carry no semantic value, so they are skipped rather than skewing totals.
func CategoryTotals(txs []Transaction, kind Kind) []CategoryAmount {
	sums := make(map[string]int64)
	for _, tx := range txs {
		if tx.Kind != kind || tx.Amount.Cents <= 0 {
			continue
		}
		sums[tx.Category] += tx.Amount.Cents
	}

	totals := make([]CategoryAmount, 0, len(sums))
	for name, cents := range sums {
		totals = append(totals, CategoryAmount{Name: name, Amount: Money{Cents: cents}})
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Amount.Cents != totals[j].Amount.Cents {
			return totals[i].Amount.Cents > totals[j].Amount.Cents
		}
		return totals[i].Name < totals[j].Name
	})
	return totals
}

// BuildBreakdown annotates category totals with one-decimal percentages of
// their combined sum. The percentage base is the sum across the given
// totals only, never the grand total across both kinds. A zero total yields
// zero percentages for every category.
func BuildBreakdown(totals []CategoryAmount, period string, start, end Date) Breakdown {
	var totalCents int64
	for _, ca := range totals {
		totalCents += ca.Amount.Cents
	}

	bd := Breakdown{
		Categories: make([]CategoryShare, 0, len(totals)),
		Total:      Money{Cents: totalCents}.Float64(),
		Period:     period,
		StartDate:  start.String(),
		EndDate:    end.String(),
	}
	for _, ca := range totals {
		bd.Categories = append(bd.Categories, CategoryShare{
			Name:       ca.Name,
			Label:      DisplayCategory(ca.Name),
			Icon:       CategoryIcon(ca.Name),
			Color:      CategoryColor(ca.Name),
			Amount:     ca.Amount.Float64(),
			Percentage: Percentage(ca.Amount, Money{Cents: totalCents}),
		})
	}
	return bd
}

// Percentage computes part/total*100 rounded to one decimal using exact
// decimal arithmetic, or 0 when the total is zero.
func Percentage(part, total Money) float64 {
	if total.Cents == 0 {
		return 0
	}
	pct := decimal.New(part.Cents, 0).
		Div(decimal.New(total.Cents, 0)).
		Mul(decimal.NewFromInt(100)).
		Round(1)
	f, _ := pct.Float64()
	return f
}

// SavingsRate returns (income-expense)/income*100 rounded to one decimal.
// Defined as exactly 0 when income is zero, regardless of expense.
func SavingsRate(monthIncome, monthExpense Money) float64 {
	if monthIncome.Cents <= 0 {
		return 0
	}
	rate := decimal.New(monthIncome.Cents-monthExpense.Cents, 0).
		Div(decimal.New(monthIncome.Cents, 0)).
		Mul(decimal.NewFromInt(100)).
		Round(1)
	f, _ := rate.Float64()
	return f
}
