package core

// Summary describes a fully filtered transaction set: counts, totals and
// the filters that produced it. It is always computed over the complete
// filtered set, never over a single display page.
type Summary struct {
	Count         int               `json:"count"`
	TotalIncome   float64           `json:"total_income"`
	TotalExpense  float64           `json:"total_expense"`
	NetBalance    float64           `json:"net_balance"`
	ActiveFilters map[string]string `json:"active_filters"`
}

// BuildSummary folds the filtered set into totals and records the filters
// the engine actually applied. Rows with non-positive amounts contribute
// nothing.
func BuildSummary(filtered []Transaction, fs FilterSet) Summary {
	var income, expense Money
	for _, tx := range filtered {
		if tx.Amount.Cents <= 0 {
			continue
		}
		switch tx.Kind {
		case Income:
			income = income.Add(tx.Amount)
		case Expense:
			expense = expense.Add(tx.Amount)
		}
	}
	return Summary{
		Count:         len(filtered),
		TotalIncome:   income.Float64(),
		TotalExpense:  expense.Float64(),
		NetBalance:    income.Sub(expense).Float64(),
		ActiveFilters: fs.Active(),
	}
}
