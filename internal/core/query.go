package core

import "sort"

// Sort keys accepted by the transaction list view.
const (
	SortDateDesc   = "date_desc"
	SortDateAsc    = "date_asc"
	SortAmountDesc = "amount_desc"
	SortAmountAsc  = "amount_asc"
	SortCategory   = "category"
)

// DefaultPageSize is the fixed page size of the transaction list view.
const DefaultPageSize = 5

// ParseSortKey validates a sort key, defaulting to date descending.
func ParseSortKey(s string) string {
	switch s {
	case SortDateDesc, SortDateAsc, SortAmountDesc, SortAmountAsc, SortCategory:
		return s
	}
	return SortDateDesc
}

// SortTransactions orders txs in place by the given key. Date ordering
// breaks ties on CreatedAt in the same direction; other keys rely on the
// stable sort to preserve the incoming order for equal elements.
func SortTransactions(txs []Transaction, key string) {
	switch ParseSortKey(key) {
	case SortDateAsc:
		sort.SliceStable(txs, func(i, j int) bool {
			if !txs[i].Date.Equal(txs[j].Date.Time) {
				return txs[i].Date.Before(txs[j].Date)
			}
			return txs[i].CreatedAt.Before(txs[j].CreatedAt)
		})
	case SortAmountDesc:
		sort.SliceStable(txs, func(i, j int) bool {
			return txs[i].Amount.Cents > txs[j].Amount.Cents
		})
	case SortAmountAsc:
		sort.SliceStable(txs, func(i, j int) bool {
			return txs[i].Amount.Cents < txs[j].Amount.Cents
		})
	case SortCategory:
		sort.SliceStable(txs, func(i, j int) bool {
			return txs[i].Category < txs[j].Category
		})
	default: // date_desc
		sort.SliceStable(txs, func(i, j int) bool {
			if !txs[i].Date.Equal(txs[j].Date.Time) {
				return txs[i].Date.After(txs[j].Date)
			}
			return txs[i].CreatedAt.After(txs[j].CreatedAt)
		})
	}
}

// Page is one display page of a larger result set.
type Page struct {
	Items      []Transaction
	Number     int
	PerPage    int
	TotalItems int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// Paginate slices txs into the requested page. Page numbers below 1 clamp
// to 1; a page past the end yields an empty item list rather than an error.
func Paginate(txs []Transaction, page, perPage int) Page {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPageSize
	}

	total := len(txs)
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Items:      txs[start:end],
		Number:     page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}
