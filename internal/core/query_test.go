package core

import (
	"testing"
	"time"
)

func TestSortTransactionsDateDescTieBreak(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	txs := []Transaction{
		{ID: 1, Date: NewDate(2024, 3, 10), CreatedAt: base},
		{ID: 2, Date: NewDate(2024, 3, 10), CreatedAt: base.Add(time.Hour)},
		{ID: 3, Date: NewDate(2024, 3, 11), CreatedAt: base},
	}

	SortTransactions(txs, SortDateDesc)
	got := ids(txs)
	want := []int64{3, 2, 1} // same-date rows ordered by recency of creation
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSortTransactionsKeys(t *testing.T) {
	cases := []struct {
		key  string
		want []int64
	}{
		{SortDateAsc, []int64{2, 1, 3}},
		{SortAmountDesc, []int64{1, 3, 2}},
		{SortAmountAsc, []int64{2, 3, 1}},
		{SortCategory, []int64{3, 1, 2}},
		{"bogus", []int64{3, 1, 2}}, // defaults to date_desc
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			txs := []Transaction{
				{ID: 1, Date: NewDate(2024, 3, 10), Amount: Money{Cents: 3000}, Category: "food"},
				{ID: 2, Date: NewDate(2024, 3, 8), Amount: Money{Cents: 1000}, Category: "travel"},
				{ID: 3, Date: NewDate(2024, 3, 12), Amount: Money{Cents: 2000}, Category: "bills"},
			}
			SortTransactions(txs, tc.key)
			got := ids(txs)
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("%s: expected %v, got %v", tc.key, tc.want, got)
				}
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	var txs []Transaction
	for i := 1; i <= 12; i++ {
		txs = append(txs, Transaction{ID: int64(i)})
	}

	page := Paginate(txs, 1, 5)
	if len(page.Items) != 5 || page.TotalPages != 3 || page.HasPrev || !page.HasNext {
		t.Fatalf("unexpected first page: %+v", page)
	}

	page = Paginate(txs, 3, 5)
	if len(page.Items) != 2 || !page.HasPrev || page.HasNext {
		t.Fatalf("unexpected last page: %+v", page)
	}

	// Page below 1 clamps to 1.
	page = Paginate(txs, 0, 5)
	if page.Number != 1 || len(page.Items) != 5 {
		t.Fatalf("expected clamp to page 1, got %+v", page)
	}

	// Past the end yields an empty page, not an error.
	page = Paginate(txs, 99, 5)
	if len(page.Items) != 0 || page.TotalItems != 12 {
		t.Fatalf("expected empty page past the end, got %+v", page)
	}

	page = Paginate(nil, 1, 5)
	if page.TotalPages != 1 || len(page.Items) != 0 {
		t.Fatalf("unexpected empty-ledger page: %+v", page)
	}
}
