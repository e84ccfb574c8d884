package core

import (
	"errors"
	"testing"
	"time"
)

func validTransaction() Transaction {
	return Transaction{
		OwnerID:     1,
		Kind:        Expense,
		Amount:      Money{Cents: 1250},
		Category:    "food",
		Description: "lunch",
		Date:        DateOf(time.Now().AddDate(0, 0, -1)),
	}
}

func TestTransactionValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Transaction)
		want   error
	}{
		{"valid", func(*Transaction) {}, nil},
		{"missing owner", func(tx *Transaction) { tx.OwnerID = 0 }, ErrMissingOwner},
		{"bad kind", func(tx *Transaction) { tx.Kind = "transfer" }, ErrInvalidKind},
		{"zero amount", func(tx *Transaction) { tx.Amount.Cents = 0 }, ErrInvalidAmount},
		{"amount over cap", func(tx *Transaction) { tx.Amount.Cents = MaxAmountCents + 1 }, ErrInvalidAmount},
		{"category from wrong kind", func(tx *Transaction) { tx.Category = "salary" }, ErrInvalidCategory},
		{"unknown category", func(tx *Transaction) { tx.Category = "crypto" }, ErrInvalidCategory},
		{"zero date", func(tx *Transaction) { tx.Date = Date{} }, ErrInvalidDate},
		{"future date", func(tx *Transaction) { tx.Date = DateOf(time.Now().AddDate(0, 0, 2)) }, ErrFutureDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := validTransaction()
			tc.mutate(&tx)
			err := tx.Validate()
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind(" income "); err != nil || k != Income {
		t.Fatalf("expected income, got %v (%v)", k, err)
	}
	if _, err := ParseKind("transfer"); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestDisplayHelpers(t *testing.T) {
	cases := []struct{ in, want string }{
		{"other_income", "Other Income"},
		{"food", "Food"},
		{"", "Uncategorized"},
		{"weird cat", "Weird Cat"},
	}
	for _, tc := range cases {
		if got := DisplayCategory(tc.in); got != tc.want {
			t.Fatalf("DisplayCategory(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
	if DisplayKind(Income) != "Income" || DisplayKind(Expense) != "Expense" {
		t.Fatal("unexpected kind labels")
	}
}

func TestKnownCategory(t *testing.T) {
	if !KnownCategory(Income, "salary") || KnownCategory(Expense, "salary") {
		t.Fatal("income and expense vocabularies must be disjoint")
	}
	if KnownCategory(Expense, "Food") {
		t.Fatal("category matching is case-sensitive")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil || d.String() != "2024-02-29" {
		t.Fatalf("leap day should parse, got %v (%v)", d, err)
	}
	if _, err := ParseDate("2023-02-29"); err == nil {
		t.Fatal("invalid leap day should fail")
	}
	if _, err := ParseDate("15/03/2024"); err == nil {
		t.Fatal("wrong format should fail")
	}
}
