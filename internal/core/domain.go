package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

type (
	// Kind is the income/expense tag distinguishing transaction direction.
	Kind string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a single ledger entry scoped to one owner. Amount is
	// always non-negative; direction is carried by Kind, not by sign.
	Transaction struct {
		ID          int64     `json:"id"`
		OwnerID     int64     `json:"owner_id"`
		Kind        Kind      `json:"kind"`
		Amount      Money     `json:"amount"`
		Category    string    `json:"category"`
		Description string    `json:"description"`
		Date        Date      `json:"date"`       // calendar date the transaction took effect
		CreatedAt   time.Time `json:"created_at"` // creation timestamp, tie-breaker for ordering
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidKind     = errors.New("invalid transaction kind")
	ErrInvalidCategory = errors.New("invalid category for kind")
	ErrInvalidDate     = errors.New("invalid date")
	ErrFutureDate      = errors.New("transaction date cannot be in the future")
	ErrDescriptionLong = errors.New("description too long (max 500 characters)")
	ErrNotFound        = errors.New("transaction not found")
	ErrForbidden       = errors.New("transaction belongs to another owner")
	ErrNoTransactions  = errors.New("no transactions to export")
	ErrMissingOwner    = errors.New("missing owner")
)

// ParseKind validates a stored kind string. Storage keeps kinds as text;
// everything past this point works with the closed Kind type.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.TrimSpace(s)) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	}
	return "", ErrInvalidKind
}

func (k Kind) Valid() bool {
	return k == Income || k == Expense
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// IsEmpty reports whether the date is absent (optional dates use the zero value).
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d falls strictly after other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// MarshalJSON renders the date as "YYYY-MM-DD", or null when absent.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD" or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// MaxAmountCents caps a single transaction at 99,999,999.99.
const MaxAmountCents = 9_999_999_999

/// Validate checks a transaction at write time. Read paths never call this:
// they tolerate malformed stored rows instead of failing.
func (t Transaction) Validate() error {
	if t.OwnerID <= 0 {
		return ErrMissingOwner
	}
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if t.Amount.Cents > MaxAmountCents {
		return ErrInvalidAmount
	}
	if !KnownCategory(t.Kind, t.Category) {
		return ErrInvalidCategory
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if t.Date.After(DateOf(time.Now())) {
		return ErrFutureDate
	}
	if len(t.Description) > 500 {
		return ErrDescriptionLong
	}
	return nil
}
