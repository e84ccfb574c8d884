package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FilterInput carries the raw filter strings exactly as they arrive from a
// query string or form. All fields are optional; empty means no constraint.
type FilterInput struct {
	Search    string
	Kind      string
	Category  string
	DateFrom  string
	DateTo    string
	MinAmount string
	MaxAmount string
}

// FilterSet is the parsed, typed form of FilterInput. A zero field means the
// criterion is absent and imposes no constraint. Malformed date or amount
// input is dropped during parsing, never surfaced as an error: a bad query
// string must not break the results page.
type FilterSet struct {
	Search    string
	Kind      Kind
	Category  string
	DateFrom  Date
	DateTo    Date
	MinAmount *Money
	MaxAmount *Money
}

// ParseFilterSet builds a FilterSet from raw input, leniently: unparseable
// dates and amounts are treated as absent.
func ParseFilterSet(in FilterInput) FilterSet {
	fs := FilterSet{
		Search:   strings.TrimSpace(in.Search),
		Category: strings.TrimSpace(in.Category),
	}
	if kind, err := ParseKind(in.Kind); err == nil {
		fs.Kind = kind
	}
	if d, err := ParseDate(in.DateFrom); err == nil && strings.TrimSpace(in.DateFrom) != "" {
		fs.DateFrom = d
	}
	if d, err := ParseDate(in.DateTo); err == nil && strings.TrimSpace(in.DateTo) != "" {
		fs.DateTo = d
	}
	fs.MinAmount = parseOptionalAmount(in.MinAmount)
	fs.MaxAmount = parseOptionalAmount(in.MaxAmount)
	return fs
}

// parseOptionalAmount converts a raw bound to cents, half-up on the third
// decimal. Unlike write-path amounts, zero is a legal bound here.
func parseOptionalAmount(s string) *Money {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return nil
	}
	return &Money{Cents: d.Shift(2).Round(0).IntPart()}
}

// Apply returns the subset of txs matching every present criterion. Filters
// compose as a logical AND and the operation is idempotent: applying the
// same FilterSet twice yields the same result as applying it once.
func (fs FilterSet) Apply(txs []Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if fs.Matches(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// Matches reports whether a single transaction passes every present filter.
func (fs FilterSet) Matches(tx Transaction) bool {
	if fs.Search != "" {
		// A missing description never matches a non-empty search term.
		if tx.Description == "" {
			return false
		}
		if !strings.Contains(strings.ToLower(tx.Description), strings.ToLower(fs.Search)) {
			return false
		}
	}
	if fs.Kind != "" && tx.Kind != fs.Kind {
		return false
	}
	// Category matching is exact and case-sensitive against stored text.
	if fs.Category != "" && tx.Category != fs.Category {
		return false
	}
	if !fs.DateFrom.IsEmpty() && tx.Date.Before(fs.DateFrom) {
		return false
	}
	if !fs.DateTo.IsEmpty() && tx.Date.After(fs.DateTo) {
		return false
	}
	if fs.MinAmount != nil && tx.Amount.Cents < fs.MinAmount.Cents {
		return false
	}
	if fs.MaxAmount != nil && tx.Amount.Cents > fs.MaxAmount.Cents {
		return false
	}
	return true
}

// Active returns the criteria that actually constrained the query, keyed by
// filter name. Criteria dropped during lenient parsing do not appear: the
// map mirrors exactly what Apply enforced.
func (fs FilterSet) Active() map[string]string {
	active := make(map[string]string)
	if fs.Search != "" {
		active["search"] = fs.Search
	}
	if fs.Kind != "" {
		active["kind"] = string(fs.Kind)
	}
	if fs.Category != "" {
		active["category"] = fs.Category
	}
	if !fs.DateFrom.IsEmpty() {
		active["date_from"] = fs.DateFrom.String()
	}
	if !fs.DateTo.IsEmpty() {
		active["date_to"] = fs.DateTo.String()
	}
	if fs.MinAmount != nil {
		active["min_amount"] = fs.MinAmount.Decimal().StringFixed(2)
	}
	if fs.MaxAmount != nil {
		active["max_amount"] = fs.MaxAmount.Decimal().StringFixed(2)
	}
	return active
}

// IsEmpty reports whether no criterion is present.
func (fs FilterSet) IsEmpty() bool {
	return len(fs.Active()) == 0
}
