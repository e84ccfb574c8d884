package core

import "strings"

// Category vocabularies are closed per kind at write time, but rows are
// stored as free text: read paths match strings as-is and fall back to a
// default display bucket for anything outside the known sets.

var IncomeCategories = []string{
	"salary",
	"freelance",
	"business",
	"investment_profit",
	"gift",
	"bonus",
	"other_income",
}

var ExpenseCategories = []string{
	"food",
	"entertainment",
	"grocery",
	"travel",
	"transfers",
	"investment",
	"shopping",
	"medical",
	"bills",
	"miscellaneous",
	"other_expense",
}

// DefaultCategoryBucket is the display bucket for unrecognized categories.
const DefaultCategoryBucket = "uncategorized"

// Categories returns the valid vocabulary for a kind.
func Categories(kind Kind) []string {
	if kind == Income {
		return IncomeCategories
	}
	return ExpenseCategories
}

// KnownCategory reports whether category belongs to the kind's vocabulary.
func KnownCategory(kind Kind, category string) bool {
	for _, c := range Categories(kind) {
		if c == category {
			return true
		}
	}
	return false
}

// DisplayCategory turns a stored category into its display label:
// underscores become spaces and each word is title-cased. Unknown values
// keep their stored text so aggregation never loses a bucket; empty
// values fall back to the default bucket.
func DisplayCategory(category string) string {
	if strings.TrimSpace(category) == "" {
		category = DefaultCategoryBucket
	}
	return titleWords(strings.ReplaceAll(category, "_", " "))
}

// DisplayKind returns the capitalized kind label.
func DisplayKind(kind Kind) string {
	return titleWords(string(kind))
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

var categoryIcons = map[string]string{
	// Expense categories
	"food":          "fa-utensils",
	"entertainment": "fa-film",
	"grocery":       "fa-shopping-cart",
	"travel":        "fa-car",
	"transfers":     "fa-exchange-alt",
	"investment":    "fa-chart-line",
	"shopping":      "fa-shopping-bag",
	"medical":       "fa-heartbeat",
	"bills":         "fa-file-invoice",
	"miscellaneous": "fa-ellipsis-h",
	"other_expense": "fa-ellipsis-h",

	// Income categories
	"salary":            "fa-money-bill-wave",
	"freelance":         "fa-laptop",
	"business":          "fa-briefcase",
	"investment_profit": "fa-chart-line",
	"gift":              "fa-gift",
	"bonus":             "fa-star",
	"other_income":      "fa-plus-circle",
}

var categoryColors = map[string]string{
	"food":          "info",
	"entertainment": "info",
	"grocery":       "warning",
	"travel":        "primary",
	"transfers":     "secondary",
	"investment":    "warning",
	"shopping":      "primary",
	"medical":       "info",
	"bills":         "warning",
	"miscellaneous": "secondary",
	"other_expense": "secondary",

	"salary":            "warning",
	"freelance":         "info",
	"business":          "primary",
	"investment_profit": "warning",
	"gift":              "info",
	"bonus":             "primary",
	"other_income":      "secondary",
}

// CategoryIcon returns the icon name for a category, with a default for
// unknown values.
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[strings.ToLower(category)]; ok {
		return icon
	}
	return "fa-circle"
}

// CategoryColor returns the color tag for a category, with a default for
// unknown values.
func CategoryColor(category string) string {
	if color, ok := categoryColors[strings.ToLower(category)]; ok {
		return color
	}
	return "secondary"
}
