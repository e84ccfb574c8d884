// Package export turns a filtered ledger into a downloadable workbook.
// The document model is format-neutral; xlsx.go renders it with excelize.
package export

import (
	"fmt"
	"sort"
	"time"

	"fintrack/internal/core"
)

// TransactionRow is one ledger line in the workbook. Amount carries the
// sign convention readers expect: income positive, expense negative.
type TransactionRow struct {
	Date        core.Date
	Kind        string
	Category    string
	Description string
	Amount      core.Money
}

// CategoryLine is one aggregated row of the breakdown section.
type CategoryLine struct {
	Category string
	Income   core.Money
	Expense  core.Money
	Net      core.Money
}

// Summary holds the headline figures shown on the first sheet.
type Summary struct {
	OwnerID      int64
	Count        int
	IncomeCount  int
	ExpenseCount int
	TotalIncome  core.Money
	TotalExpense core.Money
	NetBalance   core.Money
	GeneratedAt  time.Time
}

// Document is the complete workbook content, ready for an encoder.
type Document struct {
	Summary      Summary
	Transactions []TransactionRow
	Categories   []CategoryLine
}

// BuildDocument assembles the workbook sections from a filtered ledger.
// An empty ledger yields ErrNoTransactions so handlers can refuse the
// download instead of serving an empty file.
func BuildDocument(txs []core.Transaction, ownerID int64, now time.Time) (Document, error) {
	if len(txs) == 0 {
		return Document{}, core.ErrNoTransactions
	}

	doc := Document{
		Summary: Summary{
			OwnerID:     ownerID,
			Count:       len(txs),
			GeneratedAt: now,
		},
		Transactions: make([]TransactionRow, 0, len(txs)),
	}

	byCategory := make(map[string]*CategoryLine)
	for _, tx := range txs {
		amount := tx.Amount
		switch tx.Kind {
		case core.Income:
			doc.Summary.IncomeCount++
			doc.Summary.TotalIncome = doc.Summary.TotalIncome.Add(tx.Amount)
		case core.Expense:
			doc.Summary.ExpenseCount++
			doc.Summary.TotalExpense = doc.Summary.TotalExpense.Add(tx.Amount)
			amount = tx.Amount.Neg()
		}

		doc.Transactions = append(doc.Transactions, TransactionRow{
			Date:        tx.Date,
			Kind:        core.DisplayKind(tx.Kind),
			Category:    core.DisplayCategory(tx.Category),
			Description: tx.Description,
			Amount:      amount,
		})

		name := tx.Category
		if name == "" {
			name = core.DefaultCategoryBucket
		}
		line, ok := byCategory[name]
		if !ok {
			line = &CategoryLine{Category: name}
			byCategory[name] = line
		}
		switch tx.Kind {
		case core.Income:
			line.Income = line.Income.Add(tx.Amount)
		case core.Expense:
			line.Expense = line.Expense.Add(tx.Amount)
		}
	}

	doc.Summary.NetBalance = doc.Summary.TotalIncome.Sub(doc.Summary.TotalExpense)

	doc.Categories = make([]CategoryLine, 0, len(byCategory))
	for _, line := range byCategory {
		line.Net = line.Income.Sub(line.Expense)
		doc.Categories = append(doc.Categories, *line)
	}
	sort.Slice(doc.Categories, func(i, j int) bool {
		return doc.Categories[i].Category < doc.Categories[j].Category
	})

	return doc, nil
}

// Filename builds the download name, stamped with the owner id and the
// generation time: transactions_<owner>_<YYYYMMDD_HHMMSS>.xlsx.
func Filename(ownerID int64, now time.Time) string {
	return fmt.Sprintf("transactions_%d_%s.xlsx", ownerID, now.Format("20060102_150405"))
}
