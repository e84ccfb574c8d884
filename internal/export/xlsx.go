package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"fintrack/internal/core"
)

const (
	sheetSummary      = "Summary"
	sheetTransactions = "Transactions"
	sheetBreakdown    = "Category Breakdown"
)

// EncodeXLSX renders the document as an Excel workbook with three sheets:
// Summary first, then the signed transaction list, then the per-category
// breakdown.
func EncodeXLSX(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes Summary so it opens first.
	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("rename summary sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetTransactions); err != nil {
		return nil, fmt.Errorf("create transactions sheet: %w", err)
	}
	if _, err := f.NewSheet(sheetBreakdown); err != nil {
		return nil, fmt.Errorf("create breakdown sheet: %w", err)
	}

	if err := writeSummary(f, doc.Summary); err != nil {
		return nil, err
	}
	if err := writeTransactions(f, doc.Transactions); err != nil {
		return nil, err
	}
	if err := writeBreakdown(f, doc.Categories); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, s Summary) error {
	rows := [][]any{
		{"Metric", "Value"},
		{"Total Transactions", s.Count},
		{"Income Transactions", s.IncomeCount},
		{"Expense Transactions", s.ExpenseCount},
		{"Total Income", s.TotalIncome.Float64()},
		{"Total Expenses", s.TotalExpense.Float64()},
		{"Net Balance", s.NetBalance.Float64()},
		{"Generated At", s.GeneratedAt.Format("2006-01-02 15:04:05")},
	}
	return writeRows(f, sheetSummary, rows)
}

func writeTransactions(f *excelize.File, txs []TransactionRow) error {
	rows := make([][]any, 0, len(txs)+1)
	rows = append(rows, []any{"Date", "Type", "Category", "Description", "Amount"})
	for _, tx := range txs {
		rows = append(rows, []any{
			tx.Date.String(), tx.Kind, tx.Category, tx.Description, tx.Amount.Float64(),
		})
	}
	return writeRows(f, sheetTransactions, rows)
}

func writeBreakdown(f *excelize.File, lines []CategoryLine) error {
	rows := make([][]any, 0, len(lines)+1)
	rows = append(rows, []any{"Category", "Income", "Expenses", "Net"})
	for _, line := range lines {
		rows = append(rows, []any{
			core.DisplayCategory(line.Category),
			line.Income.Float64(),
			line.Expense.Float64(),
			line.Net.Float64(),
		})
	}
	return writeRows(f, sheetBreakdown, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell name for row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
