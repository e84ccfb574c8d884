package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/core"
)

// DashboardStats is the composed dashboard payload: all-time and
// current-month totals, the savings rate, the freshest activity and the
// month's per-kind breakdowns.
type DashboardStats struct {
	TotalIncome          float64              `json:"total_income"`
	TotalExpense         float64              `json:"total_expense"`
	NetBalance           float64              `json:"net_balance"`
	MonthIncome          float64              `json:"month_income"`
	MonthExpense         float64              `json:"month_expense"`
	SavingsRate          float64              `json:"savings_rate"`
	TransactionCount     int64                `json:"transaction_count"`
	Recent               []core.Transaction   `json:"recent_transactions"`
	MonthIncomeBreakdown []core.CategoryShare `json:"month_income_breakdown"`
	MonthBreakdown       []core.CategoryShare `json:"month_breakdown"`
}

// DashboardService composes the dashboard from independent aggregate
// queries. The queries run concurrently and each reflects committed state
// at its own read time; the dashboard is a best-effort snapshot, not a
// transactional one.
type DashboardService struct {
	ledger      Ledger
	recentLimit int
}

func NewDashboardService(ledger Ledger) *DashboardService {
	return &DashboardService{
		ledger:      ledger,
		recentLimit: core.DefaultPageSize,
	}
}

func (s *DashboardService) Stats(ctx context.Context, ownerID int64, today time.Time) (DashboardStats, error) {
	monthStart, monthEnd := core.ResolvePeriod(core.PeriodThisMonth, today)

	var (
		totalIncome, totalExpense core.Money
		monthIncome, monthExpense core.Money
		recent                    []core.Transaction
		count                     int64
		monthIncomeSums           []core.CategoryAmount
		monthExpenseSums          []core.CategoryAmount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totalIncome, err = s.ledger.SumByKind(gctx, ownerID, core.Income, core.Date{}, core.Date{})
		return
	})
	g.Go(func() (err error) {
		totalExpense, err = s.ledger.SumByKind(gctx, ownerID, core.Expense, core.Date{}, core.Date{})
		return
	})
	g.Go(func() (err error) {
		monthIncome, err = s.ledger.SumByKind(gctx, ownerID, core.Income, monthStart, monthEnd)
		return
	})
	g.Go(func() (err error) {
		monthExpense, err = s.ledger.SumByKind(gctx, ownerID, core.Expense, monthStart, monthEnd)
		return
	})
	g.Go(func() (err error) {
		recent, err = s.ledger.Recent(gctx, ownerID, s.recentLimit)
		return
	})
	g.Go(func() (err error) {
		count, err = s.ledger.CountByOwner(gctx, ownerID)
		return
	})
	g.Go(func() (err error) {
		monthIncomeSums, err = s.ledger.CategorySums(gctx, ownerID, core.Income, monthStart, monthEnd)
		return
	})
	g.Go(func() (err error) {
		monthExpenseSums, err = s.ledger.CategorySums(gctx, ownerID, core.Expense, monthStart, monthEnd)
		return
	})
	if err := g.Wait(); err != nil {
		return DashboardStats{}, fmt.Errorf("compose dashboard: %w", err)
	}

	incomeBreakdown := core.BuildBreakdown(monthIncomeSums, core.PeriodThisMonth, monthStart, monthEnd)
	expenseBreakdown := core.BuildBreakdown(monthExpenseSums, core.PeriodThisMonth, monthStart, monthEnd)

	return DashboardStats{
		TotalIncome:          totalIncome.Float64(),
		TotalExpense:         totalExpense.Float64(),
		NetBalance:           totalIncome.Sub(totalExpense).Float64(),
		MonthIncome:          monthIncome.Float64(),
		MonthExpense:         monthExpense.Float64(),
		SavingsRate:          core.SavingsRate(monthIncome, monthExpense),
		TransactionCount:     count,
		Recent:               recent,
		MonthIncomeBreakdown: incomeBreakdown.Categories,
		MonthBreakdown:       expenseBreakdown.Categories,
	}, nil
}
