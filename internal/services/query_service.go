package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/export"
)

// ListResult is one page of a filtered ledger view plus the summary of the
// whole filtered set.
type ListResult struct {
	Page       core.Page
	Summary    core.Summary
	Sort       string
	Categories []string
}

// QueryService serves the read side: filtered lists, period breakdowns and
// workbook exports.
type QueryService struct {
	ledger Ledger
}

func NewQueryService(ledger Ledger) *QueryService {
	return &QueryService{ledger: ledger}
}

// List runs the full read pipeline: load the owner's ledger, filter it,
// sort, summarize the whole filtered set, then page.
func (s *QueryService) List(ctx context.Context, ownerID int64, in core.FilterInput, sortKey string, page int) (ListResult, error) {
	txs, err := s.ledger.ListByOwner(ctx, ownerID)
	if err != nil {
		return ListResult{}, fmt.Errorf("list transactions: %w", err)
	}

	fs := core.ParseFilterSet(in)
	filtered := fs.Apply(txs)

	sort := core.ParseSortKey(sortKey)
	core.SortTransactions(filtered, sort)

	summary := core.BuildSummary(filtered, fs)

	categories, err := s.ledger.DistinctCategories(ctx, ownerID)
	if err != nil {
		return ListResult{}, fmt.Errorf("list categories: %w", err)
	}

	return ListResult{
		Page:       core.Paginate(filtered, page, core.DefaultPageSize),
		Summary:    summary,
		Sort:       sort,
		Categories: categories,
	}, nil
}

// Breakdown aggregates one kind by category over a named period.
func (s *QueryService) Breakdown(ctx context.Context, ownerID int64, kind core.Kind, period string, today time.Time) (core.Breakdown, error) {
	if !kind.Valid() {
		return core.Breakdown{}, core.ErrInvalidKind
	}

	start, end := core.ResolvePeriod(period, today)
	totals, err := s.ledger.CategorySums(ctx, ownerID, kind, start, end)
	if err != nil {
		return core.Breakdown{}, fmt.Errorf("category sums: %w", err)
	}

	return core.BuildBreakdown(totals, period, start, end), nil
}

// ExportResult is an encoded workbook ready to serve as a download.
type ExportResult struct {
	Filename string
	Data     []byte
}

// Export builds the three-sheet workbook from the owner's filtered ledger.
// The filter semantics match List exactly; only the paging differs, since
// the export always covers the whole filtered set.
func (s *QueryService) Export(ctx context.Context, ownerID int64, in core.FilterInput, now time.Time) (ExportResult, error) {
	txs, err := s.ledger.ListByOwner(ctx, ownerID)
	if err != nil {
		return ExportResult{}, fmt.Errorf("list transactions: %w", err)
	}

	filtered := core.ParseFilterSet(in).Apply(txs)
	core.SortTransactions(filtered, core.SortDateDesc)

	doc, err := export.BuildDocument(filtered, ownerID, now)
	if err != nil {
		return ExportResult{}, err
	}

	data, err := export.EncodeXLSX(doc)
	if err != nil {
		return ExportResult{}, fmt.Errorf("encode workbook: %w", err)
	}

	return ExportResult{
		Filename: export.Filename(ownerID, now),
		Data:     data,
	}, nil
}
