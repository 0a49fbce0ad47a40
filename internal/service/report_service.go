package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/finance-tracker/internal/finance"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

// ReportService builds period and category reports over either ledger. A nil
// scope reports across every user.
type ReportService struct {
	storage *storage.Storage
}

// NewReportService creates a new ReportService.
func NewReportService(store *storage.Storage) *ReportService {
	return &ReportService{storage: store}
}

// WeeklyReport splits a month into its four fixed weeks.
func (s *ReportService) WeeklyReport(ctx context.Context, scope *uuid.UUID, kind Kind, year, month int) (*BucketReport, error) {
	buckets, err := finance.WeeksOfMonth(year, month)
	if err != nil {
		return nil, err
	}
	return s.bucketReport(ctx, scope, kind, buckets)
}

// MonthlyReport splits a year into calendar months.
func (s *ReportService) MonthlyReport(ctx context.Context, scope *uuid.UUID, kind Kind, year int) (*BucketReport, error) {
	buckets, err := finance.MonthsOfYear(year)
	if err != nil {
		return nil, err
	}
	return s.bucketReport(ctx, scope, kind, buckets)
}

// ISOWeeklyReport splits a year into its ISO weeks.
func (s *ReportService) ISOWeeklyReport(ctx context.Context, scope *uuid.UUID, kind Kind, year int) (*BucketReport, error) {
	buckets, err := finance.ISOWeeksOfYear(year)
	if err != nil {
		return nil, err
	}
	return s.bucketReport(ctx, scope, kind, buckets)
}

// DailyReport splits a month into days.
func (s *ReportService) DailyReport(ctx context.Context, scope *uuid.UUID, kind Kind, year, month int) (*BucketReport, error) {
	buckets, err := finance.DaysOfMonth(year, month)
	if err != nil {
		return nil, err
	}
	return s.bucketReport(ctx, scope, kind, buckets)
}

func (s *ReportService) bucketReport(ctx context.Context, scope *uuid.UUID, kind Kind, buckets []finance.Bucket) (*BucketReport, error) {
	start, end := finance.Span(buckets)

	entries, err := s.fetch(ctx, scope, kind, start, end)
	if err != nil {
		return nil, err
	}

	outside := finance.Assign(buckets, entries)
	if len(outside) > 0 {
		logging.Add(ctx, "uncovered_"+kind.String(), len(outside))
	}
	finance.ApplyTrend(buckets)

	return &BucketReport{
		Kind:      kind,
		Start:     start,
		End:       end,
		Total:     finance.Total(entries).Sub(finance.Total(outside)),
		Buckets:   buckets,
		Uncovered: len(outside),
	}, nil
}

// CashFlowReport returns income and expense of each fixed week of a month.
// Both ledgers are fetched concurrently.
func (s *ReportService) CashFlowReport(ctx context.Context, scope *uuid.UUID, year, month int) (*CashFlowReport, error) {
	incomeBuckets, err := finance.WeeksOfMonth(year, month)
	if err != nil {
		return nil, err
	}
	expenseBuckets, err := finance.WeeksOfMonth(year, month)
	if err != nil {
		return nil, err
	}

	var incomes, expenses *BucketReport
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		incomes, err = s.bucketReport(groupCtx, scope, KindIncome, incomeBuckets)
		return err
	})
	group.Go(func() error {
		var err error
		expenses, err = s.bucketReport(groupCtx, scope, KindExpense, expenseBuckets)
		return err
	})
	if err = group.Wait(); err != nil {
		return nil, err
	}

	weeks := make([]CashFlowWeek, len(incomes.Buckets))
	for i := range weeks {
		income, expense := incomes.Buckets[i], expenses.Buckets[i]
		weeks[i] = CashFlowWeek{
			Index:   income.Index,
			Start:   income.Start,
			End:     income.End,
			Income:  income,
			Expense: expense,
			Net:     income.Total.Sub(expense.Total),
		}
	}

	return &CashFlowReport{
		Start:        incomes.Start,
		End:          incomes.End,
		Weeks:        weeks,
		TotalIncome:  incomes.Total,
		TotalExpense: expenses.Total,
		Net:          incomes.Total.Sub(expenses.Total),
	}, nil
}

// MonthTotal sums a ledger over a calendar month, zero when empty.
func (s *ReportService) MonthTotal(ctx context.Context, scope *uuid.UUID, kind Kind, year, month int) (decimal.Decimal, error) {
	start, end, err := finance.MonthRange(year, month)
	if err != nil {
		return decimal.Zero, err
	}

	filter := &sqlconfig.LedgerFilter{UserID: scope, Start: &start, End: &end}
	total, err := s.storage.Ledger(kindToStorage(kind)).Sum(ctx, filter)
	if err != nil {
		return decimal.Zero, finance.StoreFailure("sum "+kind.String(), err)
	}
	return total, nil
}

// CategoryReport groups a ledger by category or label. Items are only
// attached when query.WithItems is set; otherwise the grouping runs in the
// store.
func (s *ReportService) CategoryReport(ctx context.Context, scope *uuid.UUID, query CategoryQuery) ([]finance.CategorySummary, error) {
	if query.Start != nil && query.End != nil && query.Start.After(*query.End) {
		return []finance.CategorySummary{}, nil
	}

	filter := &sqlconfig.LedgerFilter{
		UserID:    scope,
		Start:     query.Start,
		End:       query.End,
		Ascending: true,
	}
	table := s.storage.Ledger(kindToStorage(query.Kind))

	if query.WithItems {
		defer logging.Time(ctx, "ReportService.CategoryReport.list")()
		rows, err := table.List(ctx, filter)
		if err != nil {
			return nil, finance.StoreFailure("list "+query.Kind.String(), err)
		}
		return nonNil(finance.GroupBy(snapshotsFromStorage(rows), query.Key)), nil
	}

	defer logging.Time(ctx, "ReportService.CategoryReport.groupSum")()
	rows, err := table.GroupSum(ctx, filter, groupColumn(query.Key))
	if err != nil {
		return nil, finance.StoreFailure("group "+query.Kind.String(), err)
	}
	return nonNil(finance.SummarizeGroups(groupTotalsFromStorage(rows))), nil
}

// EntriesInRange returns the entries dated within [start, end] ascending. An
// inverted range is empty.
func (s *ReportService) EntriesInRange(ctx context.Context, scope *uuid.UUID, kind Kind, start, end time.Time) ([]finance.Entry, error) {
	if start.After(end) {
		return []finance.Entry{}, nil
	}
	return s.fetch(ctx, scope, kind, start, end)
}

func (s *ReportService) fetch(ctx context.Context, scope *uuid.UUID, kind Kind, start, end time.Time) ([]finance.Entry, error) {
	defer logging.AddToExistingTiming(ctx, "ReportService.fetch")()

	filter := &sqlconfig.LedgerFilter{
		UserID:    scope,
		Start:     &start,
		End:       &end,
		Ascending: true,
	}
	rows, err := s.storage.Ledger(kindToStorage(kind)).List(ctx, filter)
	if err != nil {
		return nil, finance.StoreFailure("list "+kind.String(), err)
	}
	return snapshotsFromStorage(rows), nil
}

func nonNil(groups []finance.CategorySummary) []finance.CategorySummary {
	if groups == nil {
		return []finance.CategorySummary{}
	}
	return groups
}
