package report

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/finance"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// Item is one entry inside a bucket or group.
type Item struct {
	ID       string `json:"id"`
	Label    string `json:"label" doc:"Income source or expense description"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Date     string `json:"date" format:"date-time"`
}

// Bucket is one period of a report. Start and end are inclusive dates.
type Bucket struct {
	Index         int     `json:"index" doc:"Week of month, month, ISO week or day number"`
	Start         string  `json:"start" format:"date"`
	End           string  `json:"end" format:"date"`
	Total         string  `json:"total"`
	ChangePercent *string `json:"changePercent,omitempty" doc:"Change against the previous bucket in percent, absent for the first bucket or when the previous total is zero"`
	Items         []Item  `json:"items"`
}

type BucketReport struct {
	Kind      string   `json:"kind"`
	Start     string   `json:"start" format:"date"`
	End       string   `json:"end" format:"date"`
	Total     string   `json:"total"`
	Uncovered int      `json:"uncovered" doc:"Entries that fell outside every bucket"`
	Buckets   []Bucket `json:"buckets"`
}

type CategorySummary struct {
	Category      string `json:"category" doc:"Category or label, Other when blank"`
	TotalAmount   string `json:"totalAmount"`
	Count         int64  `json:"count"`
	AverageAmount string `json:"averageAmount"`
	Items         []Item `json:"items,omitempty"`
}

func itemsToResponse(entries []finance.Entry) []Item {
	items := make([]Item, len(entries))
	for i, e := range entries {
		items[i] = Item{
			ID:       e.ID.String(),
			Label:    e.Label,
			Category: e.Category,
			Amount:   apierror.FormatMoney(e.Amount),
			Date:     e.Date.Format(time.RFC3339),
		}
	}
	return items
}

func percentToResponse(p *decimal.Decimal) *string {
	if p == nil {
		return nil
	}
	s := p.StringFixed(2)
	return &s
}

func bucketToResponse(b finance.Bucket) Bucket {
	return Bucket{
		Index:         b.Index,
		Start:         apierror.FormatDate(b.Start),
		End:           apierror.FormatDate(b.End),
		Total:         apierror.FormatMoney(b.Total),
		ChangePercent: percentToResponse(b.ChangePercent),
		Items:         itemsToResponse(b.Items),
	}
}

func bucketReportToResponse(r *service.BucketReport) BucketReport {
	buckets := make([]Bucket, len(r.Buckets))
	for i, b := range r.Buckets {
		buckets[i] = bucketToResponse(b)
	}
	return BucketReport{
		Kind:      r.Kind.String(),
		Start:     apierror.FormatDate(r.Start),
		End:       apierror.FormatDate(r.End),
		Total:     apierror.FormatMoney(r.Total),
		Uncovered: r.Uncovered,
		Buckets:   buckets,
	}
}

func summariesToResponse(groups []finance.CategorySummary, withItems bool) []CategorySummary {
	out := make([]CategorySummary, len(groups))
	for i, g := range groups {
		out[i] = CategorySummary{
			Category:      g.Category,
			TotalAmount:   apierror.FormatMoney(g.TotalAmount),
			Count:         g.Count,
			AverageAmount: apierror.FormatMoney(g.AverageAmount),
		}
		if withItems {
			out[i].Items = itemsToResponse(g.Items)
		}
	}
	return out
}

// ScopeQuery restricts a report to one user. Omitted reports on every user.
type ScopeQuery struct {
	UserID string `query:"userID" doc:"Optional owner UUID"`
}

// KindPath selects the ledger.
type KindPath struct {
	Kind string `path:"kind" doc:"income or expense"`
}

type reportService interface {
	WeeklyReport(ctx context.Context, scope *uuid.UUID, kind service.Kind, year, month int) (*service.BucketReport, error)
	MonthlyReport(ctx context.Context, scope *uuid.UUID, kind service.Kind, year int) (*service.BucketReport, error)
	ISOWeeklyReport(ctx context.Context, scope *uuid.UUID, kind service.Kind, year int) (*service.BucketReport, error)
	DailyReport(ctx context.Context, scope *uuid.UUID, kind service.Kind, year, month int) (*service.BucketReport, error)
	CashFlowReport(ctx context.Context, scope *uuid.UUID, year, month int) (*service.CashFlowReport, error)
	MonthTotal(ctx context.Context, scope *uuid.UUID, kind service.Kind, year, month int) (decimal.Decimal, error)
	CategoryReport(ctx context.Context, scope *uuid.UUID, query service.CategoryQuery) ([]finance.CategorySummary, error)
	EntriesInRange(ctx context.Context, scope *uuid.UUID, kind service.Kind, start, end time.Time) ([]finance.Entry, error)
}

func parseScopeAndKind(scope ScopeQuery, kind KindPath) (*uuid.UUID, service.Kind, error) {
	userID, err := apierror.ParseScope(scope.UserID)
	if err != nil {
		return nil, service.KindIncome, err
	}
	k, err := apierror.ParseKind(kind.Kind)
	if err != nil {
		return nil, service.KindIncome, err
	}
	return userID, k, nil
}

// parseMonthPeriod reads the year and month path values. Anything that is not
// a valid calendar month is an invalid period.
func parseMonthPeriod(ctx context.Context, year, month string) (int, int, error) {
	y, m, err := finance.ParseYearMonth(year, month)
	if err != nil {
		return 0, 0, apierror.FromService(ctx, "invalid period", err)
	}
	return y, m, nil
}

func parseYearPeriod(ctx context.Context, year string) (int, error) {
	y, err := finance.ParseYear(year)
	if err != nil {
		return 0, apierror.FromService(ctx, "invalid period", err)
	}
	return y, nil
}
