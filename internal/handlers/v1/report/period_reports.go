package report

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

type MonthPeriodInput struct {
	KindPath
	ScopeQuery
	Year  string `path:"year" doc:"Calendar year, 1 to 9999"`
	Month string `path:"month" doc:"1 to 12"`
}

type YearPeriodInput struct {
	KindPath
	ScopeQuery
	Year string `path:"year" doc:"Calendar year, 1 to 9999"`
}

type BucketReportOutput struct {
	Body BucketReport
}

// PeriodReportHandler serves the weekly, daily, monthly and ISO-weekly
// breakdowns of one ledger.
type PeriodReportHandler struct {
	ReportService reportService
}

func NewPeriodReportHandler(svc reportService) *PeriodReportHandler {
	return &PeriodReportHandler{ReportService: svc}
}

func (h *PeriodReportHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "report-weekly",
		Method:      http.MethodGet,
		Path:        "/v1/report/{kind}/weekly/{year}/{month}",
		Summary:     "Four-week breakdown of a month",
		Description: "Buckets are days 1-7, 8-14, 15-21 and 22 to the end of the month.",
		Tags:        []string{"Reports"},
	}, h.monthHandler("weekly", (reportService).WeeklyReport))

	huma.Register(api, huma.Operation{
		OperationID: "report-daily",
		Method:      http.MethodGet,
		Path:        "/v1/report/{kind}/daily/{year}/{month}",
		Summary:     "Daily breakdown of a month",
		Tags:        []string{"Reports"},
	}, h.monthHandler("daily", (reportService).DailyReport))

	huma.Register(api, huma.Operation{
		OperationID: "report-monthly",
		Method:      http.MethodGet,
		Path:        "/v1/report/{kind}/monthly/{year}",
		Summary:     "Monthly breakdown of a year",
		Tags:        []string{"Reports"},
	}, h.yearHandler("monthly", (reportService).MonthlyReport))

	huma.Register(api, huma.Operation{
		OperationID: "report-isoweekly",
		Method:      http.MethodGet,
		Path:        "/v1/report/{kind}/isoweekly/{year}",
		Summary:     "ISO-week breakdown of a year",
		Tags:        []string{"Reports"},
	}, h.yearHandler("isoweekly", (reportService).ISOWeeklyReport))
}

type monthReport func(svc reportService, ctx context.Context, scope *uuid.UUID, kind service.Kind, year, month int) (*service.BucketReport, error)

type yearReport func(svc reportService, ctx context.Context, scope *uuid.UUID, kind service.Kind, year int) (*service.BucketReport, error)

func (h *PeriodReportHandler) monthHandler(name string, build monthReport) func(context.Context, *MonthPeriodInput) (*BucketReportOutput, error) {
	return func(ctx context.Context, input *MonthPeriodInput) (*BucketReportOutput, error) {
		scope, kind, err := parseScopeAndKind(input.ScopeQuery, input.KindPath)
		if err != nil {
			return nil, err
		}
		year, month, err := parseMonthPeriod(ctx, input.Year, input.Month)
		if err != nil {
			return nil, err
		}

		stopTimer := logging.Time(ctx, name+"ReportMs")
		report, err := build(h.ReportService, ctx, scope, kind, year, month)
		stopTimer()
		if err != nil {
			return nil, apierror.FromService(ctx, "failed to build "+name+" report", err)
		}
		return &BucketReportOutput{Body: bucketReportToResponse(report)}, nil
	}
}

func (h *PeriodReportHandler) yearHandler(name string, build yearReport) func(context.Context, *YearPeriodInput) (*BucketReportOutput, error) {
	return func(ctx context.Context, input *YearPeriodInput) (*BucketReportOutput, error) {
		scope, kind, err := parseScopeAndKind(input.ScopeQuery, input.KindPath)
		if err != nil {
			return nil, err
		}
		year, err := parseYearPeriod(ctx, input.Year)
		if err != nil {
			return nil, err
		}

		stopTimer := logging.Time(ctx, name+"ReportMs")
		report, err := build(h.ReportService, ctx, scope, kind, year)
		stopTimer()
		if err != nil {
			return nil, apierror.FromService(ctx, "failed to build "+name+" report", err)
		}
		return &BucketReportOutput{Body: bucketReportToResponse(report)}, nil
	}
}
