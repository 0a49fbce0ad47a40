package report

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/apierror"
)

type MonthTotalOutput struct {
	Body struct {
		Kind  string `json:"kind"`
		Year  int    `json:"year"`
		Month int    `json:"month"`
		Total string `json:"total" doc:"Zero when the month has no entries"`
	}
}

// MonthTotalHandler handles GET /v1/report/{kind}/total/{year}/{month}.
type MonthTotalHandler struct {
	ReportService reportService
}

func NewMonthTotalHandler(svc reportService) *MonthTotalHandler {
	return &MonthTotalHandler{ReportService: svc}
}

func (h *MonthTotalHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "report-month-total",
		Method:      http.MethodGet,
		Path:        "/v1/report/{kind}/total/{year}/{month}",
		Summary:     "Total of a ledger for one month",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *MonthTotalHandler) handle(ctx context.Context, input *MonthPeriodInput) (*MonthTotalOutput, error) {
	scope, kind, err := parseScopeAndKind(input.ScopeQuery, input.KindPath)
	if err != nil {
		return nil, err
	}
	year, month, err := parseMonthPeriod(ctx, input.Year, input.Month)
	if err != nil {
		return nil, err
	}

	total, err := h.ReportService.MonthTotal(ctx, scope, kind, year, month)
	if err != nil {
		return nil, apierror.FromService(ctx, "failed to total "+kind.String(), err)
	}

	out := &MonthTotalOutput{}
	out.Body.Kind = kind.String()
	out.Body.Year = year
	out.Body.Month = month
	out.Body.Total = apierror.FormatMoney(total)
	return out, nil
}
