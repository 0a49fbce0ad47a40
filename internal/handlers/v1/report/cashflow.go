package report

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

type CashFlowWeek struct {
	Index   int    `json:"index"`
	Start   string `json:"start" format:"date"`
	End     string `json:"end" format:"date"`
	Income  Bucket `json:"income"`
	Expense Bucket `json:"expense"`
	Net     string `json:"net" doc:"Income minus expense"`
}

type CashFlowInput struct {
	ScopeQuery
	Year  string `path:"year" doc:"Calendar year, 1 to 9999"`
	Month string `path:"month" doc:"1 to 12"`
}

type CashFlowOutput struct {
	Body struct {
		Start        string         `json:"start" format:"date"`
		End          string         `json:"end" format:"date"`
		TotalIncome  string         `json:"totalIncome"`
		TotalExpense string         `json:"totalExpense"`
		Net          string         `json:"net"`
		Weeks        []CashFlowWeek `json:"weeks"`
	}
}

// CashFlowHandler handles GET /v1/cashflow/{year}/{month}.
type CashFlowHandler struct {
	ReportService reportService
}

func NewCashFlowHandler(svc reportService) *CashFlowHandler {
	return &CashFlowHandler{ReportService: svc}
}

func (h *CashFlowHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "report-cashflow",
		Method:      http.MethodGet,
		Path:        "/v1/cashflow/{year}/{month}",
		Summary:     "Income and expense per week of a month",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func cashFlowToResponse(report *service.CashFlowReport) *CashFlowOutput {
	out := &CashFlowOutput{}
	out.Body.Start = apierror.FormatDate(report.Start)
	out.Body.End = apierror.FormatDate(report.End)
	out.Body.TotalIncome = apierror.FormatMoney(report.TotalIncome)
	out.Body.TotalExpense = apierror.FormatMoney(report.TotalExpense)
	out.Body.Net = apierror.FormatMoney(report.Net)
	out.Body.Weeks = make([]CashFlowWeek, len(report.Weeks))
	for i, w := range report.Weeks {
		out.Body.Weeks[i] = CashFlowWeek{
			Index:   w.Index,
			Start:   apierror.FormatDate(w.Start),
			End:     apierror.FormatDate(w.End),
			Income:  bucketToResponse(w.Income),
			Expense: bucketToResponse(w.Expense),
			Net:     apierror.FormatMoney(w.Net),
		}
	}
	return out
}

func (h *CashFlowHandler) handle(ctx context.Context, input *CashFlowInput) (*CashFlowOutput, error) {
	scope, err := apierror.ParseScope(input.UserID)
	if err != nil {
		return nil, err
	}
	year, month, err := parseMonthPeriod(ctx, input.Year, input.Month)
	if err != nil {
		return nil, err
	}

	stopTimer := logging.Time(ctx, "cashFlowReportMs")
	report, err := h.ReportService.CashFlowReport(ctx, scope, year, month)
	stopTimer()
	if err != nil {
		return nil, apierror.FromService(ctx, "failed to build cash flow report", err)
	}
	return cashFlowToResponse(report), nil
}
