package report

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/finance"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

type CategoriesInput struct {
	KindPath
	ScopeQuery
	GroupBy   string `query:"groupBy" doc:"category (default), or label/source/description"`
	Items     bool   `query:"items" doc:"Attach the grouped entries"`
	StartDate string `query:"startDate" doc:"Inclusive YYYY-MM-DD lower bound"`
	EndDate   string `query:"endDate" doc:"Inclusive YYYY-MM-DD upper bound"`
}

type CategoriesOutput struct {
	Body struct {
		Kind   string            `json:"kind"`
		Groups []CategorySummary `json:"groups" doc:"Sorted by total descending"`
	}
}

// CategoriesHandler handles GET /v1/report/{kind}/categories.
type CategoriesHandler struct {
	ReportService reportService
}

func NewCategoriesHandler(svc reportService) *CategoriesHandler {
	return &CategoriesHandler{ReportService: svc}
}

func (h *CategoriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "report-categories",
		Method:      http.MethodGet,
		Path:        "/v1/report/{kind}/categories",
		Summary:     "Totals grouped by category or label",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func parseCategoriesInput(input *CategoriesInput) (service.CategoryQuery, error) {
	_, kind, err := parseScopeAndKind(input.ScopeQuery, input.KindPath)
	if err != nil {
		return service.CategoryQuery{}, err
	}
	key, ok := finance.ParseGroupKey(input.GroupBy)
	if !ok {
		return service.CategoryQuery{}, huma.Error400BadRequest("groupBy must be category or label")
	}
	start, err := apierror.ParseDate("startDate", input.StartDate)
	if err != nil {
		return service.CategoryQuery{}, err
	}
	end, err := apierror.ParseDate("endDate", input.EndDate)
	if err != nil {
		return service.CategoryQuery{}, err
	}
	if end != nil {
		endOfDay := finance.EndOfDay(*end)
		end = &endOfDay
	}

	return service.CategoryQuery{
		Kind:      kind,
		Key:       key,
		Start:     start,
		End:       end,
		WithItems: input.Items,
	}, nil
}

func (h *CategoriesHandler) handle(ctx context.Context, input *CategoriesInput) (*CategoriesOutput, error) {
	query, err := parseCategoriesInput(input)
	if err != nil {
		return nil, err
	}
	scope, err := apierror.ParseScope(input.UserID)
	if err != nil {
		return nil, err
	}

	stopTimer := logging.Time(ctx, "categoryReportMs")
	groups, err := h.ReportService.CategoryReport(ctx, scope, query)
	stopTimer()
	if err != nil {
		return nil, apierror.FromService(ctx, "failed to group "+query.Kind.String(), err)
	}

	out := &CategoriesOutput{}
	out.Body.Kind = query.Kind.String()
	out.Body.Groups = summariesToResponse(groups, query.WithItems)
	return out, nil
}

type RangeInput struct {
	KindPath
	ScopeQuery
	StartDate string `query:"startDate" required:"true" doc:"Inclusive YYYY-MM-DD lower bound"`
	EndDate   string `query:"endDate" required:"true" doc:"Inclusive YYYY-MM-DD upper bound"`
}

type RangeOutput struct {
	Body struct {
		Kind    string `json:"kind"`
		Total   string `json:"total"`
		Entries []Item `json:"entries" doc:"Ascending by date, empty when startDate is after endDate"`
	}
}

// RangeHandler handles GET /v1/report/{kind}/range.
type RangeHandler struct {
	ReportService reportService
}

func NewRangeHandler(svc reportService) *RangeHandler {
	return &RangeHandler{ReportService: svc}
}

func (h *RangeHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "report-range",
		Method:      http.MethodGet,
		Path:        "/v1/report/{kind}/range",
		Summary:     "Entries dated within a range",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func parseRange(input *RangeInput) (time.Time, time.Time, error) {
	start, err := apierror.ParseDate("startDate", input.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := apierror.ParseDate("endDate", input.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start == nil || end == nil {
		return time.Time{}, time.Time{}, huma.Error400BadRequest("startDate and endDate are required")
	}
	return *start, finance.EndOfDay(*end), nil
}

func (h *RangeHandler) handle(ctx context.Context, input *RangeInput) (*RangeOutput, error) {
	scope, kind, err := parseScopeAndKind(input.ScopeQuery, input.KindPath)
	if err != nil {
		return nil, err
	}
	start, end, err := parseRange(input)
	if err != nil {
		return nil, err
	}

	entries, err := h.ReportService.EntriesInRange(ctx, scope, kind, start, end)
	if err != nil {
		return nil, apierror.FromService(ctx, "failed to list "+kind.String(), err)
	}
	logging.Add(ctx, "entryCount", len(entries))

	out := &RangeOutput{}
	out.Body.Kind = kind.String()
	out.Body.Total = apierror.FormatMoney(finance.Total(entries))
	out.Body.Entries = itemsToResponse(entries)
	return out, nil
}
