package report

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/finance"
	"github.com/carson-networks/finance-tracker/internal/service"
)

type mockReportService struct {
	mock.Mock
}

func (m *mockReportService) bucketReport(args mock.Arguments) (*service.BucketReport, error) {
	r, _ := args.Get(0).(*service.BucketReport)
	return r, args.Error(1)
}

func (m *mockReportService) WeeklyReport(ctx context.Context, scope *uuid.UUID, kind service.Kind, year, month int) (*service.BucketReport, error) {
	return m.bucketReport(m.Called(ctx, scope, kind, year, month))
}

func (m *mockReportService) MonthlyReport(ctx context.Context, scope *uuid.UUID, kind service.Kind, year int) (*service.BucketReport, error) {
	return m.bucketReport(m.Called(ctx, scope, kind, year))
}

func (m *mockReportService) ISOWeeklyReport(ctx context.Context, scope *uuid.UUID, kind service.Kind, year int) (*service.BucketReport, error) {
	return m.bucketReport(m.Called(ctx, scope, kind, year))
}

func (m *mockReportService) DailyReport(ctx context.Context, scope *uuid.UUID, kind service.Kind, year, month int) (*service.BucketReport, error) {
	return m.bucketReport(m.Called(ctx, scope, kind, year, month))
}

func (m *mockReportService) CashFlowReport(ctx context.Context, scope *uuid.UUID, year, month int) (*service.CashFlowReport, error) {
	args := m.Called(ctx, scope, year, month)
	r, _ := args.Get(0).(*service.CashFlowReport)
	return r, args.Error(1)
}

func (m *mockReportService) MonthTotal(ctx context.Context, scope *uuid.UUID, kind service.Kind, year, month int) (decimal.Decimal, error) {
	args := m.Called(ctx, scope, kind, year, month)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockReportService) CategoryReport(ctx context.Context, scope *uuid.UUID, query service.CategoryQuery) ([]finance.CategorySummary, error) {
	args := m.Called(ctx, scope, query)
	groups, _ := args.Get(0).([]finance.CategorySummary)
	return groups, args.Error(1)
}

func (m *mockReportService) EntriesInRange(ctx context.Context, scope *uuid.UUID, kind service.Kind, start, end time.Time) ([]finance.Entry, error) {
	args := m.Called(ctx, scope, kind, start, end)
	entries, _ := args.Get(0).([]finance.Entry)
	return entries, args.Error(1)
}

func newTestAPI(t *testing.T, svc reportService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewPeriodReportHandler(svc).Register(api)
	NewCashFlowHandler(svc).Register(api)
	NewMonthTotalHandler(svc).Register(api)
	NewCategoriesHandler(svc).Register(api)
	NewRangeHandler(svc).Register(api)
	return api
}

var userID = uuid.Must(uuid.FromString("1a2b3c4d-5e6f-4a7b-8c9d-0e1f2a3b4c5d"))

func weeklyMarch2024(t *testing.T) *service.BucketReport {
	t.Helper()
	buckets, err := finance.WeeksOfMonth(2024, 3)
	require.NoError(t, err)
	finance.Assign(buckets, []finance.Entry{
		{ID: uuid.Must(uuid.NewV4()), Label: "rent", Category: "Housing", Amount: decimal.NewFromInt(100), Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		{ID: uuid.Must(uuid.NewV4()), Label: "food", Category: "Food", Amount: decimal.NewFromInt(150), Date: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)},
	})
	finance.ApplyTrend(buckets)
	start, end := finance.Span(buckets)
	return &service.BucketReport{
		Kind:    service.KindExpense,
		Start:   start,
		End:     end,
		Total:   decimal.NewFromInt(250),
		Buckets: buckets,
	}
}

func TestHTTP_WeeklyReport(t *testing.T) {
	svc := new(mockReportService)
	svc.On("WeeklyReport", mock.Anything, &userID, service.KindExpense, 2024, 3).Return(weeklyMarch2024(t), nil)

	resp := newTestAPI(t, svc).Get("/v1/report/expense/weekly/2024/3?userID=" + userID.String())

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var body BucketReport
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Buckets, 4)
	assert.Equal(t, "2024-03-01", body.Start)
	assert.Equal(t, "2024-03-31", body.End)
	assert.Equal(t, "2024-03-22", body.Buckets[3].Start)
	assert.Equal(t, "2024-03-31", body.Buckets[3].End)
	assert.Nil(t, body.Buckets[0].ChangePercent)
	require.NotNil(t, body.Buckets[1].ChangePercent)
	assert.Equal(t, "50.00", *body.Buckets[1].ChangePercent)
	assert.Equal(t, "150.00", body.Buckets[1].Total)
	assert.Len(t, body.Buckets[1].Items, 1)
	assert.Equal(t, "250.00", body.Total)
}

func TestHTTP_MalformedPeriod(t *testing.T) {
	paths := []string{
		"/v1/report/income/weekly/2024/13",
		"/v1/report/income/weekly/2024/march",
		"/v1/report/income/daily/twenty/3",
		"/v1/report/income/monthly/20x4",
		"/v1/report/income/isoweekly/0",
		"/v1/report/expense/total/2024/0",
		"/v1/cashflow/2024/abc",
	}
	svc := new(mockReportService)
	api := newTestAPI(t, svc)

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			resp := api.Get(path)
			assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
		})
	}
	svc.AssertNotCalled(t, "WeeklyReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	svc.AssertNotCalled(t, "CashFlowReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTP_PeriodReports_Routing(t *testing.T) {
	svc := new(mockReportService)
	empty := &service.BucketReport{Kind: service.KindIncome, Total: decimal.Zero}
	svc.On("DailyReport", mock.Anything, (*uuid.UUID)(nil), service.KindIncome, 2024, 2).Return(empty, nil)
	svc.On("MonthlyReport", mock.Anything, (*uuid.UUID)(nil), service.KindIncome, 2024).Return(empty, nil)
	svc.On("ISOWeeklyReport", mock.Anything, (*uuid.UUID)(nil), service.KindIncome, 2020).Return(empty, nil)
	api := newTestAPI(t, svc)

	assert.Equal(t, http.StatusOK, api.Get("/v1/report/income/daily/2024/2").Code)
	assert.Equal(t, http.StatusOK, api.Get("/v1/report/income/monthly/2024").Code)
	assert.Equal(t, http.StatusOK, api.Get("/v1/report/income/isoweekly/2020").Code)
	assert.Equal(t, http.StatusBadRequest, api.Get("/v1/report/salary/monthly/2024").Code)
	assert.Equal(t, http.StatusBadRequest, api.Get("/v1/report/income/monthly/2024?userID=bob").Code)
	svc.AssertExpectations(t)
}

func TestHTTP_CashFlow(t *testing.T) {
	incomes, _ := finance.WeeksOfMonth(2024, 3)
	expenses, _ := finance.WeeksOfMonth(2024, 3)
	incomes[0].Total = decimal.NewFromInt(1000)
	expenses[0].Total = decimal.NewFromInt(300)
	weeks := make([]service.CashFlowWeek, 4)
	for i := range weeks {
		weeks[i] = service.CashFlowWeek{
			Index:   i + 1,
			Start:   incomes[i].Start,
			End:     incomes[i].End,
			Income:  incomes[i],
			Expense: expenses[i],
			Net:     incomes[i].Total.Sub(expenses[i].Total),
		}
	}
	svc := new(mockReportService)
	svc.On("CashFlowReport", mock.Anything, (*uuid.UUID)(nil), 2024, 3).Return(&service.CashFlowReport{
		Start:        incomes[0].Start,
		End:          incomes[3].End,
		Weeks:        weeks,
		TotalIncome:  decimal.NewFromInt(1000),
		TotalExpense: decimal.NewFromInt(300),
		Net:          decimal.NewFromInt(700),
	}, nil)

	resp := newTestAPI(t, svc).Get("/v1/cashflow/2024/3")

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var body struct {
		Net   string         `json:"net"`
		Weeks []CashFlowWeek `json:"weeks"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "700.00", body.Net)
	require.Len(t, body.Weeks, 4)
	assert.Equal(t, "700.00", body.Weeks[0].Net)
	assert.Equal(t, "1000.00", body.Weeks[0].Income.Total)
}

func TestHTTP_MonthTotal(t *testing.T) {
	svc := new(mockReportService)
	svc.On("MonthTotal", mock.Anything, &userID, service.KindExpense, 2024, 4).Return(decimal.Zero, nil)

	resp := newTestAPI(t, svc).Get("/v1/report/expense/total/2024/4?userID=" + userID.String())

	require.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Total string `json:"total"`
		Month int    `json:"month"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "0.00", body.Total)
	assert.Equal(t, 4, body.Month)
}

func TestHTTP_Categories(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC)
	svc := new(mockReportService)
	svc.On("CategoryReport", mock.Anything, (*uuid.UUID)(nil), mock.MatchedBy(func(q service.CategoryQuery) bool {
		return q.Kind == service.KindExpense && q.Key == finance.GroupByLabel && q.WithItems &&
			q.Start.Equal(start) && q.End.Equal(end)
	})).Return(finance.GroupBy([]finance.Entry{
		{Label: "landlord", Amount: decimal.NewFromInt(100)},
		{Label: "market", Amount: decimal.NewFromInt(30)},
		{Label: "market", Amount: decimal.NewFromInt(20)},
	}, finance.GroupByLabel), nil)

	resp := newTestAPI(t, svc).Get("/v1/report/expense/categories?groupBy=description&items=true&startDate=2024-01-01&endDate=2024-01-31")

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var body struct {
		Groups []CategorySummary `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Groups, 2)
	assert.Equal(t, "landlord", body.Groups[0].Category)
	assert.Equal(t, "market", body.Groups[1].Category)
	assert.Equal(t, int64(2), body.Groups[1].Count)
	assert.Equal(t, "25.00", body.Groups[1].AverageAmount)
	assert.Len(t, body.Groups[1].Items, 2)
}

func TestHTTP_Categories_BadGroupBy(t *testing.T) {
	svc := new(mockReportService)

	resp := newTestAPI(t, svc).Get("/v1/report/income/categories?groupBy=amount")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	svc.AssertNotCalled(t, "CategoryReport", mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTP_Range(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 23, 59, 59, 999999999, time.UTC)
	svc := new(mockReportService)
	svc.On("EntriesInRange", mock.Anything, &userID, service.KindIncome, start, end).Return([]finance.Entry{
		{ID: uuid.Must(uuid.NewV4()), Label: "refund", Category: "Other", Amount: decimal.RequireFromString("4.5"), Date: start},
		{ID: uuid.Must(uuid.NewV4()), Label: "salary", Category: "Salary", Amount: decimal.RequireFromString("100"), Date: end},
	}, nil)

	resp := newTestAPI(t, svc).Get("/v1/report/income/range?startDate=2024-06-01&endDate=2024-06-30&userID=" + userID.String())

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var body struct {
		Total   string `json:"total"`
		Entries []Item `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "104.50", body.Total)
	assert.Len(t, body.Entries, 2)
}

func TestHTTP_Range_Inverted(t *testing.T) {
	svc := new(mockReportService)
	svc.On("EntriesInRange", mock.Anything, (*uuid.UUID)(nil), service.KindExpense, mock.Anything, mock.Anything).Return([]finance.Entry{}, nil)

	resp := newTestAPI(t, svc).Get("/v1/report/expense/range?startDate=2024-06-30&endDate=2024-06-01")

	require.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Total   string `json:"total"`
		Entries []Item `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "0.00", body.Total)
	assert.Empty(t, body.Entries)
}
