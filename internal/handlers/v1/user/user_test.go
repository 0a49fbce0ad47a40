package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
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

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) CreateUser(ctx context.Context, username string, target decimal.Decimal) (uuid.UUID, error) {
	args := m.Called(ctx, username, target)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, id uuid.UUID) (*service.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*service.User)
	return u, args.Error(1)
}

func (m *mockUserService) SetTarget(ctx context.Context, id uuid.UUID, target decimal.Decimal) error {
	return m.Called(ctx, id, target).Error(0)
}

type mockBalanceService struct {
	mock.Mock
}

func (m *mockBalanceService) ReconcileBalance(ctx context.Context, userID uuid.UUID) (finance.Reconciliation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(finance.Reconciliation), args.Error(1)
}

func (m *mockBalanceService) Progress(ctx context.Context, userID uuid.UUID) (finance.Progress, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(finance.Progress), args.Error(1)
}

func newTestAPI(t *testing.T, users userService, balances balanceService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateUserHandler(users).Register(api)
	NewGetUserHandler(users).Register(api)
	NewSetTargetHandler(users).Register(api)
	NewBalanceHandler(balances).Register(api)
	return api
}

var userID = uuid.Must(uuid.FromString("9c4f3a5e-1d2b-4c6a-8e7f-0a1b2c3d4e5f"))

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestHTTP_CreateUser(t *testing.T) {
	users := new(mockUserService)
	users.On("CreateUser", mock.Anything, "ada", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(dec("1500"))
	})).Return(userID, nil)

	resp := newTestAPI(t, users, new(mockBalanceService)).Post("/v1/user", map[string]any{
		"username": "ada",
		"target":   "1500",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body CreateUserResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, userID.String(), body.ID)
	users.AssertExpectations(t)
}

func TestHTTP_CreateUser_DefaultTarget(t *testing.T) {
	users := new(mockUserService)
	users.On("CreateUser", mock.Anything, "ada", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.IsZero()
	})).Return(userID, nil)

	resp := newTestAPI(t, users, new(mockBalanceService)).Post("/v1/user", map[string]any{"username": "ada"})

	assert.Equal(t, http.StatusCreated, resp.Code)
}

func TestHTTP_CreateUser_NegativeTarget(t *testing.T) {
	users := new(mockUserService)

	resp := newTestAPI(t, users, new(mockBalanceService)).Post("/v1/user", map[string]any{
		"username": "ada",
		"target":   "-10",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTP_CreateUser_UsernameTaken(t *testing.T) {
	users := new(mockUserService)
	users.On("CreateUser", mock.Anything, "ada", mock.Anything).
		Return(uuid.Nil, fmt.Errorf("%w: \"ada\"", service.ErrUsernameTaken))

	resp := newTestAPI(t, users, new(mockBalanceService)).Post("/v1/user", map[string]any{"username": "ada"})

	assert.Equal(t, http.StatusConflict, resp.Code, resp.Body.String())
}

func TestHTTP_GetUser(t *testing.T) {
	users := new(mockUserService)
	users.On("GetUser", mock.Anything, userID).Return(&service.User{
		ID:        userID,
		Username:  "ada",
		Balance:   dec("-20.5"),
		Target:    dec("100"),
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil)

	resp := newTestAPI(t, users, new(mockBalanceService)).Get("/v1/user/" + userID.String())

	require.Equal(t, http.StatusOK, resp.Code)
	var body User
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "-20.50", body.Balance)
	assert.Equal(t, "100.00", body.Target)
	assert.Equal(t, "2025-01-02T03:04:05Z", body.CreatedAt)
}

func TestHTTP_GetUser_Errors(t *testing.T) {
	users := new(mockUserService)
	users.On("GetUser", mock.Anything, userID).Return(nil, fmt.Errorf("find user: %w", finance.ErrNotFound))
	api := newTestAPI(t, users, new(mockBalanceService))

	assert.Equal(t, http.StatusNotFound, api.Get("/v1/user/"+userID.String()).Code)
	assert.Equal(t, http.StatusBadRequest, api.Get("/v1/user/not-a-uuid").Code)
}

func TestHTTP_SetTarget(t *testing.T) {
	users := new(mockUserService)
	users.On("SetTarget", mock.Anything, userID, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(dec("250.75"))
	})).Return(nil)

	resp := newTestAPI(t, users, new(mockBalanceService)).Put("/v1/user/"+userID.String()+"/target", map[string]any{
		"target": "250.75",
	})

	assert.Equal(t, http.StatusNoContent, resp.Code)
	users.AssertExpectations(t)
}

func TestHTTP_ReconcileBalance(t *testing.T) {
	balances := new(mockBalanceService)
	balances.On("ReconcileBalance", mock.Anything, userID).Return(finance.Reconcile(dec("300"), dec("450.10")), nil)

	resp := newTestAPI(t, new(mockUserService), balances).Post("/v1/user/"+userID.String()+"/balance/reconcile")

	require.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		Balance      string `json:"balance"`
		TotalIncome  string `json:"totalIncome"`
		TotalExpense string `json:"totalExpense"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "-150.10", body.Balance)
	assert.Equal(t, "300.00", body.TotalIncome)
	assert.Equal(t, "450.10", body.TotalExpense)
}

func TestHTTP_ReconcileBalance_UnknownUser(t *testing.T) {
	balances := new(mockBalanceService)
	balances.On("ReconcileBalance", mock.Anything, userID).Return(finance.Reconciliation{}, finance.ErrNotFound)

	resp := newTestAPI(t, new(mockUserService), balances).Post("/v1/user/"+userID.String()+"/balance/reconcile")

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_Progress(t *testing.T) {
	balances := new(mockBalanceService)
	progress, err := finance.EvaluateProgress(dec("250"), dec("1000"))
	require.NoError(t, err)
	balances.On("Progress", mock.Anything, userID).Return(progress, nil).Once()

	api := newTestAPI(t, new(mockUserService), balances)
	resp := api.Get("/v1/user/" + userID.String() + "/balance/progress")

	require.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		ProgressPercent string `json:"progressPercent"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "25.00", body.ProgressPercent)

	balances.On("Progress", mock.Anything, userID).Return(finance.Progress{}, finance.ErrInvalidTarget).Once()
	assert.Equal(t, http.StatusUnprocessableEntity, api.Get("/v1/user/"+userID.String()+"/balance/progress").Code)

	balances.On("Progress", mock.Anything, userID).Return(finance.Progress{}, finance.StoreFailure("find user", errors.New("down"))).Once()
	assert.Equal(t, http.StatusInternalServerError, api.Get("/v1/user/"+userID.String()+"/balance/progress").Code)
}
