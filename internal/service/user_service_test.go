package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/finance"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

func TestCreateUser_Success(t *testing.T) {
	svc, tables, _ := newTestService()
	id := uuid.Must(uuid.NewV4())
	tables.Users.On("Insert", mock.Anything, mock.MatchedBy(func(c *sqlconfig.UserCreate) bool {
		return c.Username == "grace" && c.Target.Equal(mustDecimal("5000"))
	})).Return(id, nil)

	got, err := svc.User.CreateUser(context.Background(), "grace", mustDecimal("5000"))

	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestCreateUser_NegativeTarget(t *testing.T) {
	svc, tables, processor := newTestService()

	_, err := svc.User.CreateUser(context.Background(), "grace", mustDecimal("-1"))

	assert.ErrorIs(t, err, finance.ErrInvalidTarget)
	assert.Empty(t, processor.calls)
	tables.Users.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateUser_UsernameTaken(t *testing.T) {
	svc, tables, _ := newTestService()
	tables.Users.On("Insert", mock.Anything, mock.Anything).Return(uuid.Nil, sqlconfig.ErrAlreadyExists)

	id, err := svc.User.CreateUser(context.Background(), "grace", mustDecimal("0"))

	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.NotErrorIs(t, err, finance.ErrStoreFailure)
	assert.Equal(t, uuid.Nil, id)
}

func TestGetUser(t *testing.T) {
	svc, tables, _ := newTestService()
	createdAt := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	tables.Users.On("FindByID", mock.Anything, testUserID, false).Return(&sqlconfig.User{
		ID:        testUserID,
		Username:  "grace",
		Balance:   mustDecimal("12.50"),
		Target:    mustDecimal("100"),
		CreatedAt: createdAt,
	}, nil)

	user, err := svc.User.GetUser(context.Background(), testUserID)

	require.NoError(t, err)
	assert.Equal(t, "grace", user.Username)
	assert.Equal(t, "12.50", user.Balance.StringFixed(2))
	assert.Equal(t, createdAt, user.CreatedAt)
}

func TestGetUser_NotFound(t *testing.T) {
	svc, tables, _ := newTestService()
	tables.Users.On("FindByID", mock.Anything, testUserID, false).Return(nil, sqlconfig.ErrNotFound)

	user, err := svc.User.GetUser(context.Background(), testUserID)

	assert.ErrorIs(t, err, finance.ErrNotFound)
	assert.Nil(t, user)
}

func TestSetTarget(t *testing.T) {
	svc, tables, _ := newTestService()
	tables.Users.On("UpdateTarget", mock.Anything, testUserID, mustDecimal("800")).Return(nil)

	require.NoError(t, svc.User.SetTarget(context.Background(), testUserID, mustDecimal("800")))
	assert.ErrorIs(t, svc.User.SetTarget(context.Background(), testUserID, mustDecimal("-5")), finance.ErrInvalidTarget)
	tables.Users.AssertNumberOfCalls(t, "UpdateTarget", 1)
}
