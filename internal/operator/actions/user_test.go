package actions

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/finance"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
	"github.com/carson-networks/finance-tracker/internal/storage/storagetest"
)

func TestCreateUser_Perform(t *testing.T) {
	tables := storagetest.NewTables()
	id := uuid.Must(uuid.NewV4())
	tables.Users.On("Insert", mock.Anything, &sqlconfig.UserCreate{
		Username: "ada",
		Target:   decimal.NewFromInt(1000),
	}).Return(id, nil)

	action := &CreateUser{Username: "ada", Target: decimal.NewFromInt(1000)}
	require.NoError(t, action.Perform(context.Background(), tables.Writer()))

	assert.Equal(t, id, action.ID)
	tables.AssertExpectations(t)
}

func TestCreateUser_StoreFailure(t *testing.T) {
	tables := storagetest.NewTables()
	tables.Users.On("Insert", mock.Anything, mock.Anything).Return(uuid.Nil, errors.New("connection reset"))

	err := (&CreateUser{Username: "ada"}).Perform(context.Background(), tables.Writer())

	assert.ErrorIs(t, err, finance.ErrStoreFailure)
}

func TestCreateUser_UsernameTaken(t *testing.T) {
	tables := storagetest.NewTables()
	tables.Users.On("Insert", mock.Anything, mock.Anything).Return(uuid.Nil, sqlconfig.ErrAlreadyExists)

	action := &CreateUser{Username: "ada"}
	err := action.Perform(context.Background(), tables.Writer())

	assert.ErrorIs(t, err, sqlconfig.ErrAlreadyExists)
	assert.NotErrorIs(t, err, finance.ErrStoreFailure)
	assert.Equal(t, uuid.Nil, action.ID)
}

func TestSetTarget_Perform(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{name: "updated"},
		{name: "missing user", dbErr: sqlconfig.ErrNotFound, wantErr: finance.ErrNotFound},
		{name: "store failure", dbErr: errors.New("boom"), wantErr: finance.ErrStoreFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := storagetest.NewTables()
			tables.Users.On("UpdateTarget", mock.Anything, testUserID, decimal.NewFromInt(500)).Return(tt.dbErr)

			err := (&SetTarget{UserID: testUserID, Target: decimal.NewFromInt(500)}).Perform(context.Background(), tables.Writer())

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			tables.Users.AssertExpectations(t)
		})
	}
}
