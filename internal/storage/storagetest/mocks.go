// Package storagetest holds testify mocks for the storage tables.
package storagetest

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

var (
	_ sqlconfig.IUserTable   = (*MockUserTable)(nil)
	_ sqlconfig.ILedgerTable = (*MockLedgerTable)(nil)
	_ storage.Committer      = (*MockCommitter)(nil)
)

type MockUserTable struct {
	mock.Mock
}

func (m *MockUserTable) FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*sqlconfig.User, error) {
	args := m.Called(ctx, id, forUpdate)
	user, _ := args.Get(0).(*sqlconfig.User)
	return user, args.Error(1)
}

func (m *MockUserTable) Insert(ctx context.Context, create *sqlconfig.UserCreate) (uuid.UUID, error) {
	args := m.Called(ctx, create)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockUserTable) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	return m.Called(ctx, id, balance).Error(0)
}

func (m *MockUserTable) UpdateTarget(ctx context.Context, id uuid.UUID, target decimal.Decimal) error {
	return m.Called(ctx, id, target).Error(0)
}

type MockLedgerTable struct {
	mock.Mock
	LedgerKind sqlconfig.LedgerKind
}

func (m *MockLedgerTable) Kind() sqlconfig.LedgerKind {
	return m.LedgerKind
}

func (m *MockLedgerTable) Insert(ctx context.Context, create *sqlconfig.LedgerCreate) (uuid.UUID, error) {
	args := m.Called(ctx, create)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockLedgerTable) Update(ctx context.Context, update *sqlconfig.LedgerUpdate) error {
	return m.Called(ctx, update).Error(0)
}

func (m *MockLedgerTable) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockLedgerTable) List(ctx context.Context, filter *sqlconfig.LedgerFilter) ([]*sqlconfig.LedgerEntry, error) {
	args := m.Called(ctx, filter)
	entries, _ := args.Get(0).([]*sqlconfig.LedgerEntry)
	return entries, args.Error(1)
}

func (m *MockLedgerTable) Sum(ctx context.Context, filter *sqlconfig.LedgerFilter) (decimal.Decimal, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerTable) GroupSum(ctx context.Context, filter *sqlconfig.LedgerFilter, column sqlconfig.GroupColumn) ([]*sqlconfig.GroupTotal, error) {
	args := m.Called(ctx, filter, column)
	rows, _ := args.Get(0).([]*sqlconfig.GroupTotal)
	return rows, args.Error(1)
}

// MockCommitter records how a transaction ended.
type MockCommitter struct {
	mock.Mock
}

func (m *MockCommitter) Commit(ctx context.Context) error {
	return m.Called().Error(0)
}

func (m *MockCommitter) Rollback(ctx context.Context) error {
	return m.Called().Error(0)
}

// Tables bundles one mock per table.
type Tables struct {
	Users    *MockUserTable
	Incomes  *MockLedgerTable
	Expenses *MockLedgerTable
	Tx       *MockCommitter
}

func NewTables() *Tables {
	return &Tables{
		Users:    new(MockUserTable),
		Incomes:  &MockLedgerTable{LedgerKind: sqlconfig.LedgerKindIncome},
		Expenses: &MockLedgerTable{LedgerKind: sqlconfig.LedgerKindExpense},
		Tx:       new(MockCommitter),
	}
}

// Writer returns a Writer over the mocks.
func (t *Tables) Writer() *storage.Writer {
	return storage.NewWriterWithTables(t.Tx, t.Users, t.Incomes, t.Expenses)
}

// Storage returns a Storage whose read side is the mocks.
func (t *Tables) Storage() *storage.Storage {
	return &storage.Storage{
		Users:    t.Users,
		Incomes:  t.Incomes,
		Expenses: t.Expenses,
	}
}

// AssertExpectations checks every mock.
func (t *Tables) AssertExpectations(tt mock.TestingT) {
	t.Users.AssertExpectations(tt)
	t.Incomes.AssertExpectations(tt)
	t.Expenses.AssertExpectations(tt)
	t.Tx.AssertExpectations(tt)
}

// Transactor hands out the same Writer for every transaction.
type Transactor struct {
	Tables *Tables
	Err    error
}

func (t *Transactor) Write(ctx context.Context) (*storage.Writer, error) {
	if t.Err != nil {
		return nil, t.Err
	}
	return t.Tables.Writer(), nil
}
