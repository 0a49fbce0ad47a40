package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// LedgerKind selects the income or the expense ledger.
type LedgerKind int8

const (
	LedgerKindIncome LedgerKind = iota
	LedgerKindExpense
)

func (k LedgerKind) String() string {
	if k == LedgerKindExpense {
		return "expense"
	}
	return "income"
}

func (k LedgerKind) table() string {
	if k == LedgerKindExpense {
		return "expenses"
	}
	return "incomes"
}

// labelColumn is "source" for incomes and "description" for expenses.
func (k LedgerKind) labelColumn() string {
	if k == LedgerKindExpense {
		return "description"
	}
	return "source"
}

// LedgerEntry represents an income or expense record.
type LedgerEntry struct {
	ID        uuid.UUID       `db:"id"`
	UserID    uuid.UUID       `db:"user_id"`
	Amount    decimal.Decimal `db:"amount"`
	Category  string          `db:"category"`
	Label     string          `db:"label"`
	Date      time.Time       `db:"date"`
	CreatedAt time.Time       `db:"created_at"`
}

// LedgerCreate is the input for creating a new entry.
type LedgerCreate struct {
	UserID   uuid.UUID
	Amount   decimal.Decimal
	Category string
	Label    string
	Date     time.Time // defaults to now if zero
}

// LedgerUpdate replaces the mutable fields of an entry owned by UserID.
type LedgerUpdate struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Amount   decimal.Decimal
	Category string
	Label    string
	Date     *time.Time // unchanged if nil
}

// LedgerFilter specifies filters for listing and summing entries. A nil
// UserID spans every user. Start and End are inclusive.
type LedgerFilter struct {
	UserID          *uuid.UUID
	Start           *time.Time
	End             *time.Time
	MaxCreationTime *time.Time
	Limit           int
	Offset          int
	Ascending       bool
}

// GroupColumn is the column used by GroupSum.
type GroupColumn int8

const (
	GroupColumnCategory GroupColumn = iota
	GroupColumnLabel
)

// GroupTotal is one row of a grouped sum.
type GroupTotal struct {
	Key         string          `db:"key"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	Count       int64           `db:"count"`
}

// ILedgerTable defines the interface for income/expense storage operations.
type ILedgerTable interface {
	Kind() LedgerKind
	Insert(ctx context.Context, create *LedgerCreate) (uuid.UUID, error)
	Update(ctx context.Context, update *LedgerUpdate) error
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
	List(ctx context.Context, filter *LedgerFilter) ([]*LedgerEntry, error)
	Sum(ctx context.Context, filter *LedgerFilter) (decimal.Decimal, error)
	GroupSum(ctx context.Context, filter *LedgerFilter, column GroupColumn) ([]*GroupTotal, error)
}
