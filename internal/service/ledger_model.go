package service

import (
	"errors"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/finance"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

// ErrInvalidAmount is returned for negative entry amounts.
var ErrInvalidAmount = errors.New("invalid amount")

// Kind selects the income or the expense ledger.
type Kind int8

const (
	KindIncome Kind = iota
	KindExpense
)

// ParseKind accepts the singular and plural names of each ledger.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(s) {
	case "income", "incomes":
		return KindIncome, true
	case "expense", "expenses":
		return KindExpense, true
	}
	return KindIncome, false
}

func (k Kind) String() string {
	return kindToStorage(k).String()
}

func kindToStorage(k Kind) sqlconfig.LedgerKind {
	if k == KindExpense {
		return sqlconfig.LedgerKindExpense
	}
	return sqlconfig.LedgerKindIncome
}

// Entry represents an income or expense in the service layer. Label is the
// income source or the expense description.
type Entry struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Kind      Kind
	Amount    decimal.Decimal
	Category  string
	Label     string
	Date      time.Time
	CreatedAt time.Time
}

// EntryCursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type EntryCursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

func entryFromStorage(kind Kind, row *sqlconfig.LedgerEntry) Entry {
	return Entry{
		ID:        row.ID,
		UserID:    row.UserID,
		Kind:      kind,
		Amount:    row.Amount,
		Category:  finance.NormalizeCategory(row.Category),
		Label:     row.Label,
		Date:      row.Date,
		CreatedAt: row.CreatedAt,
	}
}

// snapshotsFromStorage builds the report view of stored rows.
func snapshotsFromStorage(rows []*sqlconfig.LedgerEntry) []finance.Entry {
	entries := make([]finance.Entry, len(rows))
	for i, row := range rows {
		entries[i] = finance.Entry{
			ID:       row.ID,
			Label:    row.Label,
			Category: finance.NormalizeCategory(row.Category),
			Amount:   row.Amount,
			Date:     row.Date,
		}
	}
	return entries
}
