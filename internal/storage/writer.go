package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

// Committer ends a write transaction.
type Committer interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer groups the tables bound to a single transaction.
type Writer struct {
	tx       Committer
	Users    sqlconfig.IUserTable
	Incomes  sqlconfig.ILedgerTable
	Expenses sqlconfig.ILedgerTable
}

func NewWriter(tx bob.Tx) *Writer {
	return NewWriterWithTables(tx,
		sqlconfig.NewUsersTable(tx),
		sqlconfig.NewLedgerTable(tx, sqlconfig.LedgerKindIncome),
		sqlconfig.NewLedgerTable(tx, sqlconfig.LedgerKindExpense),
	)
}

// NewWriterWithTables builds a Writer from already bound tables.
func NewWriterWithTables(tx Committer, users sqlconfig.IUserTable, incomes, expenses sqlconfig.ILedgerTable) *Writer {
	return &Writer{
		tx:       tx,
		Users:    users,
		Incomes:  incomes,
		Expenses: expenses,
	}
}

// Ledger returns the transactional table for kind.
func (w *Writer) Ledger(kind sqlconfig.LedgerKind) sqlconfig.ILedgerTable {
	if kind == sqlconfig.LedgerKindExpense {
		return w.Expenses
	}
	return w.Incomes
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
