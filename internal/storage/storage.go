package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/finance-tracker/internal/config"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

// Storage is the read side of the store plus the entry point for write
// transactions.
type Storage struct {
	sqlDB    *sql.DB
	DB       bob.DB
	Users    sqlconfig.IUserTable
	Incomes  sqlconfig.ILedgerTable
	Expenses sqlconfig.ILedgerTable
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresURL())
	if err != nil {
		return nil, err
	}
	return NewStorageFromDB(db), nil
}

// NewStorageFromDB wires the tables over an open database handle.
func NewStorageFromDB(db *sql.DB) *Storage {
	exec := bob.NewDB(db)
	return &Storage{
		sqlDB:    db,
		DB:       exec,
		Users:    sqlconfig.NewUsersTable(exec),
		Incomes:  sqlconfig.NewLedgerTable(exec, sqlconfig.LedgerKindIncome),
		Expenses: sqlconfig.NewLedgerTable(exec, sqlconfig.LedgerKindExpense),
	}
}

// Ledger returns the table for kind.
func (s *Storage) Ledger(kind sqlconfig.LedgerKind) sqlconfig.ILedgerTable {
	if kind == sqlconfig.LedgerKindExpense {
		return s.Expenses
	}
	return s.Incomes
}

// Write opens a transaction and returns a Writer bound to it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}

// SQL exposes the underlying handle for migrations and health checks.
func (s *Storage) SQL() *sql.DB {
	return s.sqlDB
}

func (s *Storage) Close() error {
	if s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}
