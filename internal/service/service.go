package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/carson-networks/finance-tracker/internal/finance"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

// ActionProcessor runs a write action in its own transaction.
// *operator.OperatorDelegator satisfies it.
type ActionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	User    *UserService
	Ledger  *LedgerService
	Report  *ReportService
	Balance *BalanceService
}

// NewService creates a new Service with the given storage and write processor.
func NewService(store *storage.Storage, processor ActionProcessor) *Service {
	return &Service{
		User:    NewUserService(store, processor),
		Ledger:  NewLedgerService(store, processor),
		Report:  NewReportService(store),
		Balance: NewBalanceService(store, processor),
	}
}

// readError translates table errors on the read path.
func readError(op string, err error) error {
	if errors.Is(err, sqlconfig.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, finance.ErrNotFound)
	}
	return finance.StoreFailure(op, err)
}
