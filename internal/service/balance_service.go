package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/finance"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

// BalanceService reconciles balances and measures them against targets.
type BalanceService struct {
	storage   *storage.Storage
	processor ActionProcessor
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(store *storage.Storage, processor ActionProcessor) *BalanceService {
	return &BalanceService{storage: store, processor: processor}
}

// ReconcileBalance recomputes the stored balance from the user's ledger.
// Running it twice without ledger changes yields the same balance.
func (s *BalanceService) ReconcileBalance(ctx context.Context, userID uuid.UUID) (finance.Reconciliation, error) {
	defer logging.Time(ctx, "BalanceService.ReconcileBalance")()

	action := &actions.ReconcileBalance{UserID: userID}
	if err := s.processor.Process(ctx, action); err != nil {
		return finance.Reconciliation{}, err
	}
	logging.Add(ctx, "balance", action.Result.Balance.String())
	return action.Result, nil
}

// Progress evaluates the stored balance against the user's target. The
// balance is used as last reconciled.
func (s *BalanceService) Progress(ctx context.Context, userID uuid.UUID) (finance.Progress, error) {
	user, err := s.storage.Users.FindByID(ctx, userID, false)
	if err != nil {
		return finance.Progress{}, readError("find user", err)
	}
	return finance.EvaluateProgress(user.Balance, user.Target)
}
