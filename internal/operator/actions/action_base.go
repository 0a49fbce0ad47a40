package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/finance"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

// IAction is a write command performed inside one storage transaction. An
// error rolls the whole transaction back.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

// storeError translates table errors into the finance taxonomy.
func storeError(op string, err error) error {
	if errors.Is(err, sqlconfig.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, finance.ErrNotFound)
	}
	if errors.Is(err, sqlconfig.ErrAlreadyExists) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return finance.StoreFailure(op, err)
}

// lockUser loads the user row with FOR UPDATE so concurrent writers for the
// same user queue behind this transaction.
func lockUser(ctx context.Context, writer *storage.Writer, userID uuid.UUID) (*sqlconfig.User, error) {
	user, err := writer.Users.FindByID(ctx, userID, true)
	if err != nil {
		return nil, storeError("find user", err)
	}
	return user, nil
}

// reconcile recomputes and persists the balance of an already locked user.
func reconcile(ctx context.Context, writer *storage.Writer, userID uuid.UUID) (finance.Reconciliation, error) {
	filter := &sqlconfig.LedgerFilter{UserID: &userID}

	totalIncome, err := writer.Incomes.Sum(ctx, filter)
	if err != nil {
		return finance.Reconciliation{}, storeError("sum incomes", err)
	}
	totalExpense, err := writer.Expenses.Sum(ctx, filter)
	if err != nil {
		return finance.Reconciliation{}, storeError("sum expenses", err)
	}

	result := finance.Reconcile(totalIncome, totalExpense)
	if err = writer.Users.UpdateBalance(ctx, userID, result.Balance); err != nil {
		return finance.Reconciliation{}, storeError("update balance", err)
	}
	return result, nil
}
