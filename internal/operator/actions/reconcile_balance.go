package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/finance"
	"github.com/carson-networks/finance-tracker/internal/storage"
)

// ReconcileBalance overwrites a user's balance with total income minus total
// expense. Result is set once Perform succeeds.
type ReconcileBalance struct {
	UserID uuid.UUID

	Result finance.Reconciliation
}

func (r *ReconcileBalance) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := lockUser(ctx, writer, r.UserID); err != nil {
		return err
	}

	result, err := reconcile(ctx, writer, r.UserID)
	if err != nil {
		return err
	}
	r.Result = result
	return nil
}
