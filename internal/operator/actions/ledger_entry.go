package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/finance"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

// CreateEntry records an income or expense and reconciles the owner's
// balance in the same transaction.
type CreateEntry struct {
	Kind     sqlconfig.LedgerKind
	UserID   uuid.UUID
	Amount   decimal.Decimal
	Category string
	Label    string
	Date     time.Time

	ID             uuid.UUID
	Reconciliation finance.Reconciliation
}

func (c *CreateEntry) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := lockUser(ctx, writer, c.UserID); err != nil {
		return err
	}

	id, err := writer.Ledger(c.Kind).Insert(ctx, &sqlconfig.LedgerCreate{
		UserID:   c.UserID,
		Amount:   c.Amount,
		Category: finance.NormalizeCategory(c.Category),
		Label:    c.Label,
		Date:     c.Date,
	})
	if err != nil {
		return storeError("insert "+c.Kind.String(), err)
	}

	result, err := reconcile(ctx, writer, c.UserID)
	if err != nil {
		return err
	}
	c.ID = id
	c.Reconciliation = result
	return nil
}

// UpdateEntry rewrites an entry owned by UserID and reconciles the balance.
type UpdateEntry struct {
	Kind     sqlconfig.LedgerKind
	ID       uuid.UUID
	UserID   uuid.UUID
	Amount   decimal.Decimal
	Category string
	Label    string
	Date     *time.Time

	Reconciliation finance.Reconciliation
}

func (u *UpdateEntry) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := lockUser(ctx, writer, u.UserID); err != nil {
		return err
	}

	err := writer.Ledger(u.Kind).Update(ctx, &sqlconfig.LedgerUpdate{
		ID:       u.ID,
		UserID:   u.UserID,
		Amount:   u.Amount,
		Category: finance.NormalizeCategory(u.Category),
		Label:    u.Label,
		Date:     u.Date,
	})
	if err != nil {
		return storeError("update "+u.Kind.String(), err)
	}

	result, err := reconcile(ctx, writer, u.UserID)
	if err != nil {
		return err
	}
	u.Reconciliation = result
	return nil
}

// DeleteEntry removes an entry owned by UserID and reconciles the balance.
type DeleteEntry struct {
	Kind   sqlconfig.LedgerKind
	ID     uuid.UUID
	UserID uuid.UUID

	Reconciliation finance.Reconciliation
}

func (d *DeleteEntry) Perform(ctx context.Context, writer *storage.Writer) error {
	if _, err := lockUser(ctx, writer, d.UserID); err != nil {
		return err
	}

	if err := writer.Ledger(d.Kind).Delete(ctx, d.UserID, d.ID); err != nil {
		return storeError("delete "+d.Kind.String(), err)
	}

	result, err := reconcile(ctx, writer, d.UserID)
	if err != nil {
		return err
	}
	d.Reconciliation = result
	return nil
}
