package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

type CreateUser struct {
	Username string
	Target   decimal.Decimal

	ID uuid.UUID
}

func (c *CreateUser) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Users.Insert(ctx, &sqlconfig.UserCreate{
		Username: c.Username,
		Target:   c.Target,
	})
	if err != nil {
		return storeError("insert user", err)
	}
	c.ID = id
	return nil
}

type SetTarget struct {
	UserID uuid.UUID
	Target decimal.Decimal
}

func (s *SetTarget) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := writer.Users.UpdateTarget(ctx, s.UserID, s.Target); err != nil {
		return storeError("update target", err)
	}
	return nil
}
