package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// User represents a user record. Balance is a cache of the user's ledger and
// is only written by reconciliation.
type User struct {
	ID        uuid.UUID       `db:"id"`
	Username  string          `db:"username"`
	Balance   decimal.Decimal `db:"balance"`
	Target    decimal.Decimal `db:"target"`
	CreatedAt time.Time       `db:"created_at"`
}

// UserCreate is the input for creating a new user.
type UserCreate struct {
	Username string
	Target   decimal.Decimal
}

// IUserTable defines the interface for user storage operations.
type IUserTable interface {
	FindByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*User, error)
	Insert(ctx context.Context, create *UserCreate) (uuid.UUID, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
	UpdateTarget(ctx context.Context, id uuid.UUID, target decimal.Decimal) error
}
