package user

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/finance"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// User is the API response model for a user.
type User struct {
	ID        string `json:"id" doc:"User UUID"`
	Username  string `json:"username" doc:"Unique user name"`
	Balance   string `json:"balance" doc:"Decimal balance as of the last reconciliation"`
	Target    string `json:"target" doc:"Decimal savings target"`
	CreatedAt string `json:"createdAt" format:"date-time" doc:"Creation timestamp"`
}

func userToResponse(u *service.User) User {
	return User{
		ID:        u.ID.String(),
		Username:  u.Username,
		Balance:   apierror.FormatMoney(u.Balance),
		Target:    apierror.FormatMoney(u.Target),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// UserPath identifies the user in the URL.
type UserPath struct {
	UserID string `path:"userID" doc:"User UUID"`
}

// userService is the user and balance behaviour the handlers need.
type userService interface {
	CreateUser(ctx context.Context, username string, target decimal.Decimal) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*service.User, error)
	SetTarget(ctx context.Context, id uuid.UUID, target decimal.Decimal) error
}

type balanceService interface {
	ReconcileBalance(ctx context.Context, userID uuid.UUID) (finance.Reconciliation, error)
	Progress(ctx context.Context, userID uuid.UUID) (finance.Progress, error)
}
