package service

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

// ErrUsernameTaken is returned when creating a user whose username exists.
var ErrUsernameTaken = errors.New("username already taken")

// User represents a user in the service layer.
type User struct {
	ID        uuid.UUID
	Username  string
	Balance   decimal.Decimal
	Target    decimal.Decimal
	CreatedAt time.Time
}

func userFromStorage(row *sqlconfig.User) *User {
	return &User{
		ID:        row.ID,
		Username:  row.Username,
		Balance:   row.Balance,
		Target:    row.Target,
		CreatedAt: row.CreatedAt,
	}
}
