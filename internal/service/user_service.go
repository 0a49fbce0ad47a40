package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/finance"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

// UserService handles user profile logic.
type UserService struct {
	storage   *storage.Storage
	processor ActionProcessor
}

// NewUserService creates a new UserService.
func NewUserService(store *storage.Storage, processor ActionProcessor) *UserService {
	return &UserService{storage: store, processor: processor}
}

// CreateUser creates a user with a zero balance and returns its ID.
func (s *UserService) CreateUser(ctx context.Context, username string, target decimal.Decimal) (uuid.UUID, error) {
	if target.IsNegative() {
		return uuid.Nil, fmt.Errorf("%w: target must not be negative", finance.ErrInvalidTarget)
	}

	action := &actions.CreateUser{Username: username, Target: target}
	if err := s.processor.Process(ctx, action); err != nil {
		if errors.Is(err, sqlconfig.ErrAlreadyExists) {
			return uuid.Nil, fmt.Errorf("%w: %q", ErrUsernameTaken, username)
		}
		return uuid.Nil, err
	}
	return action.ID, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	row, err := s.storage.Users.FindByID(ctx, id, false)
	if err != nil {
		return nil, readError("find user", err)
	}
	return userFromStorage(row), nil
}

// SetTarget replaces the user's savings target.
func (s *UserService) SetTarget(ctx context.Context, id uuid.UUID, target decimal.Decimal) error {
	if target.IsNegative() {
		return fmt.Errorf("%w: target must not be negative", finance.ErrInvalidTarget)
	}
	return s.processor.Process(ctx, &actions.SetTarget{UserID: id, Target: target})
}
