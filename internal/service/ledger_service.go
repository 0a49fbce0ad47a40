package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/finance"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/sqlconfig"
)

const defaultLimit = 20

// LedgerService handles income and expense records. Every write reconciles
// the owner's balance in the same transaction.
type LedgerService struct {
	storage   *storage.Storage
	processor ActionProcessor
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(store *storage.Storage, processor ActionProcessor) *LedgerService {
	return &LedgerService{storage: store, processor: processor}
}

func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s is negative", ErrInvalidAmount, amount)
	}
	return nil
}

// CreateEntry records an entry for entry.UserID and returns its ID. A zero
// Date defaults to the creation time.
func (s *LedgerService) CreateEntry(ctx context.Context, entry Entry) (uuid.UUID, error) {
	if err := validateAmount(entry.Amount); err != nil {
		return uuid.Nil, err
	}

	action := &actions.CreateEntry{
		Kind:     kindToStorage(entry.Kind),
		UserID:   entry.UserID,
		Amount:   entry.Amount,
		Category: entry.Category,
		Label:    entry.Label,
		Date:     entry.Date,
	}
	if err := s.processor.Process(ctx, action); err != nil {
		return uuid.Nil, err
	}
	return action.ID, nil
}

// UpdateEntry rewrites an entry owned by entry.UserID. A zero Date keeps the
// stored date.
func (s *LedgerService) UpdateEntry(ctx context.Context, entry Entry) error {
	if err := validateAmount(entry.Amount); err != nil {
		return err
	}

	var date *time.Time
	if !entry.Date.IsZero() {
		date = &entry.Date
	}
	return s.processor.Process(ctx, &actions.UpdateEntry{
		Kind:     kindToStorage(entry.Kind),
		ID:       entry.ID,
		UserID:   entry.UserID,
		Amount:   entry.Amount,
		Category: entry.Category,
		Label:    entry.Label,
		Date:     date,
	})
}

// DeleteEntry removes an entry owned by userID.
func (s *LedgerService) DeleteEntry(ctx context.Context, kind Kind, userID, id uuid.UUID) error {
	return s.processor.Process(ctx, &actions.DeleteEntry{
		Kind:   kindToStorage(kind),
		ID:     id,
		UserID: userID,
	})
}

// ListEntries returns a page of a user's entries, newest first, using
// cursor-based pagination.
func (s *LedgerService) ListEntries(ctx context.Context, kind Kind, userID uuid.UUID, cursor *EntryCursor) ([]Entry, *EntryCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	filter := &sqlconfig.LedgerFilter{
		UserID:          &userID,
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}

	rows, err := s.storage.Ledger(kindToStorage(kind)).List(ctx, filter)
	if err != nil {
		return nil, nil, finance.StoreFailure("list "+kind.String(), err)
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *EntryCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &EntryCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	entries := make([]Entry, len(rows))
	for i, row := range rows {
		entries[i] = entryFromStorage(kind, row)
	}
	return entries, nextCursor, nil
}
