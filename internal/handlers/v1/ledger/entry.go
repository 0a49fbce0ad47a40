package ledger

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// Entry is the API response model for an income or expense.
type Entry struct {
	ID        string `json:"id" doc:"Entry UUID"`
	UserID    string `json:"userID" doc:"Owner UUID"`
	Kind      string `json:"kind" enum:"income,expense"`
	Amount    string `json:"amount" doc:"Decimal amount"`
	Category  string `json:"category"`
	Label     string `json:"label" doc:"Income source or expense description"`
	Date      string `json:"date" format:"date-time"`
	CreatedAt string `json:"createdAt" format:"date-time"`
}

func entryToResponse(e service.Entry) Entry {
	return Entry{
		ID:        e.ID.String(),
		UserID:    e.UserID.String(),
		Kind:      e.Kind.String(),
		Amount:    apierror.FormatMoney(e.Amount),
		Category:  e.Category,
		Label:     e.Label,
		Date:      e.Date.Format(time.RFC3339),
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}

// EntryPath identifies the owner and the ledger in the URL.
type EntryPath struct {
	UserID string `path:"userID" doc:"Owner UUID"`
	Kind   string `path:"kind" doc:"income or expense"`
}

// EntryBody carries the writable fields of an entry.
type EntryBody struct {
	Amount   string `json:"amount" doc:"Non-negative decimal amount (e.g. '12.50')"`
	Category string `json:"category,omitempty" doc:"Category, defaults to Other"`
	Label    string `json:"label,omitempty" doc:"Income source or expense description"`
	Date     string `json:"date,omitempty" doc:"YYYY-MM-DD or RFC3339; defaults to now on create and unchanged on update"`
}

// parseEntry builds a service entry from the path and body.
func parseEntry(path EntryPath, body EntryBody) (service.Entry, error) {
	userID, err := apierror.ParseUUID("userID", path.UserID)
	if err != nil {
		return service.Entry{}, err
	}
	kind, err := apierror.ParseKind(path.Kind)
	if err != nil {
		return service.Entry{}, err
	}
	amount, err := apierror.ParseAmount("amount", body.Amount)
	if err != nil {
		return service.Entry{}, err
	}
	date, err := apierror.ParseDate("date", body.Date)
	if err != nil {
		return service.Entry{}, err
	}

	entry := service.Entry{
		UserID:   userID,
		Kind:     kind,
		Amount:   amount,
		Category: body.Category,
		Label:    body.Label,
	}
	if date != nil {
		entry.Date = *date
	}
	return entry, nil
}

type ledgerService interface {
	CreateEntry(ctx context.Context, entry service.Entry) (uuid.UUID, error)
	UpdateEntry(ctx context.Context, entry service.Entry) error
	DeleteEntry(ctx context.Context, kind service.Kind, userID, id uuid.UUID) error
	ListEntries(ctx context.Context, kind service.Kind, userID uuid.UUID, cursor *service.EntryCursor) ([]service.Entry, *service.EntryCursor, error)
}
