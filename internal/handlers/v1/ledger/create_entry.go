package ledger

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

type CreateEntryInput struct {
	EntryPath
	Body EntryBody
}

type CreateEntryOutput struct {
	Status int
	Body   struct {
		ID string `json:"id" doc:"Created entry UUID"`
	}
}

// CreateEntryHandler handles POST /v1/user/{userID}/{kind}.
type CreateEntryHandler struct {
	LedgerService ledgerService
}

func NewCreateEntryHandler(svc ledgerService) *CreateEntryHandler {
	return &CreateEntryHandler{LedgerService: svc}
}

func (h *CreateEntryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-entry",
		Method:      http.MethodPost,
		Path:        "/v1/user/{userID}/{kind}",
		Summary:     "Record an income or expense",
		Description: "Records the entry and reconciles the owner's balance in the same transaction.",
		Tags:        []string{"Ledger"},
	}, h.handle)
}

func (h *CreateEntryHandler) handle(ctx context.Context, input *CreateEntryInput) (*CreateEntryOutput, error) {
	entry, err := parseEntry(input.EntryPath, input.Body)
	if err != nil {
		return nil, err
	}
	logging.Add(ctx, "userID", entry.UserID.String())
	logging.Add(ctx, "kind", entry.Kind.String())

	stopTimer := logging.Time(ctx, "createEntryMs")
	id, err := h.LedgerService.CreateEntry(ctx, entry)
	stopTimer()
	if err != nil {
		return nil, apierror.FromService(ctx, "failed to create "+entry.Kind.String(), err)
	}

	logging.Add(ctx, "entryID", id.String())
	out := &CreateEntryOutput{Status: http.StatusCreated}
	out.Body.ID = id.String()
	return out, nil
}
