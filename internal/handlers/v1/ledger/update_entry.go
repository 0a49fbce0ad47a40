package ledger

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

type UpdateEntryInput struct {
	EntryPath
	EntryID string `path:"entryID" doc:"Entry UUID"`
	Body    EntryBody
}

type DeleteEntryInput struct {
	EntryPath
	EntryID string `path:"entryID" doc:"Entry UUID"`
}

// ModifyEntryHandler handles PUT and DELETE /v1/user/{userID}/{kind}/{entryID}.
// Only the owner's entries can be changed.
type ModifyEntryHandler struct {
	LedgerService ledgerService
}

func NewModifyEntryHandler(svc ledgerService) *ModifyEntryHandler {
	return &ModifyEntryHandler{LedgerService: svc}
}

func (h *ModifyEntryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "update-entry",
		Method:        http.MethodPut,
		Path:          "/v1/user/{userID}/{kind}/{entryID}",
		Summary:       "Update an income or expense",
		Tags:          []string{"Ledger"},
		DefaultStatus: http.StatusNoContent,
	}, h.update)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-entry",
		Method:        http.MethodDelete,
		Path:          "/v1/user/{userID}/{kind}/{entryID}",
		Summary:       "Delete an income or expense",
		Tags:          []string{"Ledger"},
		DefaultStatus: http.StatusNoContent,
	}, h.delete)
}

func (h *ModifyEntryHandler) update(ctx context.Context, input *UpdateEntryInput) (*struct{}, error) {
	entry, err := parseEntry(input.EntryPath, input.Body)
	if err != nil {
		return nil, err
	}
	if entry.ID, err = apierror.ParseUUID("entryID", input.EntryID); err != nil {
		return nil, err
	}
	logging.Add(ctx, "entryID", entry.ID.String())

	if err = h.LedgerService.UpdateEntry(ctx, entry); err != nil {
		return nil, apierror.FromService(ctx, "failed to update "+entry.Kind.String(), err)
	}
	return nil, nil
}

func (h *ModifyEntryHandler) delete(ctx context.Context, input *DeleteEntryInput) (*struct{}, error) {
	userID, err := apierror.ParseUUID("userID", input.UserID)
	if err != nil {
		return nil, err
	}
	kind, err := apierror.ParseKind(input.Kind)
	if err != nil {
		return nil, err
	}
	id, err := apierror.ParseUUID("entryID", input.EntryID)
	if err != nil {
		return nil, err
	}
	logging.Add(ctx, "entryID", id.String())

	if err = h.LedgerService.DeleteEntry(ctx, kind, userID, id); err != nil {
		return nil, apierror.FromService(ctx, "failed to delete "+kind.String(), err)
	}
	return nil, nil
}
