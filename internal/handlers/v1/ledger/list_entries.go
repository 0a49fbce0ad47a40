package ledger

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// ListEntriesCursor represents a pagination cursor in request and response bodies.
// It bundles position, limit, and maxCreationTime so subsequent pages use consistent parameters.
type ListEntriesCursor struct {
	Position        int    `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit           int    `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
	MaxCreationTime string `json:"maxCreationTime" format:"date-time" doc:"Upper bound on created_at locked in from the first page"`
}

type ListEntriesInput struct {
	EntryPath
	Body struct {
		Cursor *ListEntriesCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
	}
}

type ListEntriesResponseBody struct {
	Entries    []Entry            `json:"entries" doc:"Page of entries, newest first"`
	NextCursor *ListEntriesCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

type ListEntriesOutput struct {
	Body ListEntriesResponseBody
}

// ListEntriesHandler handles POST /v1/user/{userID}/{kind}/list.
type ListEntriesHandler struct {
	LedgerService ledgerService
}

func NewListEntriesHandler(svc ledgerService) *ListEntriesHandler {
	return &ListEntriesHandler{LedgerService: svc}
}

func (h *ListEntriesHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-entries",
		Method:      http.MethodPost,
		Path:        "/v1/user/{userID}/{kind}/list",
		Summary:     "List a user's incomes or expenses",
		Description: "Returns a paginated list of entries using cursor-based pagination.",
		Tags:        []string{"Ledger"},
	}, h.handle)
}

// parseListCursor returns nil without a cursor so the service applies its
// default limit.
func parseListCursor(cursor *ListEntriesCursor) (*service.EntryCursor, error) {
	if cursor == nil {
		return nil, nil
	}
	maxCreationTime, err := time.Parse(time.RFC3339Nano, cursor.MaxCreationTime)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid cursor maxCreationTime", err)
	}
	return &service.EntryCursor{
		Position:        cursor.Position,
		Limit:           cursor.Limit,
		MaxCreationTime: maxCreationTime,
	}, nil
}

func (h *ListEntriesHandler) handle(ctx context.Context, input *ListEntriesInput) (*ListEntriesOutput, error) {
	userID, err := apierror.ParseUUID("userID", input.UserID)
	if err != nil {
		return nil, err
	}
	kind, err := apierror.ParseKind(input.Kind)
	if err != nil {
		return nil, err
	}
	cursor, err := parseListCursor(input.Body.Cursor)
	if err != nil {
		return nil, err
	}

	stopTimer := logging.Time(ctx, "listEntriesMs")
	entries, next, err := h.LedgerService.ListEntries(ctx, kind, userID, cursor)
	stopTimer()
	if err != nil {
		return nil, apierror.FromService(ctx, "failed to list "+kind.String(), err)
	}
	logging.Add(ctx, "entryCount", len(entries))

	resp := ListEntriesResponseBody{Entries: make([]Entry, len(entries))}
	for i, e := range entries {
		resp.Entries[i] = entryToResponse(e)
	}
	if next != nil {
		resp.NextCursor = &ListEntriesCursor{
			Position:        next.Position,
			Limit:           next.Limit,
			MaxCreationTime: next.MaxCreationTime.UTC().Format(time.RFC3339Nano),
		}
	}
	return &ListEntriesOutput{Body: resp}, nil
}
