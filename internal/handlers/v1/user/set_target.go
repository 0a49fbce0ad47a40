package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

type SetTargetInput struct {
	UserPath
	Body struct {
		Target string `json:"target" doc:"New savings target, must not be negative"`
	}
}

// SetTargetHandler handles PUT /v1/user/{userID}/target.
type SetTargetHandler struct {
	UserService userService
}

func NewSetTargetHandler(svc userService) *SetTargetHandler {
	return &SetTargetHandler{UserService: svc}
}

func (h *SetTargetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "set-user-target",
		Method:        http.MethodPut,
		Path:          "/v1/user/{userID}/target",
		Summary:       "Set the savings target",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusNoContent,
	}, h.handle)
}

func (h *SetTargetHandler) handle(ctx context.Context, input *SetTargetInput) (*struct{}, error) {
	id, err := apierror.ParseUUID("userID", input.UserID)
	if err != nil {
		return nil, err
	}
	target, err := apierror.ParseAmount("target", input.Body.Target)
	if err != nil {
		return nil, err
	}
	logging.Add(ctx, "userID", id.String())

	if err = h.UserService.SetTarget(ctx, id, target); err != nil {
		return nil, apierror.FromService(ctx, "failed to set target", err)
	}
	return nil, nil
}
