package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

type GetUserInput struct {
	UserPath
}

type GetUserOutput struct {
	Body User
}

// GetUserHandler handles GET /v1/user/{userID}.
type GetUserHandler struct {
	UserService userService
}

func NewGetUserHandler(svc userService) *GetUserHandler {
	return &GetUserHandler{UserService: svc}
}

func (h *GetUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-user",
		Method:      http.MethodGet,
		Path:        "/v1/user/{userID}",
		Summary:     "Get a user",
		Tags:        []string{"Users"},
	}, h.handle)
}

func (h *GetUserHandler) handle(ctx context.Context, input *GetUserInput) (*GetUserOutput, error) {
	id, err := apierror.ParseUUID("userID", input.UserID)
	if err != nil {
		return nil, err
	}
	logging.Add(ctx, "userID", id.String())

	u, err := h.UserService.GetUser(ctx, id)
	if err != nil {
		return nil, apierror.FromService(ctx, "failed to get user", err)
	}
	return &GetUserOutput{Body: userToResponse(u)}, nil
}
