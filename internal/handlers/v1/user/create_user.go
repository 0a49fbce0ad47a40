package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

// CreateUserInput is the Huma input for creating a user.
type CreateUserInput struct {
	Body CreateUserBody
}

type CreateUserBody struct {
	Username string `json:"username" minLength:"1" maxLength:"64" doc:"Unique user name"`
	Target   string `json:"target,omitempty" doc:"Savings target (e.g. '5000.00'), defaults to 0"`
}

type CreateUserResponse struct {
	ID string `json:"id" doc:"Created user UUID"`
}

type CreateUserOutput struct {
	Status int
	Body   CreateUserResponse
}

// CreateUserHandler handles POST /v1/user.
type CreateUserHandler struct {
	UserService userService
}

func NewCreateUserHandler(svc userService) *CreateUserHandler {
	return &CreateUserHandler{UserService: svc}
}

func (h *CreateUserHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-user",
		Method:      http.MethodPost,
		Path:        "/v1/user",
		Summary:     "Create a user",
		Description: "Creates a user with a zero balance and an optional savings target.",
		Tags:        []string{"Users"},
	}, h.handle)
}

func parseCreateUserInput(input *CreateUserInput) (string, decimal.Decimal, error) {
	target := decimal.Zero
	if input.Body.Target != "" {
		var err error
		if target, err = apierror.ParseAmount("target", input.Body.Target); err != nil {
			return "", decimal.Zero, err
		}
	}
	return input.Body.Username, target, nil
}

func (h *CreateUserHandler) handle(ctx context.Context, input *CreateUserInput) (*CreateUserOutput, error) {
	username, target, err := parseCreateUserInput(input)
	if err != nil {
		return nil, err
	}

	stopTimer := logging.Time(ctx, "createUserMs")
	id, err := h.UserService.CreateUser(ctx, username, target)
	stopTimer()
	if err != nil {
		return nil, apierror.FromService(ctx, "failed to create user", err)
	}

	logging.Add(ctx, "userID", id.String())
	return &CreateUserOutput{
		Status: http.StatusCreated,
		Body:   CreateUserResponse{ID: id.String()},
	}, nil
}
