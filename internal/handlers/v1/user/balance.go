package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

type BalanceInput struct {
	UserPath
}

type ReconcileBalanceOutput struct {
	Body struct {
		Balance      string `json:"balance" doc:"Total income minus total expense, may be negative"`
		TotalIncome  string `json:"totalIncome"`
		TotalExpense string `json:"totalExpense"`
	}
}

type ProgressOutput struct {
	Body struct {
		Balance         string `json:"balance"`
		Target          string `json:"target"`
		ProgressPercent string `json:"progressPercent" doc:"Balance as a percentage of target, two decimals, not capped"`
	}
}

// BalanceHandler serves the reconcile command and the progress query.
type BalanceHandler struct {
	BalanceService balanceService
}

func NewBalanceHandler(svc balanceService) *BalanceHandler {
	return &BalanceHandler{BalanceService: svc}
}

func (h *BalanceHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "reconcile-balance",
		Method:      http.MethodPost,
		Path:        "/v1/user/{userID}/balance/reconcile",
		Summary:     "Reconcile the balance",
		Description: "Recomputes the stored balance as total income minus total expense.",
		Tags:        []string{"Balance"},
	}, h.reconcile)

	huma.Register(api, huma.Operation{
		OperationID: "balance-progress",
		Method:      http.MethodGet,
		Path:        "/v1/user/{userID}/balance/progress",
		Summary:     "Progress toward the savings target",
		Tags:        []string{"Balance"},
	}, h.progress)
}

func (h *BalanceHandler) reconcile(ctx context.Context, input *BalanceInput) (*ReconcileBalanceOutput, error) {
	id, err := apierror.ParseUUID("userID", input.UserID)
	if err != nil {
		return nil, err
	}
	logging.Add(ctx, "userID", id.String())

	result, err := h.BalanceService.ReconcileBalance(ctx, id)
	if err != nil {
		return nil, apierror.FromService(ctx, "failed to reconcile balance", err)
	}

	out := &ReconcileBalanceOutput{}
	out.Body.Balance = apierror.FormatMoney(result.Balance)
	out.Body.TotalIncome = apierror.FormatMoney(result.TotalIncome)
	out.Body.TotalExpense = apierror.FormatMoney(result.TotalExpense)
	return out, nil
}

func (h *BalanceHandler) progress(ctx context.Context, input *BalanceInput) (*ProgressOutput, error) {
	id, err := apierror.ParseUUID("userID", input.UserID)
	if err != nil {
		return nil, err
	}
	logging.Add(ctx, "userID", id.String())

	progress, err := h.BalanceService.Progress(ctx, id)
	if err != nil {
		return nil, apierror.FromService(ctx, "failed to evaluate progress", err)
	}

	out := &ProgressOutput{}
	out.Body.Balance = apierror.FormatMoney(progress.Balance)
	out.Body.Target = apierror.FormatMoney(progress.Target)
	out.Body.ProgressPercent = apierror.FormatMoney(progress.ProgressPercent)
	return out, nil
}
