// Package apierror maps service errors onto HTTP problem responses.
package apierror

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/finance"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

const dateLayout = "2006-01-02"

// FromService records err on the request log and converts it to a huma error:
// not found is 404, a bad period or amount is 400, a taken username is 409,
// a zero or negative target is 422 and anything else is 500.
func FromService(ctx context.Context, msg string, err error) error {
	logging.Add(ctx, "error", err.Error())

	switch {
	case errors.Is(err, finance.ErrNotFound):
		return huma.Error404NotFound(msg, err)
	case errors.Is(err, finance.ErrInvalidPeriod), errors.Is(err, service.ErrInvalidAmount):
		return huma.Error400BadRequest(msg, err)
	case errors.Is(err, service.ErrUsernameTaken):
		return huma.Error409Conflict(msg, err)
	case errors.Is(err, finance.ErrInvalidTarget):
		return huma.Error422UnprocessableEntity(msg, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return huma.NewError(http.StatusServiceUnavailable, msg, err)
	}
	return huma.Error500InternalServerError(msg, err)
}

func ParseUUID(field, value string) (uuid.UUID, error) {
	id, err := uuid.FromString(value)
	if err != nil {
		return uuid.Nil, huma.Error400BadRequest("invalid "+field, err)
	}
	return id, nil
}

// ParseScope reads an optional user filter. Empty means every user.
func ParseScope(value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := ParseUUID("userID", value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseAmount reads a non-negative decimal string.
func ParseAmount(field, value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, huma.Error400BadRequest("invalid "+field, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, huma.Error400BadRequest(field + " must not be negative")
	}
	return amount, nil
}

func ParseKind(value string) (service.Kind, error) {
	kind, ok := service.ParseKind(value)
	if !ok {
		return kind, huma.Error400BadRequest("kind must be income or expense")
	}
	return kind, nil
}

// ParseDate accepts YYYY-MM-DD or RFC3339. Empty returns nil.
func ParseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, value); err != nil {
			return nil, huma.Error400BadRequest("invalid "+field+", expected YYYY-MM-DD", err)
		}
	}
	t = t.UTC()
	return &t, nil
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
