package httperr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corray333/storefront/internal/service/models/actor"
	"github.com/corray333/storefront/internal/service/models/address"
	"github.com/corray333/storefront/internal/service/models/currency"
	"github.com/corray333/storefront/internal/service/models/geo"
	"github.com/corray333/storefront/internal/service/models/order"
	"github.com/corray333/storefront/internal/service/models/payment"
	"github.com/corray333/storefront/internal/service/models/stock"
)

type errorResponse struct {
	Error string `json:"error"`
}

// Write maps a service error to the four-way status distinction
// clients retry on: bad input, not found, conflict, upstream failure.
func Write(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "error", err, "status", status)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(errorResponse{Error: err.Error()}); encodeErr != nil {
		slog.Error("Error writing error response", "error", encodeErr)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, order.ErrNotFound),
		errors.Is(err, address.ErrNotFound),
		errors.Is(err, address.ErrNoDefault),
		errors.Is(err, stock.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrNotCheckoutable),
		errors.Is(err, stock.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, actor.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, geo.ErrNotResolvable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, payment.ErrInvalidMethod),
		errors.Is(err, currency.ErrInvalidCurrency):
		return http.StatusBadRequest
	case errors.Is(err, geo.ErrUnavailable),
		errors.Is(err, payment.ErrGatewayUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
