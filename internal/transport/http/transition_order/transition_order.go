package transitionorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/corray333/storefront/internal/service/models/actor"
	"github.com/corray333/storefront/internal/service/models/order"
	"github.com/corray333/storefront/internal/transport/http/httperr"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	TransitionStatus(ctx context.Context, act actor.Actor, orderID int64, next order.Status) (*order.Order, error)
}

// transitionRequest represents a manual status transition request.
type transitionRequest struct {
	Status string `json:"status" validate:"required"`
}

// Validate validates the transition request.
func (r *transitionRequest) Validate() error {
	return validator.New().Struct(r)
}

// Transition handles the manual status transition request.
func Transition(w http.ResponseWriter, r *http.Request, act actor.Actor, service service) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)

		return
	}

	req := transitionRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for status transition", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	next, err := order.ParseStatus(req.Status)
	if err != nil {
		httperr.Write(w, err)

		return
	}

	ord, err := service.TransitionStatus(r.Context(), act, orderID, next)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error transitioning order status", "error", err, "order_id", orderID)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ord); err != nil {
		slog.Error("Error sending response for status transition", "error", err)
	}
}
