package estimateshipping

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/storefront/internal/service/models/actor"
	"github.com/corray333/storefront/internal/service/services/shippingsvc"
	"github.com/corray333/storefront/internal/transport/http/httperr"
	"github.com/gorilla/schema"
)

// service is an interface for the service layer.
type service interface {
	EstimateForAddress(ctx context.Context, act actor.Actor, addressID *int64) (*shippingsvc.Estimate, error)
}

type estimateRequest struct {
	AddressID *int64 `schema:"addressId,omitempty"`
}

// Estimate handles the shipping estimate request. Without an addressId
// the customer's default address is used.
func Estimate(w http.ResponseWriter, r *http.Request, act actor.Actor, service service) {
	decoder := schema.NewDecoder()
	query := &estimateRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request", "error", err)

		return
	}

	estimate, err := service.EstimateForAddress(r.Context(), act, query.AddressID)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error estimating shipping", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(estimate); err != nil {
		slog.Error("Error sending response for shipping estimate", "error", err)
	}
}
