package paymentcallback

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/corray333/storefront/internal/service/models/order"
	"github.com/corray333/storefront/internal/service/models/payment"
	"github.com/corray333/storefront/internal/transport/http/httperr"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// service is an interface for the service layer.
type service interface {
	HandleChargeResult(ctx context.Context, orderID int64, outcome payment.Outcome) (*order.Order, error)
}

// callbackRequest is the gateway's out-of-band charge result.
type callbackRequest struct {
	OrderID   int64  `json:"orderId"   validate:"gt=0"`
	Outcome   string `json:"outcome"   validate:"required"`
	Reference string `json:"reference"`
}

// Validate validates the callback request.
func (r *callbackRequest) Validate() error {
	return validator.New().Struct(r)
}

// HandleCallback handles the gateway charge-result webhook. The
// gateway authenticates with a shared token, not a customer identity.
func HandleCallback(w http.ResponseWriter, r *http.Request, service service) {
	token := viper.GetString("paymentgw.callback_token")
	presented := r.Header.Get("X-Callback-Token")
	if token == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
		http.Error(w, "invalid callback token", http.StatusUnauthorized)

		return
	}

	req := callbackRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding payment callback body", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	outcome, err := payment.ParseOutcome(req.Outcome)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	ord, err := service.HandleChargeResult(r.Context(), req.OrderID, outcome)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error handling charge result", "error", err, "order_id", req.OrderID)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ord); err != nil {
		slog.Error("Error sending response for payment callback", "error", err)
	}
}
