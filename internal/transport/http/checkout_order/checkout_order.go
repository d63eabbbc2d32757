package checkoutorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/corray333/storefront/internal/service/models/actor"
	"github.com/corray333/storefront/internal/service/models/payment"
	"github.com/corray333/storefront/internal/service/services/checkoutsvc"
	"github.com/corray333/storefront/internal/transport/http/httperr"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	Checkout(
		ctx context.Context,
		act actor.Actor,
		orderID int64,
		method payment.Method,
		addressID *int64,
	) (*checkoutsvc.CheckoutResult, error)
}

// checkoutRequest represents a checkout initiation request.
type checkoutRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required"`
	AddressID     *int64 `json:"addressId,omitempty"`
	CustomerName  string `json:"customerName,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`
}

// Validate validates the checkout request.
func (r *checkoutRequest) Validate() error {
	return validator.New().Struct(r)
}

func (r *checkoutRequest) toMethod() (payment.Method, error) {
	kind, err := payment.ParseKind(r.PaymentMethod)
	if err != nil {
		return nil, err
	}

	switch kind {
	case payment.KindPayOnDelivery:
		return payment.PayOnDelivery{}, nil
	case payment.KindElectronicGateway:
		return payment.ElectronicGateway{
			CustomerName:  r.CustomerName,
			CustomerPhone: r.CustomerPhone,
		}, nil
	default:
		return nil, payment.ErrInvalidMethod
	}
}

// Checkout handles the checkout initiation request.
func Checkout(w http.ResponseWriter, r *http.Request, act actor.Actor, service service) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)

		return
	}

	req := checkoutRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for checkout", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for checkout", "error", err)

		return
	}

	method, err := req.toMethod()
	if err != nil {
		httperr.Write(w, err)

		return
	}

	result, err := service.Checkout(r.Context(), act, orderID, method, req.AddressID)
	if err != nil {
		httperr.Write(w, err)
		slog.Error("Error performing checkout", "error", err, "order_id", orderID)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		slog.Error("Error sending response for checkout", "error", err)
	}
}
