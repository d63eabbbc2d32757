package order

import (
	"errors"
	"time"

	"github.com/corray333/storefront/internal/service/models/currency"
	"github.com/corray333/storefront/internal/service/models/orderitem"
	"github.com/corray333/storefront/internal/service/models/payment"
)

var (
	ErrNotFound        = errors.New("order not found")
	ErrNotCheckoutable = errors.New("order is not in a checkoutable state")
	ErrEmptyOrder      = errors.New("order has no items")
	ErrNotOwner        = errors.New("order does not belong to the customer")
)

// Order represents one checkout unit: the cart while in draft and the
// durable order after checkout.
type Order struct {
	ID                 int64                 `json:"id"`
	CustomerID         int64                 `json:"customerId"`
	Status             Status                `json:"status"`
	PaymentMethod      payment.Kind          `json:"paymentMethod,omitempty"`
	DeliveryAddress    string                `json:"deliveryAddress"`
	ShippingCostCents  int64                 `json:"shippingCostCents"`
	TotalPriceCents    int64                 `json:"totalPriceCents"`
	TotalPriceCurrency currency.Currency     `json:"totalPriceCurrency"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
	OrderItems         []orderitem.OrderItem `json:"orderItems"`
}

// ItemsSubtotalCents is the sum of line subtotals at their captured prices.
func (o *Order) ItemsSubtotalCents() int64 {
	var sum int64
	for _, item := range o.OrderItems {
		sum += item.PriceCents * int64(item.Quantity)
	}

	return sum
}

// Recalculate fixes the order total as items subtotal plus shipping.
func (o *Order) Recalculate(shippingCostCents int64) {
	o.ShippingCostCents = shippingCostCents
	o.TotalPriceCents = o.ItemsSubtotalCents() + shippingCostCents
}

// OwnedBy reports whether the order belongs to the given customer.
func (o *Order) OwnedBy(customerID int64) bool {
	return o.CustomerID == customerID
}
