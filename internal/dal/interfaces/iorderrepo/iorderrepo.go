package iorderrepo

import (
	"context"

	"github.com/corray333/storefront/internal/service/models/order"
	"github.com/corray333/storefront/internal/service/models/payment"
)

// IOrderRepository is an interface for order postgres repository.
type IOrderRepository interface {
	Insert(ctx context.Context, o order.Order) (*order.Order, error)
	GetByID(ctx context.Context, id int64) (*order.Order, error)

	// GetByIDForUpdate locks the order row for the rest of the enclosing
	// transaction, serializing all mutations of a single order.
	GetByIDForUpdate(ctx context.Context, id int64) (*order.Order, error)

	// UpdateCheckout persists the outcome of checkout initiation: the
	// chosen method, the delivery address snapshot, the recomputed
	// totals and the new status, all in one write.
	UpdateCheckout(
		ctx context.Context,
		id int64,
		method payment.Kind,
		deliveryAddress string,
		shippingCostCents int64,
		totalPriceCents int64,
		status order.Status,
	) error

	UpdateStatus(ctx context.Context, id int64, status order.Status) error
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
}
