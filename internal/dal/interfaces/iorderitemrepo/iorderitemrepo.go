package iorderitemrepo

import (
	"context"

	"github.com/corray333/storefront/internal/service/models/orderitem"
)

// IOrderItemRepository is an interface for order item postgres repository.
type IOrderItemRepository interface {
	BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error)
	ListByOrderIds(ctx context.Context, orderIds []int64) ([]orderitem.OrderItem, error)
}
