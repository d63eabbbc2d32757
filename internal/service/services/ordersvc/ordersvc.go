package ordersvc

import (
	"context"
	"fmt"
	"time"

	"github.com/corray333/storefront/internal/dal/interfaces/inotificationrepo"
	"github.com/corray333/storefront/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/storefront/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/storefront/internal/dal/interfaces/istockrepo"
	"github.com/corray333/storefront/internal/dal/postgres"
	"github.com/corray333/storefront/internal/dal/uow"
	"github.com/corray333/storefront/internal/service/models/actor"
	"github.com/corray333/storefront/internal/service/models/currency"
	"github.com/corray333/storefront/internal/service/models/notification"
	"github.com/corray333/storefront/internal/service/models/order"
	"github.com/corray333/storefront/internal/service/models/orderitem"
)

// OrderService owns order creation, reads and the manual status
// transitions performed by administrators and customers.
type OrderService struct {
	pgClient *postgres.Client
	newUOW   func() unitOfWork
	notifier notifier
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	StockRepository() istockrepo.IStockRepository
	NotificationRepository() inotificationrepo.INotificationRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// notifier records a customer notification through the caller's
// repositories so it commits with the enclosing transaction.
type notifier interface {
	Publish(
		ctx context.Context,
		notificationRepo inotificationrepo.INotificationRepository,
		outboxRepo ioutboxrepo.IOutboxRepository,
		customerID int64,
		message string,
	) error
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.newUOW == nil {
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(s.pgClient)
		}
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotifier(n notifier) option {
	return func(s *OrderService) {
		s.notifier = n
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = factory
	}
}

// NewLine is one requested cart line.
type NewLine struct {
	ProductID int64
	Quantity  int
}

// CreateOrder opens a draft order (the customer's cart) from the
// requested lines, capturing each product's current price as the
// immutable line price.
func (s *OrderService) CreateOrder(
	ctx context.Context,
	act actor.Actor,
	lines []NewLine,
) (*order.Order, error) {
	if len(lines) == 0 {
		return nil, order.ErrEmptyOrder
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("quantity for product %d must be positive", line.ProductID)
		}
	}

	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer work.Rollback(ctx)

	items := make([]orderitem.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, err := work.StockRepository().GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		items = append(items, orderitem.OrderItem{
			ProductID:     product.ID,
			Quantity:      line.Quantity,
			ProductTitle:  product.Title,
			ProductUrl:    product.Url,
			PriceCents:    product.PriceCents,
			PriceCurrency: currency.CurrencyIDR,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	draft := order.Order{
		CustomerID:         act.CustomerID,
		Status:             order.StatusDraft,
		TotalPriceCurrency: currency.CurrencyIDR,
		CreatedAt:          now,
		UpdatedAt:          now,
		OrderItems:         items,
	}
	draft.Recalculate(0)

	saved, err := work.OrderRepository().Insert(ctx, draft)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = saved.ID
	}
	savedItems, err := work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return nil, err
	}
	saved.OrderItems = savedItems

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	return saved, nil
}

// GetOrder retrieves one order with its items. Customers only see
// their own orders.
func (s *OrderService) GetOrder(ctx context.Context, act actor.Actor, orderID int64) (*order.Order, error) {
	work := s.newUOW()

	ord, err := work.OrderRepository().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !ord.OwnedBy(act.CustomerID) && !act.IsAdmin() {
		return nil, order.ErrNotFound
	}

	items, err := work.OrderItemRepository().ListByOrderIds(ctx, []int64{ord.ID})
	if err != nil {
		return nil, err
	}
	ord.OrderItems = items

	return ord, nil
}

// GetOrders retrieves orders with their items based on filter.
// Customers are always scoped to their own orders.
func (s *OrderService) GetOrders(
	ctx context.Context,
	act actor.Actor,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	if !act.IsAdmin() {
		filter.CustomerIds = []int64{act.CustomerID}
	}

	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	orderIds := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIds = append(orderIds, o.ID)
	}
	items, err := work.OrderItemRepository().ListByOrderIds(ctx, orderIds)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].OrderItems = append(orders[i].OrderItems, item)
			}
		}
	}

	return orders, nil
}

// ListNotifications returns the caller's notification feed.
func (s *OrderService) ListNotifications(ctx context.Context, act actor.Actor) ([]notification.Notification, error) {
	return s.newUOW().NotificationRepository().ListByCustomerID(ctx, act.CustomerID)
}

// ClearNotifications empties the caller's notification feed.
func (s *OrderService) ClearNotifications(ctx context.Context, act actor.Actor) error {
	return s.newUOW().NotificationRepository().DeleteByCustomerID(ctx, act.CustomerID)
}
