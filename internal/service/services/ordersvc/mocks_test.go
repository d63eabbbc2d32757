package ordersvc

import (
	"context"
	"time"

	"github.com/corray333/storefront/internal/dal/interfaces/inotificationrepo"
	"github.com/corray333/storefront/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/storefront/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/storefront/internal/dal/interfaces/istockrepo"
	"github.com/corray333/storefront/internal/service/models/notification"
	"github.com/corray333/storefront/internal/service/models/order"
	"github.com/corray333/storefront/internal/service/models/orderitem"
	"github.com/corray333/storefront/internal/service/models/outbox"
	"github.com/corray333/storefront/internal/service/models/payment"
	"github.com/corray333/storefront/internal/service/models/stock"
)

type mockOrderRepo struct {
	insertFunc           func(ctx context.Context, o order.Order) (*order.Order, error)
	getByIDFunc          func(ctx context.Context, id int64) (*order.Order, error)
	getByIDForUpdateFunc func(ctx context.Context, id int64) (*order.Order, error)
	updateStatusFunc     func(ctx context.Context, id int64, status order.Status) error
	queryFunc            func(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
}

func (m *mockOrderRepo) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	return m.insertFunc(ctx, o)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockOrderRepo) GetByIDForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return m.getByIDForUpdateFunc(ctx, id)
}

func (m *mockOrderRepo) UpdateCheckout(
	ctx context.Context,
	id int64,
	method payment.Kind,
	deliveryAddress string,
	shippingCostCents int64,
	totalPriceCents int64,
	status order.Status,
) error {
	return nil
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id int64, status order.Status) error {
	return m.updateStatusFunc(ctx, id, status)
}

func (m *mockOrderRepo) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	return m.queryFunc(ctx, filter)
}

type mockOrderItemRepo struct {
	bulkInsertFunc     func(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error)
	listByOrderIdsFunc func(ctx context.Context, orderIds []int64) ([]orderitem.OrderItem, error)
}

func (m *mockOrderItemRepo) BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	return m.bulkInsertFunc(ctx, items)
}

func (m *mockOrderItemRepo) ListByOrderIds(ctx context.Context, orderIds []int64) ([]orderitem.OrderItem, error) {
	return m.listByOrderIdsFunc(ctx, orderIds)
}

type mockStockRepo struct {
	getProductFunc func(ctx context.Context, productID int64) (*stock.Product, error)
}

func (m *mockStockRepo) GetProduct(ctx context.Context, productID int64) (*stock.Product, error) {
	return m.getProductFunc(ctx, productID)
}

func (m *mockStockRepo) Decrement(ctx context.Context, productID int64, qty int) error {
	return nil
}

type mockNotificationRepo struct {
	listByCustomerIDFunc   func(ctx context.Context, customerID int64) ([]notification.Notification, error)
	deleteByCustomerIDFunc func(ctx context.Context, customerID int64) error
}

func (m *mockNotificationRepo) Insert(ctx context.Context, n notification.Notification) (*notification.Notification, error) {
	return &n, nil
}

func (m *mockNotificationRepo) ListByCustomerID(ctx context.Context, customerID int64) ([]notification.Notification, error) {
	return m.listByCustomerIDFunc(ctx, customerID)
}

func (m *mockNotificationRepo) DeleteByCustomerID(ctx context.Context, customerID int64) error {
	return m.deleteByCustomerIDFunc(ctx, customerID)
}

type mockOutboxRepo struct{}

func (m *mockOutboxRepo) Insert(ctx context.Context, task outbox.PushTask) error {
	return nil
}

func (m *mockOutboxRepo) GetPendingTasks(ctx context.Context, limit int) ([]outbox.PushTask, error) {
	return nil, nil
}

func (m *mockOutboxRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

func (m *mockOutboxRepo) UpdateRetry(
	ctx context.Context,
	id int64,
	retryCount int,
	lastError string,
	nextRetryAt time.Time,
) error {
	return nil
}

type fakeUnitOfWork struct {
	orderRepo        *mockOrderRepo
	orderItemRepo    *mockOrderItemRepo
	stockRepo        *mockStockRepo
	notificationRepo *mockNotificationRepo
	outboxRepo       *mockOutboxRepo

	begun      int
	committed  int
	rolledBack int
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error {
	f.begun++

	return nil
}

func (f *fakeUnitOfWork) Commit(ctx context.Context) error {
	f.committed++

	return nil
}

func (f *fakeUnitOfWork) Rollback(ctx context.Context) error {
	f.rolledBack++

	return nil
}

func (f *fakeUnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return f.orderRepo
}

func (f *fakeUnitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return f.orderItemRepo
}

func (f *fakeUnitOfWork) StockRepository() istockrepo.IStockRepository {
	return f.stockRepo
}

func (f *fakeUnitOfWork) NotificationRepository() inotificationrepo.INotificationRepository {
	return f.notificationRepo
}

func (f *fakeUnitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return f.outboxRepo
}

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Publish(
	ctx context.Context,
	notificationRepo inotificationrepo.INotificationRepository,
	outboxRepo ioutboxrepo.IOutboxRepository,
	customerID int64,
	message string,
) error {
	n.messages = append(n.messages, message)

	return nil
}
