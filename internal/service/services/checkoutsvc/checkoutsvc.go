package checkoutsvc

import (
	"context"
	"fmt"

	"github.com/corray333/storefront/internal/dal/interfaces/inotificationrepo"
	"github.com/corray333/storefront/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/storefront/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/storefront/internal/dal/interfaces/istockrepo"
	"github.com/corray333/storefront/internal/dal/postgres"
	"github.com/corray333/storefront/internal/dal/uow"
	"github.com/corray333/storefront/internal/service/models/actor"
	"github.com/corray333/storefront/internal/service/models/order"
	"github.com/corray333/storefront/internal/service/models/payment"
	"github.com/corray333/storefront/internal/service/services/shippingsvc"
)

// CheckoutService sequences one checkout: eligibility, shipping cost,
// totals, payment dispatch and the resulting status transition, all
// serialized per order by a row lock held for the transaction.
type CheckoutService struct {
	pgClient *postgres.Client
	newUOW   func() unitOfWork
	shipping shippingEstimator
	gateway  gatewayClient
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

type shippingEstimator interface {
	EstimateForAddress(ctx context.Context, act actor.Actor, addressID *int64) (*shippingsvc.Estimate, error)
}

type gatewayClient interface {
	CreateCharge(
		ctx context.Context,
		orderID int64,
		amountCents int64,
		currency string,
		customerName string,
		customerPhone string,
	) (*payment.Charge, error)
}

type notifier interface {
	Publish(
		ctx context.Context,
		notificationRepo inotificationrepo.INotificationRepository,
		outboxRepo ioutboxrepo.IOutboxRepository,
		customerID int64,
		message string,
	) error
}

// option is a function that configures the CheckoutService.
type option func(*CheckoutService)

// MustNewCheckoutService creates a new CheckoutService.
func MustNewCheckoutService(opts ...option) *CheckoutService {
	s := &CheckoutService{}
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

// WithPostgresClient sets the Postgres client for the CheckoutService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *CheckoutService) {
		s.pgClient = pgClient
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithShippingEstimator(e shippingEstimator) option {
	return func(s *CheckoutService) {
		s.shipping = e
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithGateway(g gatewayClient) option {
	return func(s *CheckoutService) {
		s.gateway = g
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotifier(n notifier) option {
	return func(s *CheckoutService) {
		s.notifier = n
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *CheckoutService) {
		s.newUOW = factory
	}
}

// CheckoutResult is what the caller gets back from checkout
// initiation. Charge is set only for the electronic gateway method.
type CheckoutResult struct {
	Order  *order.Order    `json:"order"`
	Charge *payment.Charge `json:"charge,omitempty"`
}

// Checkout turns the customer's draft order into a payable order. An
// order still awaiting payment may be checked out again, retrying the
// gateway or switching method; no stock has been committed at that
// point. Shipping is resolved before any write, so geocoding failures
// abort with nothing persisted. Orders past payment fail with
// order.ErrNotCheckoutable once the row lock is acquired.
func (s *CheckoutService) Checkout(
	ctx context.Context,
	act actor.Actor,
	orderID int64,
	method payment.Method,
	addressID *int64,
) (*CheckoutResult, error) {
	if method == nil {
		return nil, payment.ErrInvalidMethod
	}

	estimate, err := s.shipping.EstimateForAddress(ctx, act, addressID)
	if err != nil {
		return nil, err
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer work.Rollback(ctx)

	ord, err := work.OrderRepository().GetByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !ord.OwnedBy(act.CustomerID) {
		return nil, order.ErrNotFound
	}
	if ord.Status != order.StatusDraft && ord.Status != order.StatusPendingPayment {
		return nil, fmt.Errorf("%w: status is %s", order.ErrNotCheckoutable, ord.Status)
	}

	items, err := work.OrderItemRepository().ListByOrderIds(ctx, []int64{ord.ID})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, order.ErrEmptyOrder
	}
	ord.OrderItems = items

	ord.Recalculate(estimate.CostCents)
	ord.PaymentMethod = method.Kind()
	ord.DeliveryAddress = estimate.Address.Text

	if ord.Status == order.StatusDraft {
		if err := ord.Transition(order.StatusPendingPayment); err != nil {
			return nil, err
		}
	}

	executor, err := s.executorFor(method)
	if err != nil {
		return nil, err
	}

	charge, err := executor.Execute(ctx, work, ord)
	if err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	return &CheckoutResult{Order: ord, Charge: charge}, nil
}
