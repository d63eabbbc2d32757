package checkoutsvc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/corray333/storefront/internal/service/models/order"
	"github.com/corray333/storefront/internal/service/models/payment"
)

// HandleChargeResult consumes the gateway's asynchronous charge
// outcome. The handler is idempotent: replaying an outcome that has
// already been applied changes nothing, decrements nothing and sends
// no second notification.
func (s *CheckoutService) HandleChargeResult(
	ctx context.Context,
	orderID int64,
	outcome payment.Outcome,
) (*order.Order, error) {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer work.Rollback(ctx)

	ord, err := work.OrderRepository().GetByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch outcome {
	case payment.OutcomePaid:
		return s.applyPaid(ctx, work, ord)
	case payment.OutcomeFailed, payment.OutcomeExpired:
		return s.applyFailed(ctx, work, ord)
	default:
		return nil, fmt.Errorf("unknown charge outcome %q", outcome)
	}
}

func (s *CheckoutService) applyPaid(
	ctx context.Context,
	work unitOfWork,
	ord *order.Order,
) (*order.Order, error) {
	switch ord.Status {
	case order.StatusProcessing, order.StatusShipped, order.StatusCompleted:
		// Already applied: callback replay.
		slog.Info("Charge result replay ignored", "order_id", ord.ID, "status", ord.Status)

		return ord, nil
	case order.StatusPendingPayment:
	default:
		return nil, fmt.Errorf("%w: paid callback in status %s", order.ErrInvalidTransition, ord.Status)
	}

	items, err := work.OrderItemRepository().ListByOrderIds(ctx, []int64{ord.ID})
	if err != nil {
		return nil, err
	}
	ord.OrderItems = items

	// Stock is reserved only now, at payment confirmation.
	for _, item := range items {
		if err := work.StockRepository().Decrement(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, fmt.Errorf("product %d: %w", item.ProductID, err)
		}
	}

	if err := ord.Transition(order.StatusProcessing); err != nil {
		return nil, err
	}
	if err := work.OrderRepository().UpdateStatus(ctx, ord.ID, ord.Status); err != nil {
		return nil, err
	}

	err = s.notifier.Publish(
		ctx,
		work.NotificationRepository(),
		work.OutboxRepository(),
		ord.CustomerID,
		fmt.Sprintf("Payment received. Order #%d is being processed.", ord.ID),
	)
	if err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	return ord, nil
}

func (s *CheckoutService) applyFailed(
	ctx context.Context,
	work unitOfWork,
	ord *order.Order,
) (*order.Order, error) {
	switch ord.Status {
	case order.StatusCanceled:
		// Already applied: callback replay.
		slog.Info("Charge result replay ignored", "order_id", ord.ID, "status", ord.Status)

		return ord, nil
	case order.StatusPendingPayment:
	default:
		return nil, fmt.Errorf("%w: failed callback in status %s", order.ErrInvalidTransition, ord.Status)
	}

	if err := ord.Transition(order.StatusCanceled); err != nil {
		return nil, err
	}
	if err := work.OrderRepository().UpdateStatus(ctx, ord.ID, ord.Status); err != nil {
		return nil, err
	}

	err := s.notifier.Publish(
		ctx,
		work.NotificationRepository(),
		work.OutboxRepository(),
		ord.CustomerID,
		fmt.Sprintf("Payment for order #%d failed. The order has been canceled.", ord.ID),
	)
	if err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	return ord, nil
}
