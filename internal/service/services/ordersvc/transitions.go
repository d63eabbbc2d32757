package ordersvc

import (
	"context"
	"fmt"

	"github.com/corray333/storefront/internal/service/models/actor"
	"github.com/corray333/storefront/internal/service/models/order"
)

// transitionRule says who may trigger a manual transition. Transitions
// absent from this table (checkout initiation, payment callbacks) can
// only happen through the checkout flow.
type transitionRule struct {
	ownerAllowed bool
}

var manualTransitions = map[order.Status]map[order.Status]transitionRule{
	order.StatusProcessing: {
		order.StatusShipped:  {ownerAllowed: false},
		order.StatusCanceled: {ownerAllowed: true},
	},
	order.StatusShipped: {
		order.StatusCompleted: {ownerAllowed: true},
		order.StatusCanceled:  {ownerAllowed: true},
	},
}

// TransitionStatus applies an administrator- or customer-triggered
// status change. The write and the notification commit together; an
// illegal transition leaves the order untouched.
func (s *OrderService) TransitionStatus(
	ctx context.Context,
	act actor.Actor,
	orderID int64,
	next order.Status,
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

	if !ord.OwnedBy(act.CustomerID) && !act.IsAdmin() {
		return nil, order.ErrNotFound
	}

	rule, ok := manualTransitions[ord.Status][next]
	if !ok {
		return nil, fmt.Errorf("%w: %s -> %s", order.ErrInvalidTransition, ord.Status, next)
	}
	if !act.IsAdmin() && !rule.ownerAllowed {
		return nil, actor.ErrForbidden
	}

	if err := ord.Transition(next); err != nil {
		return nil, fmt.Errorf("%w: %s -> %s", err, ord.Status, next)
	}

	if err := work.OrderRepository().UpdateStatus(ctx, ord.ID, ord.Status); err != nil {
		return nil, err
	}

	err = s.notifier.Publish(
		ctx,
		work.NotificationRepository(),
		work.OutboxRepository(),
		ord.CustomerID,
		statusMessage(ord.ID, ord.Status),
	)
	if err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	return ord, nil
}

func statusMessage(orderID int64, status order.Status) string {
	switch status {
	case order.StatusPendingPayment:
		return fmt.Sprintf("Order #%d is awaiting payment.", orderID)
	case order.StatusProcessing:
		return fmt.Sprintf("Order #%d is being processed.", orderID)
	case order.StatusShipped:
		return fmt.Sprintf("Order #%d has been shipped.", orderID)
	case order.StatusCompleted:
		return fmt.Sprintf("Order #%d is completed. Thank you!", orderID)
	case order.StatusCanceled:
		return fmt.Sprintf("Order #%d has been canceled.", orderID)
	default:
		return fmt.Sprintf("Order #%d status changed to %s.", orderID, status)
	}
}
