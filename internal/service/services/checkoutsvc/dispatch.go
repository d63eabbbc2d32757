package checkoutsvc

import (
	"context"
	"fmt"

	"github.com/corray333/storefront/internal/service/models/order"
	"github.com/corray333/storefront/internal/service/models/payment"
)

// paymentExecutor runs the side effects a chosen payment method
// requires, inside the checkout transaction.
type paymentExecutor interface {
	Execute(ctx context.Context, work unitOfWork, ord *order.Order) (*payment.Charge, error)
}

func (s *CheckoutService) executorFor(method payment.Method) (paymentExecutor, error) {
	switch m := method.(type) {
	case payment.PayOnDelivery:
		return &payOnDeliveryExecutor{notifier: s.notifier}, nil
	case payment.ElectronicGateway:
		return &electronicGatewayExecutor{
			gateway:  s.gateway,
			notifier: s.notifier,
			variant:  m,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %T", payment.ErrInvalidMethod, method)
	}
}

// payOnDeliveryExecutor settles stock immediately: every line is
// decremented and the order lands in processing, or the whole
// transaction aborts. No partial decrements survive.
type payOnDeliveryExecutor struct {
	notifier notifier
}

func (e *payOnDeliveryExecutor) Execute(
	ctx context.Context,
	work unitOfWork,
	ord *order.Order,
) (*payment.Charge, error) {
	for _, item := range ord.OrderItems {
		if err := work.StockRepository().Decrement(ctx, item.ProductID, item.Quantity); err != nil {
			return nil, fmt.Errorf("product %d: %w", item.ProductID, err)
		}
	}

	if err := ord.Transition(order.StatusProcessing); err != nil {
		return nil, err
	}

	err := work.OrderRepository().UpdateCheckout(
		ctx,
		ord.ID,
		ord.PaymentMethod,
		ord.DeliveryAddress,
		ord.ShippingCostCents,
		ord.TotalPriceCents,
		ord.Status,
	)
	if err != nil {
		return nil, err
	}

	err = e.notifier.Publish(
		ctx,
		work.NotificationRepository(),
		work.OutboxRepository(),
		ord.CustomerID,
		fmt.Sprintf("Order #%d confirmed. Pay %d %s on delivery.",
			ord.ID, ord.TotalPriceCents, ord.TotalPriceCurrency),
	)
	if err != nil {
		return nil, err
	}

	return nil, nil
}

// electronicGatewayExecutor registers a charge at the external
// processor and leaves the order pending payment; stock is only
// committed later by the gateway callback. An unreachable gateway
// rolls the whole checkout back.
type electronicGatewayExecutor struct {
	gateway  gatewayClient
	notifier notifier
	variant  payment.ElectronicGateway
}

func (e *electronicGatewayExecutor) Execute(
	ctx context.Context,
	work unitOfWork,
	ord *order.Order,
) (*payment.Charge, error) {
	err := work.OrderRepository().UpdateCheckout(
		ctx,
		ord.ID,
		ord.PaymentMethod,
		ord.DeliveryAddress,
		ord.ShippingCostCents,
		ord.TotalPriceCents,
		ord.Status,
	)
	if err != nil {
		return nil, err
	}

	charge, err := e.gateway.CreateCharge(
		ctx,
		ord.ID,
		ord.TotalPriceCents,
		ord.TotalPriceCurrency.String(),
		e.variant.CustomerName,
		e.variant.CustomerPhone,
	)
	if err != nil {
		return nil, err
	}

	err = e.notifier.Publish(
		ctx,
		work.NotificationRepository(),
		work.OutboxRepository(),
		ord.CustomerID,
		fmt.Sprintf("Order #%d is awaiting payment of %d %s.",
			ord.ID, ord.TotalPriceCents, ord.TotalPriceCurrency),
	)
	if err != nil {
		return nil, err
	}

	return charge, nil
}
