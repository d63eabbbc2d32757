package ordersvc

import (
	"context"
	"errors"
	"testing"

	"github.com/corray333/storefront/internal/service/models/actor"
	"github.com/corray333/storefront/internal/service/models/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTransitionFixture(status order.Status) (*OrderService, *fakeUnitOfWork, *recordingNotifier) {
	svc, work, notifier := newOrderFixture()
	work.orderRepo.getByIDForUpdateFunc = func(ctx context.Context, id int64) (*order.Order, error) {
		return &order.Order{ID: id, CustomerID: 5, Status: status}, nil
	}
	work.orderRepo.updateStatusFunc = func(ctx context.Context, id int64, s order.Status) error {
		return nil
	}

	return svc, work, notifier
}

func TestTransitionStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    order.Status
		to      order.Status
		act     actor.Actor
		wantErr error
	}{
		{
			name: "admin ships processing order",
			from: order.StatusProcessing,
			to:   order.StatusShipped,
			act:  admin(),
		},
		{
			name:    "customer may not ship",
			from:    order.StatusProcessing,
			to:      order.StatusShipped,
			act:     customer(),
			wantErr: actor.ErrForbidden,
		},
		{
			name: "customer cancels processing order",
			from: order.StatusProcessing,
			to:   order.StatusCanceled,
			act:  customer(),
		},
		{
			name: "customer completes shipped order",
			from: order.StatusShipped,
			to:   order.StatusCompleted,
			act:  customer(),
		},
		{
			name: "customer cancels shipped order",
			from: order.StatusShipped,
			to:   order.StatusCanceled,
			act:  customer(),
		},
		{
			name:    "draft cannot be shipped manually",
			from:    order.StatusDraft,
			to:      order.StatusShipped,
			act:     admin(),
			wantErr: order.ErrInvalidTransition,
		},
		{
			name:    "pending payment is not manually transitionable",
			from:    order.StatusPendingPayment,
			to:      order.StatusProcessing,
			act:     admin(),
			wantErr: order.ErrInvalidTransition,
		},
		{
			name:    "completed is terminal",
			from:    order.StatusCompleted,
			to:      order.StatusCanceled,
			act:     admin(),
			wantErr: order.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, work, notifier := newTransitionFixture(tt.from)

			ord, err := svc.TransitionStatus(context.Background(), tt.act, 10, tt.to)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Zero(t, work.committed)
				assert.Empty(t, notifier.messages)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, ord.Status)
			assert.Equal(t, 1, work.committed)
			assert.Len(t, notifier.messages, 1)
		})
	}
}

func TestTransitionStatus_NotOwner(t *testing.T) {
	svc, work, _ := newTransitionFixture(order.StatusProcessing)

	stranger := actor.Actor{CustomerID: 99, Role: actor.RoleCustomer}
	_, err := svc.TransitionStatus(context.Background(), stranger, 10, order.StatusCanceled)
	assert.True(t, errors.Is(err, order.ErrNotFound))
	assert.Zero(t, work.committed)
}
