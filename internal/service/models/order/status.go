package order

import "errors"

// Status is the lifecycle state of an order. A draft order is the
// customer's cart; checkout moves it forward and it is never deleted,
// only transitioned into a terminal status.
type Status string

const (
	StatusDraft          Status = "draft"
	StatusPendingPayment Status = "pending_payment"
	StatusProcessing     Status = "processing"
	StatusShipped        Status = "shipped"
	StatusCompleted      Status = "completed"
	StatusCanceled       Status = "canceled"
)

var (
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

var allowedTransitions = map[Status]map[Status]bool{
	StatusDraft: {
		StatusPendingPayment: true,
	},
	StatusPendingPayment: {
		StatusProcessing: true,
		StatusCanceled:   true,
	},
	StatusProcessing: {
		StatusShipped:  true,
		StatusCanceled: true,
	},
	StatusShipped: {
		StatusCompleted: true,
		StatusCanceled:  true,
	},
	StatusCompleted: {},
	StatusCanceled:  {},
}

func (s Status) String() string {
	return string(s)
}

// Terminal reports whether no further transition is permitted.
func (s Status) Terminal() bool {
	return len(allowedTransitions[s]) == 0
}

// CanTransitionTo reports whether s -> next is a legal transition.
func (s Status) CanTransitionTo(next Status) bool {
	return allowedTransitions[s][next]
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusDraft, StatusPendingPayment, StatusProcessing,
		StatusShipped, StatusCompleted, StatusCanceled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Transition moves the order to next, or fails with ErrInvalidTransition
// leaving the order unchanged.
func (o *Order) Transition(next Status) error {
	if !o.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	o.Status = next

	return nil
}
