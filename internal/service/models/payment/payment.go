package payment

import (
	"database/sql/driver"
	"errors"
)

var (
	ErrInvalidMethod      = errors.New("invalid payment method")
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)

// Kind tags the two supported payment method variants.
type Kind string

const (
	KindPayOnDelivery     Kind = "pay_on_delivery"
	KindElectronicGateway Kind = "electronic_gateway"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) Value() (driver.Value, error) {
	return k.String(), nil
}

// Method is the tagged variant over the two payment protocols. Each
// variant carries only what its protocol needs.
type Method interface {
	Kind() Kind
}

// PayOnDelivery settles at physical delivery: no external round-trip
// at checkout time, stock committed immediately.
type PayOnDelivery struct{}

func (PayOnDelivery) Kind() Kind { return KindPayOnDelivery }

// ElectronicGateway requires a charge created at an external processor
// and finishes on an asynchronous callback.
type ElectronicGateway struct {
	CustomerName  string
	CustomerPhone string
}

func (ElectronicGateway) Kind() Kind { return KindElectronicGateway }

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindPayOnDelivery, KindElectronicGateway:
		return Kind(s), nil
	default:
		return "", ErrInvalidMethod
	}
}

// Charge is the gateway's answer to a create-charge call.
type Charge struct {
	Reference string `json:"reference"`
	ActionURL string `json:"actionUrl"`
}

// Outcome is the result reported by the gateway callback.
type Outcome string

const (
	OutcomePaid    Outcome = "paid"
	OutcomeFailed  Outcome = "failed"
	OutcomeExpired Outcome = "expired"
)

func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(s) {
	case OutcomePaid, OutcomeFailed, OutcomeExpired:
		return Outcome(s), nil
	default:
		return "", errors.New("invalid charge outcome")
	}
}
