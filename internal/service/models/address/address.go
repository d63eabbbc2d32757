package address

import (
	"errors"
	"time"

	"github.com/corray333/storefront/internal/service/models/geo"
)

var (
	ErrNotFound  = errors.New("delivery address not found")
	ErrNoDefault = errors.New("customer has no default delivery address")
)

// Address is a customer delivery address. Coordinates is nil until the
// address has been geocoded; estimates fall back to geocoding the text.
type Address struct {
	ID          int64      `json:"id"`
	CustomerID  int64      `json:"customerId"`
	Text        string     `json:"text"`
	Coordinates *geo.Point `json:"coordinates,omitempty"`
	IsDefault   bool       `json:"isDefault"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
