package iaddressrepo

import (
	"context"

	"github.com/corray333/storefront/internal/service/models/address"
	"github.com/corray333/storefront/internal/service/models/geo"
)

// IAddressRepository is an interface for delivery address postgres repository.
type IAddressRepository interface {
	GetByID(ctx context.Context, id int64) (*address.Address, error)
	GetDefaultByCustomerID(ctx context.Context, customerID int64) (*address.Address, error)
	UpdateCoordinates(ctx context.Context, id int64, point geo.Point) error
}
