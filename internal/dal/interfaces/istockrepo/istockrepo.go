package istockrepo

import (
	"context"

	"github.com/corray333/storefront/internal/service/models/stock"
)

// IStockRepository is the catalog contract the checkout core depends on.
type IStockRepository interface {
	GetProduct(ctx context.Context, productID int64) (*stock.Product, error)

	// Decrement atomically subtracts qty from the product's stock level,
	// failing with stock.ErrInsufficientStock if the level would go
	// negative. Single conditional UPDATE, not read-then-write.
	Decrement(ctx context.Context, productID int64, qty int) error
}
