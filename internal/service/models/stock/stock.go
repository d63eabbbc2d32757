package stock

import "errors"

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductNotFound   = errors.New("product not found")
)

// Product is the slice of the catalog the checkout core reads: the
// current price and available stock.
type Product struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Url        string `json:"url"`
	PriceCents int64  `json:"priceCents"`
	Stock      int    `json:"stock"`
}
