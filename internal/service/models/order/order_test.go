package order_test

import (
	"testing"

	"github.com/corray333/storefront/internal/service/models/order"
	"github.com/corray333/storefront/internal/service/models/orderitem"
	"github.com/stretchr/testify/assert"
)

func TestOrder_Recalculate(t *testing.T) {
	ord := &order.Order{
		OrderItems: []orderitem.OrderItem{
			{ProductID: 1, Quantity: 2, PriceCents: 10000},
			{ProductID: 2, Quantity: 1, PriceCents: 5000},
		},
	}

	ord.Recalculate(7000)

	assert.Equal(t, int64(25000), ord.ItemsSubtotalCents())
	assert.Equal(t, int64(7000), ord.ShippingCostCents)
	assert.Equal(t, int64(32000), ord.TotalPriceCents)
}

func TestOrder_OwnedBy(t *testing.T) {
	ord := &order.Order{CustomerID: 42}

	assert.True(t, ord.OwnedBy(42))
	assert.False(t, ord.OwnedBy(7))
}
