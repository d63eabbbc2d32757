package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/corray333/storefront/internal/dal/postgres"
	"github.com/corray333/storefront/internal/service/models/stock"
	"github.com/jackc/pgx/v5"
)

type PostgresStockRepository struct {
	conn postgres.Querier
}

func NewPostgresStockRepository(conn postgres.Querier) *PostgresStockRepository {
	return &PostgresStockRepository{
		conn: conn,
	}
}

// GetProduct reads the catalog slice the checkout core needs: current
// price and available stock.
func (r *PostgresStockRepository) GetProduct(ctx context.Context, productID int64) (*stock.Product, error) {
	sqlStr := `
		SELECT p.id, p.title, p.url, p.price_cents, s.quantity
		FROM products p
		JOIN stock_levels s ON s.product_id = p.id
		WHERE p.id = $1
	`

	var p stock.Product
	err := r.conn.QueryRow(ctx, sqlStr, productID).Scan(
		&p.ID,
		&p.Title,
		&p.Url,
		&p.PriceCents,
		&p.Stock,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, stock.ErrProductNotFound
		}

		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &p, nil
}

// Decrement subtracts qty from the product's stock level in a single
// conditional UPDATE. The WHERE clause is the compare-and-set: if the
// remaining quantity is short, no row is touched and the caller gets
// stock.ErrInsufficientStock.
func (r *PostgresStockRepository) Decrement(ctx context.Context, productID int64, qty int) error {
	sqlStr := `
		UPDATE stock_levels
		SET quantity = quantity - $2, updated_at = now()
		WHERE product_id = $1 AND quantity >= $2
	`

	tag, err := r.conn.Exec(ctx, sqlStr, productID, qty)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return stock.ErrInsufficientStock
	}

	return nil
}
