package postgresrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/corray333/storefront/internal/dal/postgres"
	"github.com/corray333/storefront/internal/service/models/currency"
	"github.com/corray333/storefront/internal/service/models/orderitem"
	"github.com/jackc/pgx/v5"
)

// OrderItemDal represents order item data access layer model
type OrderItemDal struct {
	Id            int64
	OrderId       int64
	ProductId     int64
	Quantity      int
	ProductTitle  string
	ProductUrl    string
	PriceCents    int64
	PriceCurrency string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ToModel converts OrderItemDal to service layer OrderItem model
func (i *OrderItemDal) ToModel() (*orderitem.OrderItem, error) {
	cur, err := currency.ParseCurrency(i.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return &orderitem.OrderItem{
		ID:            i.Id,
		OrderID:       i.OrderId,
		ProductID:     i.ProductId,
		Quantity:      i.Quantity,
		ProductTitle:  i.ProductTitle,
		ProductUrl:    i.ProductUrl,
		PriceCents:    i.PriceCents,
		PriceCurrency: cur,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}, nil
}

type PostgresOrderItemRepository struct {
	conn postgres.Querier
}

func NewPostgresOrderItemRepository(conn postgres.Querier) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
	}
}

func scanOrderItem(row pgx.Row) (*orderitem.OrderItem, error) {
	var dal OrderItemDal
	err := row.Scan(
		&dal.Id,
		&dal.OrderId,
		&dal.ProductId,
		&dal.Quantity,
		&dal.ProductTitle,
		&dal.ProductUrl,
		&dal.PriceCents,
		&dal.PriceCurrency,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel()
}

// BulkInsert inserts multiple order items and returns them with assigned ids.
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	items []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if len(items) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	sqlStr := `
		INSERT INTO order_items (
			order_id,
			product_id,
			quantity,
			product_title,
			product_url,
			price_cents,
			price_currency,
			created_at,
			updated_at
		)
		SELECT
			order_id,
			product_id,
			quantity,
			product_title,
			product_url,
			price_cents,
			price_currency,
			created_at,
			updated_at
		FROM unnest(
			$1::bigint[], $2::bigint[], $3::int[], $4::text[], $5::text[],
			$6::bigint[], $7::text[], $8::timestamptz[], $9::timestamptz[]
		)
		AS t(order_id, product_id, quantity, product_title, product_url,
			price_cents, price_currency, created_at, updated_at)
		RETURNING
			id,
			order_id,
			product_id,
			quantity,
			product_title,
			product_url,
			price_cents,
			price_currency,
			created_at,
			updated_at
	`

	orderIds := make([]int64, len(items))
	productIds := make([]int64, len(items))
	quantities := make([]int32, len(items))
	titles := make([]string, len(items))
	urls := make([]string, len(items))
	priceCents := make([]int64, len(items))
	currencies := make([]string, len(items))
	createdAts := make([]time.Time, len(items))
	updatedAts := make([]time.Time, len(items))

	for i, item := range items {
		orderIds[i] = item.OrderID
		productIds[i] = item.ProductID
		quantities[i] = int32(item.Quantity)
		titles[i] = item.ProductTitle
		urls[i] = item.ProductUrl
		priceCents[i] = item.PriceCents
		currencies[i] = item.PriceCurrency.String()
		createdAts[i] = item.CreatedAt
		updatedAts[i] = item.UpdatedAt
	}

	rows, err := r.conn.Query(ctx, sqlStr,
		orderIds,
		productIds,
		quantities,
		titles,
		urls,
		priceCents,
		currencies,
		createdAts,
		updatedAts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		model, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// ListByOrderIds retrieves all items belonging to the given orders.
func (r *PostgresOrderItemRepository) ListByOrderIds(
	ctx context.Context,
	orderIds []int64,
) ([]orderitem.OrderItem, error) {
	sqlStr := `
		SELECT
			id,
			order_id,
			product_id,
			quantity,
			product_title,
			product_url,
			price_cents,
			price_currency,
			created_at,
			updated_at
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.conn.Query(ctx, sqlStr, orderIds)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		model, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
