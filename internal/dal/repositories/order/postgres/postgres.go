package postgresrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/corray333/storefront/internal/dal/postgres"
	"github.com/corray333/storefront/internal/service/models/currency"
	"github.com/corray333/storefront/internal/service/models/order"
	"github.com/corray333/storefront/internal/service/models/orderitem"
	"github.com/corray333/storefront/internal/service/models/payment"
	"github.com/jackc/pgx/v5"
)

// OrderDal represents order data access layer model
type OrderDal struct {
	Id                 int64
	CustomerId         int64
	Status             string
	PaymentMethod      sql.NullString
	DeliveryAddress    string
	ShippingCostCents  int64
	TotalPriceCents    int64
	TotalPriceCurrency string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ToModel converts OrderDal to service layer Order model
func (o *OrderDal) ToModel() (*order.Order, error) {
	cur, err := currency.ParseCurrency(o.TotalPriceCurrency)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}
	var method payment.Kind
	if o.PaymentMethod.Valid {
		method, err = payment.ParseKind(o.PaymentMethod.String)
		if err != nil {
			return nil, err
		}
	}

	return &order.Order{
		ID:                 o.Id,
		CustomerID:         o.CustomerId,
		Status:             status,
		PaymentMethod:      method,
		DeliveryAddress:    o.DeliveryAddress,
		ShippingCostCents:  o.ShippingCostCents,
		TotalPriceCents:    o.TotalPriceCents,
		TotalPriceCurrency: cur,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
		OrderItems:         []orderitem.OrderItem{}, // Will be populated separately
	}, nil
}

const orderColumns = `
	id,
	customer_id,
	status,
	payment_method,
	delivery_address,
	shipping_cost_cents,
	total_price_cents,
	total_price_currency,
	created_at,
	updated_at
`

type PostgresOrderRepository struct {
	conn postgres.Querier
}

func NewPostgresOrderRepository(conn postgres.Querier) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
	}
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var dal OrderDal
	err := row.Scan(
		&dal.Id,
		&dal.CustomerId,
		&dal.Status,
		&dal.PaymentMethod,
		&dal.DeliveryAddress,
		&dal.ShippingCostCents,
		&dal.TotalPriceCents,
		&dal.TotalPriceCurrency,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel()
}

// Insert creates a new draft order and returns it with its assigned id.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	sqlStr := `
		INSERT INTO orders (
			customer_id,
			status,
			delivery_address,
			shipping_cost_cents,
			total_price_cents,
			total_price_currency,
			created_at,
			updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + orderColumns

	row := r.conn.QueryRow(ctx, sqlStr,
		o.CustomerID,
		o.Status.String(),
		o.DeliveryAddress,
		o.ShippingCostCents,
		o.TotalPriceCents,
		o.TotalPriceCurrency.String(),
		o.CreatedAt,
		o.UpdatedAt,
	)

	model, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	return model, nil
}

// GetByID retrieves a single order without its items.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate retrieves a single order locking its row for the
// rest of the enclosing transaction.
func (r *PostgresOrderRepository) GetByIDForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return r.getByID(ctx, id, true)
}

func (r *PostgresOrderRepository) getByID(ctx context.Context, id int64, forUpdate bool) (*order.Order, error) {
	sqlStr := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	if forUpdate {
		sqlStr += ` FOR UPDATE`
	}

	model, err := scanOrder(r.conn.QueryRow(ctx, sqlStr, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return model, nil
}

// UpdateCheckout persists payment method, delivery address snapshot,
// totals and status in one write.
func (r *PostgresOrderRepository) UpdateCheckout(
	ctx context.Context,
	id int64,
	method payment.Kind,
	deliveryAddress string,
	shippingCostCents int64,
	totalPriceCents int64,
	status order.Status,
) error {
	sqlStr := `
		UPDATE orders
		SET payment_method = $2,
			delivery_address = $3,
			shipping_cost_cents = $4,
			total_price_cents = $5,
			status = $6,
			updated_at = now()
		WHERE id = $1
	`

	tag, err := r.conn.Exec(ctx, sqlStr,
		id,
		method.String(),
		deliveryAddress,
		shippingCostCents,
		totalPriceCents,
		status.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update order checkout fields: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}

	return nil
}

// UpdateStatus moves the order to the given status.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id int64, status order.Status) error {
	tag, err := r.conn.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`,
		id, status.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}

	return nil
}

// Query retrieves orders based on filter criteria
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	sqlBuilder := strings.Builder{}
	sqlBuilder.WriteString(`SELECT ` + orderColumns + ` FROM orders`)

	args := []interface{}{}
	conditions := []string{}
	argIndex := 1

	if len(filter.Ids) > 0 {
		conditions = append(conditions, fmt.Sprintf("id = ANY($%d)", argIndex))
		args = append(args, filter.Ids)
		argIndex++
	}

	if len(filter.CustomerIds) > 0 {
		conditions = append(conditions, fmt.Sprintf("customer_id = ANY($%d)", argIndex))
		args = append(args, filter.CustomerIds)
		argIndex++
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		conditions = append(conditions, fmt.Sprintf("status = ANY($%d)", argIndex))
		args = append(args, statuses)
		argIndex++
	}

	if len(conditions) > 0 {
		sqlBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	sqlBuilder.WriteString(" ORDER BY id")

	if filter.Limit > 0 {
		sqlBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argIndex))
		args = append(args, filter.Limit)
		argIndex++
	}

	if filter.Offset > 0 {
		sqlBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argIndex))
		args = append(args, filter.Offset)
	}

	rows, err := r.conn.Query(ctx, sqlBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		model, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
