package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/storefront/internal/dal/postgres"
	"github.com/corray333/storefront/internal/service/models/notification"
)

type PostgresNotificationRepository struct {
	conn postgres.Querier
}

func NewPostgresNotificationRepository(conn postgres.Querier) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{
		conn: conn,
	}
}

// Insert persists a notification row and returns it with its assigned id.
func (r *PostgresNotificationRepository) Insert(
	ctx context.Context,
	n notification.Notification,
) (*notification.Notification, error) {
	query, args, err := sq.Insert("notifications").
		Columns("customer_id", "message", "created_at").
		Values(n.CustomerID, n.Message, n.CreatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&n.ID); err != nil {
		return nil, fmt.Errorf("failed to insert notification: %w", err)
	}

	return &n, nil
}

// ListByCustomerID retrieves the customer's notifications, newest first.
func (r *PostgresNotificationRepository) ListByCustomerID(
	ctx context.Context,
	customerID int64,
) ([]notification.Notification, error) {
	query, args, err := sq.Select("id", "customer_id", "message", "created_at").
		From("notifications").
		Where(sq.Eq{"customer_id": customerID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var result []notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.CustomerID, &n.Message, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		result = append(result, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// DeleteByCustomerID clears the customer's feed.
func (r *PostgresNotificationRepository) DeleteByCustomerID(ctx context.Context, customerID int64) error {
	query, args, err := sq.Delete("notifications").
		Where(sq.Eq{"customer_id": customerID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete notifications: %w", err)
	}

	return nil
}
