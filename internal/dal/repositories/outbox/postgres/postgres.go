package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/storefront/internal/dal/postgres"
	"github.com/corray333/storefront/internal/service/models/outbox"
)

// OutboxRepository implements the push task queue for PostgreSQL.
type OutboxRepository struct {
	conn postgres.Querier
}

// NewOutboxRepository creates a new outbox repository.
func NewOutboxRepository(conn postgres.Querier) *OutboxRepository {
	return &OutboxRepository{
		conn: conn,
	}
}

// Insert enqueues a new push task.
func (r *OutboxRepository) Insert(ctx context.Context, task outbox.PushTask) error {
	query, args, err := sq.Insert("push_outbox").
		Columns(
			"customer_id",
			"exchange_name",
			"routing_key",
			"payload",
			"content_type",
			"retry_count",
			"max_retries",
			"last_error",
			"created_at",
			"updated_at",
			"next_retry_at",
		).
		Values(
			task.CustomerID,
			task.ExchangeName,
			task.RoutingKey,
			task.Payload,
			task.ContentType,
			task.RetryCount,
			task.MaxRetries,
			task.LastError,
			task.CreatedAt,
			task.UpdatedAt,
			task.NextRetryAt,
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	_, err = r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert push task: %w", err)
	}

	return nil
}

// GetPendingTasks retrieves tasks that are ready for delivery or retry.
func (r *OutboxRepository) GetPendingTasks(
	ctx context.Context,
	limit int,
) ([]outbox.PushTask, error) {
	query, args, err := sq.Select(
		"id",
		"customer_id",
		"exchange_name",
		"routing_key",
		"payload",
		"content_type",
		"retry_count",
		"max_retries",
		"last_error",
		"created_at",
		"updated_at",
		"next_retry_at",
	).
		From("push_outbox").
		Where(sq.LtOrEq{"next_retry_at": time.Now()}).
		Where(sq.Expr("retry_count < max_retries")).
		OrderBy("next_retry_at ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query push tasks: %w", err)
	}
	defer rows.Close()

	var tasks []outbox.PushTask
	for rows.Next() {
		var task outbox.PushTask
		err := rows.Scan(
			&task.ID,
			&task.CustomerID,
			&task.ExchangeName,
			&task.RoutingKey,
			&task.Payload,
			&task.ContentType,
			&task.RetryCount,
			&task.MaxRetries,
			&task.LastError,
			&task.CreatedAt,
			&task.UpdatedAt,
			&task.NextRetryAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan push task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating push tasks: %w", err)
	}

	return tasks, nil
}

// Delete removes a task after successful delivery.
func (r *OutboxRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := sq.Delete("push_outbox").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	_, err = r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete push task: %w", err)
	}

	return nil
}

// UpdateRetry updates retry count and error information.
func (r *OutboxRepository) UpdateRetry(
	ctx context.Context,
	id int64,
	retryCount int,
	lastError string,
	nextRetryAt time.Time,
) error {
	query, args, err := sq.Update("push_outbox").
		Set("retry_count", retryCount).
		Set("last_error", lastError).
		Set("next_retry_at", nextRetryAt).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	_, err = r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update push task retry info: %w", err)
	}

	return nil
}
