package ioutboxrepo

import (
	"context"
	"time"

	"github.com/corray333/storefront/internal/service/models/outbox"
)

// IOutboxRepository defines the interface for push task queue operations.
type IOutboxRepository interface {
	// Insert enqueues a new push task
	Insert(ctx context.Context, task outbox.PushTask) error

	// GetPendingTasks retrieves tasks that are ready for delivery or retry
	GetPendingTasks(ctx context.Context, limit int) ([]outbox.PushTask, error)

	// Delete removes a task after successful delivery
	Delete(ctx context.Context, id int64) error

	// UpdateRetry updates retry count and error information
	UpdateRetry(
		ctx context.Context,
		id int64,
		retryCount int,
		lastError string,
		nextRetryAt time.Time,
	) error
}
