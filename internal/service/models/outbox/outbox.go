package outbox

import (
	"time"
)

// PushTask is a realtime-push job enqueued durably in the same
// transaction as the order transition that produced it. The push queue
// worker delivers it to RabbitMQ with retry and backoff.
type PushTask struct {
	ID           int64
	CustomerID   int64
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}
