package notifysvc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/corray333/storefront/internal/dal/interfaces/inotificationrepo"
	"github.com/corray333/storefront/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/storefront/internal/service/models/notification"
	"github.com/corray333/storefront/internal/service/models/outbox"
	"github.com/spf13/viper"
)

// Publisher records customer notifications. The notification row and
// the realtime push task are written through the caller's repositories,
// so both commit atomically with the order transition that produced
// them. Actual delivery to the push channel happens on the push queue
// worker and can never fail the transition.
type Publisher struct {
	exchange   string
	maxRetries int
}

// option is a function that configures the Publisher.
type option func(*Publisher)

// MustNewPublisher creates a new Publisher.
func MustNewPublisher(opts ...option) *Publisher {
	p := &Publisher{
		exchange:   viper.GetString("rabbitmq.push.exchange"),
		maxRetries: viper.GetInt("rabbitmq.push.max_retries"),
	}
	if p.maxRetries == 0 {
		p.maxRetries = 8
	}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithExchange(exchange string) option {
	return func(p *Publisher) {
		p.exchange = exchange
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithMaxRetries(maxRetries int) option {
	return func(p *Publisher) {
		p.maxRetries = maxRetries
	}
}

// pushPayload is the message body delivered to the realtime channel.
type pushPayload struct {
	NotificationID int64     `json:"notificationId"`
	CustomerID     int64     `json:"customerId"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Publish persists the notification and enqueues its push task. Both
// writes go through the given repositories; run them on a transaction
// when the notification must commit with an order transition.
func (p *Publisher) Publish(
	ctx context.Context,
	notificationRepo inotificationrepo.INotificationRepository,
	outboxRepo ioutboxrepo.IOutboxRepository,
	customerID int64,
	message string,
) error {
	now := time.Now()

	saved, err := notificationRepo.Insert(ctx, notification.Notification{
		CustomerID: customerID,
		Message:    message,
		CreatedAt:  now,
	})
	if err != nil {
		return fmt.Errorf("failed to persist notification: %w", err)
	}

	payload, err := json.Marshal(pushPayload{
		NotificationID: saved.ID,
		CustomerID:     saved.CustomerID,
		Message:        saved.Message,
		CreatedAt:      saved.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	err = outboxRepo.Insert(ctx, outbox.PushTask{
		CustomerID:   customerID,
		ExchangeName: p.exchange,
		RoutingKey:   fmt.Sprintf("customer.%d", customerID),
		Payload:      payload,
		ContentType:  "application/json",
		MaxRetries:   p.maxRetries,
		CreatedAt:    now,
		UpdatedAt:    now,
		NextRetryAt:  now,
	})
	if err != nil {
		return fmt.Errorf("failed to enqueue push task: %w", err)
	}

	return nil
}
