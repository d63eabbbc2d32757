package pushqueue

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/corray333/storefront/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/storefront/internal/service/models/outbox"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
)

// publisher delivers one payload to the realtime channel.
type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Worker delivers queued push tasks to the realtime channel. Delivery
// is best-effort with exponential backoff; a task that exhausts its
// retries stays in the table for inspection but is never picked again.
type Worker struct {
	outboxRepo   ioutboxrepo.IOutboxRepository
	channel      publisher
	pollInterval time.Duration
	batchSize    int
	stopCh       chan struct{}
}

// NewWorker creates a new push queue worker.
func NewWorker(
	outboxRepo ioutboxrepo.IOutboxRepository,
	channel publisher,
) *Worker {
	pollIntervalSeconds := viper.GetInt("rabbitmq.push.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 2
	}

	batchSize := viper.GetInt("rabbitmq.push.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	return &Worker{
		outboxRepo:   outboxRepo,
		channel:      channel,
		pollInterval: time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:    batchSize,
		stopCh:       make(chan struct{}),
	}
}

// Start begins delivering queued push tasks.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Push queue worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Push queue worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Push queue worker stopped")

			return
		case <-ticker.C:
			w.processTasks(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// processTasks retrieves and delivers pending push tasks.
func (w *Worker) processTasks(ctx context.Context) {
	tasks, err := w.outboxRepo.GetPendingTasks(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending push tasks", "error", err)

		return
	}

	if len(tasks) == 0 {
		return
	}

	slog.Info("Delivering push tasks", "count", len(tasks))

	for _, task := range tasks {
		if err := w.deliver(task); err != nil {
			// Schedule next retry with exponential backoff
			newRetryCount := task.RetryCount + 1
			backoffSeconds := math.Pow(2, float64(newRetryCount)) * 5 // 10s, 20s, 40s, 80s, etc.
			nextRetryAt := time.Now().Add(time.Duration(backoffSeconds) * time.Second)

			slog.Warn("Failed to deliver push task, will retry",
				"task_id", task.ID,
				"customer_id", task.CustomerID,
				"retry_count", newRetryCount,
				"next_retry", nextRetryAt,
				"error", err,
			)

			if err := w.outboxRepo.UpdateRetry(ctx, task.ID, newRetryCount, err.Error(), nextRetryAt); err != nil {
				slog.Error("Failed to update retry information", "task_id", task.ID, "error", err)
			}
		} else {
			if err := w.outboxRepo.Delete(ctx, task.ID); err != nil {
				slog.Error("Failed to delete push task after successful delivery",
					"task_id", task.ID,
					"error", err,
				)
			}
		}
	}
}

func (w *Worker) deliver(task outbox.PushTask) error {
	return w.channel.Publish(
		task.ExchangeName,
		task.RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: task.ContentType,
			Body:        task.Payload,
		},
	)
}
