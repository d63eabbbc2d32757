package pushqueue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corray333/storefront/internal/service/models/outbox"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockOutboxRepo struct {
	getPendingTasksFunc func(ctx context.Context, limit int) ([]outbox.PushTask, error)

	deleted []int64
	retried []retryCall
}

type retryCall struct {
	id          int64
	retryCount  int
	lastError   string
	nextRetryAt time.Time
}

func (m *mockOutboxRepo) Insert(ctx context.Context, task outbox.PushTask) error {
	return nil
}

func (m *mockOutboxRepo) GetPendingTasks(ctx context.Context, limit int) ([]outbox.PushTask, error) {
	return m.getPendingTasksFunc(ctx, limit)
}

func (m *mockOutboxRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)

	return nil
}

func (m *mockOutboxRepo) UpdateRetry(
	ctx context.Context,
	id int64,
	retryCount int,
	lastError string,
	nextRetryAt time.Time,
) error {
	m.retried = append(m.retried, retryCall{id, retryCount, lastError, nextRetryAt})

	return nil
}

type mockChannel struct {
	publishFunc func(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	published   []amqp.Publishing
	keys        []string
}

func (m *mockChannel) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if m.publishFunc != nil {
		if err := m.publishFunc(exchange, key, mandatory, immediate, msg); err != nil {
			return err
		}
	}
	m.published = append(m.published, msg)
	m.keys = append(m.keys, key)

	return nil
}

func pendingTask(id int64) outbox.PushTask {
	return outbox.PushTask{
		ID:           id,
		CustomerID:   42,
		ExchangeName: "storefront.push",
		RoutingKey:   "customer.42",
		Payload:      []byte(`{"message":"hi"}`),
		ContentType:  "application/json",
		MaxRetries:   8,
	}
}

func TestWorker_ProcessTasks_DeliversAndDeletes(t *testing.T) {
	repo := &mockOutboxRepo{
		getPendingTasksFunc: func(ctx context.Context, limit int) ([]outbox.PushTask, error) {
			return []outbox.PushTask{pendingTask(1), pendingTask(2)}, nil
		},
	}
	channel := &mockChannel{}

	worker := NewWorker(repo, channel)
	worker.processTasks(context.Background())

	require.Len(t, channel.published, 2)
	assert.Equal(t, "customer.42", channel.keys[0])
	assert.Equal(t, "application/json", channel.published[0].ContentType)
	assert.Equal(t, []byte(`{"message":"hi"}`), channel.published[0].Body)
	assert.Equal(t, []int64{1, 2}, repo.deleted)
	assert.Empty(t, repo.retried)
}

func TestWorker_ProcessTasks_FailureSchedulesRetry(t *testing.T) {
	task := pendingTask(7)
	task.RetryCount = 2

	repo := &mockOutboxRepo{
		getPendingTasksFunc: func(ctx context.Context, limit int) ([]outbox.PushTask, error) {
			return []outbox.PushTask{task}, nil
		},
	}
	channel := &mockChannel{
		publishFunc: func(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
			return errors.New("channel closed")
		},
	}

	before := time.Now()
	worker := NewWorker(repo, channel)
	worker.processTasks(context.Background())

	assert.Empty(t, repo.deleted)
	require.Len(t, repo.retried, 1)

	retry := repo.retried[0]
	assert.Equal(t, int64(7), retry.id)
	assert.Equal(t, 3, retry.retryCount)
	assert.Equal(t, "channel closed", retry.lastError)

	// Third attempt backs off 2^3 * 5 = 40 seconds.
	assert.WithinDuration(t, before.Add(40*time.Second), retry.nextRetryAt, 2*time.Second)
}

func TestWorker_ProcessTasks_PartialFailure(t *testing.T) {
	repo := &mockOutboxRepo{
		getPendingTasksFunc: func(ctx context.Context, limit int) ([]outbox.PushTask, error) {
			return []outbox.PushTask{pendingTask(1), pendingTask(2), pendingTask(3)}, nil
		},
	}
	channel := &mockChannel{}
	channel.publishFunc = func(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
		if len(channel.published) == 1 {
			return errors.New("transient")
		}

		return nil
	}

	worker := NewWorker(repo, channel)
	worker.processTasks(context.Background())

	assert.Equal(t, []int64{1, 3}, repo.deleted)
	require.Len(t, repo.retried, 1)
	assert.Equal(t, int64(2), repo.retried[0].id)
}

func TestWorker_Stop(t *testing.T) {
	repo := &mockOutboxRepo{
		getPendingTasksFunc: func(ctx context.Context, limit int) ([]outbox.PushTask, error) {
			return nil, nil
		},
	}

	worker := NewWorker(repo, &mockChannel{})

	done := make(chan struct{})
	go func() {
		worker.Start(context.Background())
		close(done)
	}()

	worker.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
