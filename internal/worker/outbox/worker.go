package outbox

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/corray333/backend-labs/shop/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/shop/internal/dal/rabbitmq"
	outboxmodel "github.com/corray333/backend-labs/shop/internal/service/models/outbox"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
)

// publisher sends a message to RabbitMQ.
type publisher interface {
	Publish(exchange, routingKey string, msg amqp.Publishing) error
	DeclareQueue(cfg rabbitmq.DeclareQueueConfig) (amqp.Queue, error)
}

// Worker publishes order events stored in the outbox table.
type Worker struct {
	outboxRepo   ioutboxrepo.IOutboxRepository
	publisher    publisher
	queue        string
	pollInterval time.Duration
	batchSize    int
	backoffBase  time.Duration
	now          func() time.Time
	stopCh       chan struct{}
}

// NewWorker creates a new outbox worker.
func NewWorker(
	outboxRepo ioutboxrepo.IOutboxRepository,
	publisher publisher,
) *Worker {
	pollIntervalSeconds := viper.GetInt("rabbitmq.outbox.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 10
	}

	batchSize := viper.GetInt("rabbitmq.outbox.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	retryIntervalSeconds := viper.GetInt("rabbitmq.outbox.retry_interval_seconds")
	if retryIntervalSeconds == 0 {
		retryIntervalSeconds = 30
	}

	return &Worker{
		outboxRepo:   outboxRepo,
		publisher:    publisher,
		queue:        viper.GetString("rabbitmq.queue"),
		pollInterval: time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:    batchSize,
		backoffBase:  time.Duration(retryIntervalSeconds) * time.Second,
		now:          time.Now,
		stopCh:       make(chan struct{}),
	}
}

// Start declares the events queue and processes the outbox until ctx is done
// or Stop is called.
func (w *Worker) Start(ctx context.Context) {
	if w.queue != "" {
		if _, err := w.publisher.DeclareQueue(rabbitmq.DeclareQueueConfig{Name: w.queue, Durable: true}); err != nil {
			slog.Error("Failed to declare events queue", "queue", w.queue, "error", err)
		}
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Outbox worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Outbox worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Outbox worker stopped")

			return
		case <-ticker.C:
			w.processMessages(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// processMessages publishes one batch of pending messages. Published messages
// are removed; failed ones are rescheduled.
func (w *Worker) processMessages(ctx context.Context) {
	messages, err := w.outboxRepo.GetPendingMessages(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending messages from outbox", "error", err)

		return
	}

	if len(messages) == 0 {
		return
	}

	slog.Debug("Processing outbox messages", "count", len(messages))

	for _, msg := range messages {
		if err := w.publish(msg); err != nil {
			retryCount := msg.RetryCount + 1
			nextRetryAt := w.now().Add(w.backoff(retryCount))

			slog.Warn("Failed to publish order event, will retry",
				"outbox_id", msg.ID,
				"event_type", msg.EventType,
				"retry_count", retryCount,
				"next_retry", nextRetryAt,
				"error", err,
			)

			if err := w.outboxRepo.UpdateRetry(ctx, msg.ID, retryCount, err.Error(), nextRetryAt); err != nil {
				slog.Error("Failed to update retry information", "outbox_id", msg.ID, "error", err)
			}

			continue
		}

		if err := w.outboxRepo.Delete(ctx, msg.ID); err != nil {
			slog.Error("Failed to delete message from outbox after successful publish",
				"outbox_id", msg.ID,
				"error", err,
			)

			continue
		}

		slog.Info("Order event published", "outbox_id", msg.ID, "event_type", msg.EventType)
	}
}

func (w *Worker) publish(msg outboxmodel.OutboxMessage) error {
	return w.publisher.Publish(msg.ExchangeName, msg.RoutingKey, amqp.Publishing{
		ContentType: msg.ContentType,
		MessageId:   msg.MessageID,
		Type:        msg.EventType,
		Timestamp:   msg.CreatedAt,
		Body:        msg.Payload,
	})
}

// backoff doubles the base delay with every attempt: 60s, 120s, 240s for a 30s base.
func (w *Worker) backoff(retryCount int) time.Duration {
	return time.Duration(math.Pow(2, float64(retryCount))) * w.backoffBase
}
