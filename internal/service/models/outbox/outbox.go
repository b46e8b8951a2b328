package outbox

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types written for order lifecycle changes.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
)

const defaultMaxRetries = 5

// OutboxMessage is an event stored in the same transaction as the change it
// describes, waiting to be published to RabbitMQ.
type OutboxMessage struct {
	ID           int64
	MessageID    string
	EventType    string
	QueueName    string
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

// NewJSONMessage builds a message ready for immediate delivery to queue
// through the default exchange.
func NewJSONMessage(eventType, queue string, payload any, now time.Time) (OutboxMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return OutboxMessage{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	return OutboxMessage{
		MessageID:   uuid.NewString(),
		EventType:   eventType,
		QueueName:   queue,
		RoutingKey:  queue,
		Payload:     body,
		ContentType: "application/json",
		MaxRetries:  defaultMaxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	}, nil
}
