package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corray333/backend-labs/shop/internal/dal/rabbitmq"
	outboxmodel "github.com/corray333/backend-labs/shop/internal/service/models/outbox"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type retryCall struct {
	id          int64
	retryCount  int
	lastError   string
	nextRetryAt time.Time
}

type fakeRepo struct {
	pending []outboxmodel.OutboxMessage
	deleted []int64
	retries []retryCall
	err     error
}

func (r *fakeRepo) Insert(context.Context, outboxmodel.OutboxMessage) error { return nil }

func (r *fakeRepo) GetPendingMessages(_ context.Context, limit int) ([]outboxmodel.OutboxMessage, error) {
	if r.err != nil {
		return nil, r.err
	}
	if len(r.pending) > limit {
		return r.pending[:limit], nil
	}

	return r.pending, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	r.deleted = append(r.deleted, id)

	return nil
}

func (r *fakeRepo) UpdateRetry(_ context.Context, id int64, retryCount int, lastError string, nextRetryAt time.Time) error {
	r.retries = append(r.retries, retryCall{id, retryCount, lastError, nextRetryAt})

	return nil
}

type fakePublisher struct {
	published []amqp.Publishing
	keys      []string
	failFor   map[string]error
	declared  []rabbitmq.DeclareQueueConfig
}

func (p *fakePublisher) Publish(_, routingKey string, msg amqp.Publishing) error {
	if err := p.failFor[msg.MessageId]; err != nil {
		return err
	}
	p.published = append(p.published, msg)
	p.keys = append(p.keys, routingKey)

	return nil
}

func (p *fakePublisher) DeclareQueue(cfg rabbitmq.DeclareQueueConfig) (amqp.Queue, error) {
	p.declared = append(p.declared, cfg)

	return amqp.Queue{Name: cfg.Name}, nil
}

func newTestWorker(repo *fakeRepo, pub *fakePublisher, now time.Time) *Worker {
	w := NewWorker(repo, pub)
	w.queue = "orders"
	w.now = func() time.Time { return now }

	return w
}

func message(t *testing.T, id int64, eventType string) outboxmodel.OutboxMessage {
	t.Helper()

	msg, err := outboxmodel.NewJSONMessage(eventType, "orders", map[string]int64{"id": id}, time.Now())
	require.NoError(t, err)
	msg.ID = id

	return msg
}

func TestProcessMessages_PublishesAndDeletes(t *testing.T) {
	repo := &fakeRepo{pending: []outboxmodel.OutboxMessage{
		message(t, 1, outboxmodel.EventOrderPlaced),
		message(t, 2, outboxmodel.EventOrderDeleted),
	}}
	pub := &fakePublisher{}

	newTestWorker(repo, pub, time.Now()).processMessages(context.Background())

	require.Len(t, pub.published, 2)
	assert.Equal(t, []string{"orders", "orders"}, pub.keys)
	assert.Equal(t, outboxmodel.EventOrderPlaced, pub.published[0].Type)
	assert.Equal(t, repo.pending[0].MessageID, pub.published[0].MessageId)
	assert.Equal(t, "application/json", pub.published[0].ContentType)
	assert.JSONEq(t, `{"id":1}`, string(pub.published[0].Body))
	assert.Equal(t, []int64{1, 2}, repo.deleted)
	assert.Empty(t, repo.retries)
}

func TestProcessMessages_ReschedulesFailures(t *testing.T) {
	failing := message(t, 1, outboxmodel.EventOrderPlaced)
	failing.RetryCount = 1
	ok := message(t, 2, outboxmodel.EventOrderPlaced)

	repo := &fakeRepo{pending: []outboxmodel.OutboxMessage{failing, ok}}
	pub := &fakePublisher{failFor: map[string]error{failing.MessageID: errors.New("channel closed")}}
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	newTestWorker(repo, pub, now).processMessages(context.Background())

	assert.Equal(t, []int64{2}, repo.deleted)
	require.Len(t, repo.retries, 1)
	assert.Equal(t, int64(1), repo.retries[0].id)
	assert.Equal(t, 2, repo.retries[0].retryCount)
	assert.Equal(t, "channel closed", repo.retries[0].lastError)
	assert.Equal(t, now.Add(2*time.Minute), repo.retries[0].nextRetryAt)
}

func TestProcessMessages_RepositoryError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db down")}
	pub := &fakePublisher{}

	newTestWorker(repo, pub, time.Now()).processMessages(context.Background())

	assert.Empty(t, pub.published)
	assert.Empty(t, repo.deleted)
}

func TestBackoffGrowsExponentially(t *testing.T) {
	w := &Worker{backoffBase: 30 * time.Second}

	assert.Equal(t, time.Minute, w.backoff(1))
	assert.Equal(t, 2*time.Minute, w.backoff(2))
	assert.Equal(t, 4*time.Minute, w.backoff(3))
}

func TestStart_DeclaresQueueAndStops(t *testing.T) {
	repo := &fakeRepo{}
	pub := &fakePublisher{}
	w := newTestWorker(repo, pub, time.Now())

	done := make(chan struct{})
	go func() {
		w.Start(context.Background())
		close(done)
	}()

	w.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
	require.Len(t, pub.declared, 1)
	assert.Equal(t, "orders", pub.declared[0].Name)
	assert.True(t, pub.declared[0].Durable)
}
