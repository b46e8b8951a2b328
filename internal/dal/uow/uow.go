package uow

import (
	"context"
	"errors"

	"github.com/corray333/backend-labs/shop/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backend-labs/shop/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/shop/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/shop/internal/dal/postgres"
	orderrepo "github.com/corray333/backend-labs/shop/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/corray333/backend-labs/shop/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/corray333/backend-labs/shop/internal/dal/repositories/outbox/postgres"
	"github.com/jackc/pgx/v5"
)

// UnitOfWork groups the order, order item and outbox repositories.
// Before Begin they run on the pool; after Begin, on a single transaction.
type UnitOfWork struct {
	client        *postgres.Client
	tx            pgx.Tx
	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
	outboxRepo    ioutboxrepo.IOutboxRepository
}

// NewUnitOfWork creates a unit of work bound to the client's pool.
func NewUnitOfWork(client *postgres.Client) *UnitOfWork {
	return &UnitOfWork{
		client:        client,
		orderRepo:     orderrepo.NewOrderRepository(client.Pool()),
		orderItemRepo: orderitemrepo.NewOrderItemRepository(client.Pool()),
		outboxRepo:    outboxrepo.NewOutboxRepository(client.Pool()),
	}
}

func (u *UnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *UnitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *UnitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	tx, err := u.client.Pool().Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	// Rebind the repositories to the transaction
	u.orderRepo = orderrepo.NewOrderRepository(tx)
	u.orderItemRepo = orderitemrepo.NewOrderItemRepository(tx)
	u.outboxRepo = outboxrepo.NewOutboxRepository(tx)

	return nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

// Rollback is a no-op after Commit.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	err := u.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}
