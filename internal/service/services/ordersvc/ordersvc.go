package ordersvc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/corray333/backend-labs/shop/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backend-labs/shop/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/shop/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/backend-labs/shop/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/backend-labs/shop/internal/dal/interfaces/iuserrepo"
	"github.com/corray333/backend-labs/shop/internal/dal/postgres"
	productrepo "github.com/corray333/backend-labs/shop/internal/dal/repositories/product/postgres"
	userrepo "github.com/corray333/backend-labs/shop/internal/dal/repositories/user/postgres"
	"github.com/corray333/backend-labs/shop/internal/dal/uow"
	"github.com/corray333/backend-labs/shop/internal/service/errs"
	"github.com/corray333/backend-labs/shop/internal/service/models/order"
	"github.com/corray333/backend-labs/shop/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/shop/internal/service/models/outbox"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultEventsQueue        = "shop.orders.events"
	defaultPricingConcurrency = 8
)

// OrderService is a service for placing and managing orders.
type OrderService struct {
	newUOW             func() unitOfWork
	pricer             *pricer
	userRepo           iuserrepo.IUserRepository
	eventsQueue        string
	pricingConcurrency int
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
// It panics when a required dependency is not configured.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		pricer:             &pricer{},
		eventsQueue:        viper.GetString("rabbitmq.queue"),
		pricingConcurrency: viper.GetInt("orders.pricing_concurrency"),
	}
	if s.eventsQueue == "" {
		s.eventsQueue = defaultEventsQueue
	}
	if s.pricingConcurrency <= 0 {
		s.pricingConcurrency = defaultPricingConcurrency
	}

	for _, opt := range opts {
		opt(s)
	}

	switch {
	case s.newUOW == nil:
		panic("ordersvc: unit of work is not configured")
	case s.pricer.products == nil:
		panic("ordersvc: product repository is not configured")
	case s.userRepo == nil:
		panic("ordersvc: user repository is not configured")
	}

	return s
}

// WithPostgresClient wires every repository of the OrderService to Postgres.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(pgClient)
		}
		s.pricer.products = productrepo.NewProductRepository(pgClient.Pool())
		s.userRepo = userrepo.NewUserRepository(pgClient.Pool())
	}
}

// WithUnitOfWork sets the unit of work factory for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWork(newUOW func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = newUOW
	}
}

// WithProductRepository sets the product price lookup for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(repo iproductrepo.IProductRepository) option {
	return func(s *OrderService) {
		s.pricer.products = repo
	}
}

// WithUserRepository sets the user lookup for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUserRepository(repo iuserrepo.IUserRepository) option {
	return func(s *OrderService) {
		s.userRepo = repo
	}
}

// WithEventsQueue sets the queue order events are addressed to.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithEventsQueue(queue string) option {
	return func(s *OrderService) {
		s.eventsQueue = queue
	}
}

// WithPricingConcurrency bounds the concurrent product lookups of one order.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPricingConcurrency(n int) option {
	return func(s *OrderService) {
		s.pricingConcurrency = n
	}
}

// PlaceOrder prices the requested items, stores them together with the order
// in one transaction and returns the created order with its items.
// Either the order and all of its items are stored, or nothing is.
func (s *OrderService) PlaceOrder(ctx context.Context, model order.PlaceOrderModel) (order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.PlaceOrder")
	defer span.End()

	status, err := validatePlaceOrder(model)
	if err != nil {
		return order.Order{}, err
	}

	exists, err := s.userRepo.Exists(ctx, model.UserID)
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to check user %d: %w", model.UserID, err)
	}
	if !exists {
		return order.Order{}, errs.NotFound("user", model.UserID)
	}

	priced, err := s.pricer.PriceAll(ctx, model.Items, s.pricingConcurrency)
	if err != nil {
		return order.Order{}, err
	}

	now := time.Now().UTC()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, errs.Creation("begin transaction", err)
	}
	defer rollback(ctx, work)

	items := make([]orderitem.OrderItem, 0, len(priced))
	itemIDs := make([]int64, 0, len(priced))
	total := decimal.Zero
	for _, item := range priced {
		item.CreatedAt = now
		stored, err := work.OrderItemRepository().Insert(ctx, item)
		if err != nil {
			return order.Order{}, errs.Creation("insert order item", err)
		}
		items = append(items, stored)
		itemIDs = append(itemIDs, stored.ID)
		total = total.Add(stored.Subtotal())
	}

	created, err := work.OrderRepository().Insert(ctx, order.Order{
		OrderItemIDs:     itemIDs,
		ShippingAddress1: model.Shipping.ShippingAddress1,
		ShippingAddress2: model.Shipping.ShippingAddress2,
		City:             model.Shipping.City,
		Zip:              model.Shipping.Zip,
		Country:          model.Shipping.Country,
		Phone:            model.Shipping.Phone,
		Status:           status,
		TotalPrice:       total,
		UserID:           model.UserID,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		return order.Order{}, errs.Creation("insert order", err)
	}
	created.OrderItems = items

	if err := s.enqueue(ctx, work, outbox.EventOrderPlaced, created, now); err != nil {
		return order.Order{}, errs.Creation("enqueue event", err)
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, errs.Creation("commit", err)
	}

	span.SetAttributes(attribute.Int64("order.id", created.ID), attribute.Int("order.items", len(items)))
	slog.Info("Order placed",
		"order_id", created.ID,
		"user_id", created.UserID,
		"items", len(items),
		"total_price", created.TotalPrice.String())

	return created, nil
}

// GetOrder returns an order with its items.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.GetOrder", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	work := s.newUOW()

	o, err := work.OrderRepository().GetByID(ctx, id)
	if err != nil {
		return order.Order{}, err
	}

	orders, err := attachItems(ctx, work.OrderItemRepository(), []order.Order{o})
	if err != nil {
		return order.Order{}, err
	}

	return orders[0], nil
}

// ListOrders returns all orders, newest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.ListOrders")
	defer span.End()

	return s.queryOrders(ctx, &order.QueryOrdersModel{})
}

// ListOrdersByUser returns the orders of one user, newest first.
func (s *OrderService) ListOrdersByUser(ctx context.Context, userID int64) ([]order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.ListOrdersByUser", trace.WithAttributes(attribute.Int64("user.id", userID)))
	defer span.End()

	return s.queryOrders(ctx, &order.QueryOrdersModel{UserIds: []int64{userID}})
}

func (s *OrderService) queryOrders(ctx context.Context, query *order.QueryOrdersModel) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	return attachItems(ctx, work.OrderItemRepository(), orders)
}

// UpdateOrderStatus changes the status of an order. Nothing else about an
// order can change after it is placed.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id int64, status string) (order.Order, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.UpdateOrderStatus", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	newStatus, err := order.ParseStatus(status)
	if err != nil {
		return order.Order{}, errs.Validation("unknown status %q", status)
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return order.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(ctx, work)

	updated, err := work.OrderRepository().UpdateStatus(ctx, id, newStatus)
	if err != nil {
		return order.Order{}, err
	}

	orders, err := attachItems(ctx, work.OrderItemRepository(), []order.Order{updated})
	if err != nil {
		return order.Order{}, err
	}
	updated = orders[0]

	if err := s.enqueue(ctx, work, outbox.EventOrderStatusChanged, updated, updated.UpdatedAt); err != nil {
		return order.Order{}, err
	}

	if err := work.Commit(ctx); err != nil {
		return order.Order{}, fmt.Errorf("failed to commit status update: %w", err)
	}

	slog.Info("Order status updated", "order_id", id, "status", newStatus)

	return updated, nil
}

// deletedOrder is the payload of an order.deleted event.
type deletedOrder struct {
	ID           int64   `json:"id"`
	OrderItemIDs []int64 `json:"orderItemIds"`
	UserID       int64   `json:"userId"`
}

// DeleteOrder removes an order together with its items in one transaction.
// Items that are already gone are skipped; any other failure aborts the delete.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.DeleteOrder", trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollback(ctx, work)

	deleted, err := work.OrderRepository().Delete(ctx, id)
	if err != nil {
		return err
	}

	for _, itemID := range deleted.OrderItemIDs {
		err := work.OrderItemRepository().DeleteByID(ctx, itemID)
		if errors.Is(err, errs.ErrNotFound) {
			slog.Warn("Order item already deleted", "order_id", id, "order_item_id", itemID)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to delete order item %d of order %d: %w", itemID, id, err)
		}
	}

	payload := deletedOrder{ID: deleted.ID, OrderItemIDs: deleted.OrderItemIDs, UserID: deleted.UserID}
	if err := s.enqueue(ctx, work, outbox.EventOrderDeleted, payload, time.Now().UTC()); err != nil {
		return err
	}

	if err := work.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order delete: %w", err)
	}

	slog.Info("Order deleted", "order_id", id, "items", len(deleted.OrderItemIDs))

	return nil
}

func (s *OrderService) enqueue(ctx context.Context, work unitOfWork, eventType string, payload any, now time.Time) error {
	msg, err := outbox.NewJSONMessage(eventType, s.eventsQueue, payload, now)
	if err != nil {
		return err
	}

	return work.OutboxRepository().Insert(ctx, msg)
}

// attachItems loads the items of all orders with one query and attaches them
// in the order the orders reference them.
func attachItems(
	ctx context.Context,
	repo iorderitemrepo.IOrderItemRepository,
	orders []order.Order,
) ([]order.Order, error) {
	query := &orderitem.QueryOrderItemsModel{}
	for _, o := range orders {
		query.Ids = append(query.Ids, o.OrderItemIDs...)
	}

	if len(query.Ids) == 0 {
		return orders, nil
	}

	items, err := repo.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]orderitem.OrderItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	for i := range orders {
		orders[i].OrderItems = make([]orderitem.OrderItem, 0, len(orders[i].OrderItemIDs))
		for _, id := range orders[i].OrderItemIDs {
			if item, ok := byID[id]; ok {
				orders[i].OrderItems = append(orders[i].OrderItems, item)
			}
		}
	}

	return orders, nil
}

func rollback(ctx context.Context, work unitOfWork) {
	if err := work.Rollback(context.WithoutCancel(ctx)); err != nil {
		slog.Error("Failed to rollback transaction", "error", err)
	}
}

func validatePlaceOrder(model order.PlaceOrderModel) (order.Status, error) {
	if model.UserID <= 0 {
		return "", errs.Validation("invalid user id %d", model.UserID)
	}
	if len(model.Items) == 0 {
		return "", errs.Validation("order must contain at least one item")
	}
	for i, item := range model.Items {
		if item.ProductID <= 0 {
			return "", errs.Validation("item %d: invalid product id %d", i, item.ProductID)
		}
		if item.Quantity <= 0 {
			return "", errs.Validation("item %d (product %d): quantity must be positive", i, item.ProductID)
		}
	}

	required := []struct {
		name  string
		value string
	}{
		{"shippingAddress1", model.Shipping.ShippingAddress1},
		{"city", model.Shipping.City},
		{"zip", model.Shipping.Zip},
		{"country", model.Shipping.Country},
		{"phone", model.Shipping.Phone},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return "", errs.Validation("%s is required", field.name)
		}
	}

	if model.Status == "" {
		return order.StatusPending, nil
	}
	status, err := order.ParseStatus(model.Status)
	if err != nil {
		return "", errs.Validation("unknown status %q", model.Status)
	}

	return status, nil
}
