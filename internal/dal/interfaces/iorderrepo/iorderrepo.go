package iorderrepo

import (
	"context"

	"github.com/corray333/backend-labs/shop/internal/service/models/order"
	"github.com/shopspring/decimal"
)

// IOrderRepository is an interface for order postgres repository.
type IOrderRepository interface {
	Insert(ctx context.Context, o order.Order) (order.Order, error)
	GetByID(ctx context.Context, id int64) (order.Order, error)
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	UpdateStatus(ctx context.Context, id int64, status order.Status) (order.Order, error)
	// Delete removes the order row and returns it so that its items can be cascaded.
	Delete(ctx context.Context, id int64) (order.Order, error)
	Count(ctx context.Context) (int64, error)
	// TotalSales is invalid when there are no orders.
	TotalSales(ctx context.Context) (decimal.NullDecimal, error)
}
