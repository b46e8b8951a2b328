package iorderitemrepo

import (
	"context"

	"github.com/corray333/backend-labs/shop/internal/service/models/orderitem"
)

// IOrderItemRepository is an interface for order item postgres repository.
type IOrderItemRepository interface {
	Insert(ctx context.Context, item orderitem.OrderItem) (orderitem.OrderItem, error)
	GetByID(ctx context.Context, id int64) (orderitem.OrderItem, error)
	Query(
		ctx context.Context,
		filter *orderitem.QueryOrderItemsModel,
	) ([]orderitem.OrderItem, error)
	DeleteByID(ctx context.Context, id int64) error
}
