package iproductrepo

import (
	"context"

	"github.com/corray333/backend-labs/shop/internal/service/models/product"
)

// IProductRepository resolves catalog products to their current price.
type IProductRepository interface {
	FindByID(ctx context.Context, id int64) (product.Product, error)
}
