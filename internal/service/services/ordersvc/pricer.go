package ordersvc

import (
	"context"
	"fmt"

	"github.com/corray333/backend-labs/shop/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/backend-labs/shop/internal/service/errs"
	"github.com/corray333/backend-labs/shop/internal/service/models/order"
	"github.com/corray333/backend-labs/shop/internal/service/models/orderitem"
	"golang.org/x/sync/errgroup"
)

// pricer turns requested items into order items carrying the current unit price.
type pricer struct {
	products iproductrepo.IProductRepository
}

// Price resolves the product and captures its price. The returned item has no
// ID yet.
func (p *pricer) Price(ctx context.Context, productID int64, quantity int) (orderitem.OrderItem, error) {
	if quantity <= 0 {
		return orderitem.OrderItem{}, errs.Validation("product %d: quantity must be positive, got %d", productID, quantity)
	}

	prod, err := p.products.FindByID(ctx, productID)
	if err != nil {
		return orderitem.OrderItem{}, fmt.Errorf("failed to price product %d: %w", productID, err)
	}

	return orderitem.OrderItem{
		ProductID: prod.ID,
		Quantity:  quantity,
		UnitPrice: prod.Price,
	}, nil
}

// PriceAll prices every item concurrently, keeping the request order.
// The first failure cancels the remaining lookups.
func (p *pricer) PriceAll(
	ctx context.Context,
	items []order.RequestedItem,
	limit int,
) ([]orderitem.OrderItem, error) {
	priced := make([]orderitem.OrderItem, len(items))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, item := range items {
		g.Go(func() error {
			pi, err := p.Price(gctx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			priced[i] = pi

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return priced, nil
}
