package ordersvc

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
)

// OrderCount returns the number of stored orders.
func (s *OrderService) OrderCount(ctx context.Context) (int64, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.OrderCount")
	defer span.End()

	return s.newUOW().OrderRepository().Count(ctx)
}

// TotalSales sums the total price of all stored orders.
// An invalid result means there are no orders at all, which is distinct from
// orders that add up to zero.
func (s *OrderService) TotalSales(ctx context.Context) (decimal.NullDecimal, error) {
	ctx, span := otel.Tracer("service").Start(ctx, "OrderService.TotalSales")
	defer span.End()

	return s.newUOW().OrderRepository().TotalSales(ctx)
}
