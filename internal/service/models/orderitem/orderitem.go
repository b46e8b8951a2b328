package orderitem

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a priced line of an order.
// UnitPrice is captured when the item is created and never re-derived.
type OrderItem struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Subtotal returns UnitPrice * Quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
