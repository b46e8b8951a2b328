package order

import (
	"time"

	"github.com/corray333/backend-labs/shop/internal/service/models/orderitem"
	"github.com/shopspring/decimal"
)

// Order represents an order in the system.
// TotalPrice is derived once at creation from the prices captured by its items.
type Order struct {
	ID               int64                 `json:"id"`
	OrderItemIDs     []int64               `json:"orderItemIds"`
	OrderItems       []orderitem.OrderItem `json:"orderItems"`
	ShippingAddress1 string                `json:"shippingAddress1"`
	ShippingAddress2 string                `json:"shippingAddress2"`
	City             string                `json:"city"`
	Zip              string                `json:"zip"`
	Country          string                `json:"country"`
	Phone            string                `json:"phone"`
	Status           Status                `json:"status"`
	TotalPrice       decimal.Decimal       `json:"totalPrice"`
	UserID           int64                 `json:"userId"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}

// ShippingInfo is the delivery and contact part of an order.
type ShippingInfo struct {
	ShippingAddress1 string
	ShippingAddress2 string
	City             string
	Zip              string
	Country          string
	Phone            string
}

// RequestedItem is a product reference with the quantity the customer asked for.
type RequestedItem struct {
	ProductID int64
	Quantity  int
}

// PlaceOrderModel is the typed input of an order placement.
type PlaceOrderModel struct {
	Items    []RequestedItem
	Shipping ShippingInfo
	UserID   int64
	// Status is optional; an empty value means StatusPending.
	Status string
}
