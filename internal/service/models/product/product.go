package product

import "github.com/shopspring/decimal"

// Product is the read-only price reference of a catalog product.
type Product struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}
