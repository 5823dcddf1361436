package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the quantity below which a product is flagged low stock.
const LowStockThreshold = 5

type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	LowStock  bool            `json:"low_stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RefreshLowStock recomputes the derived low-stock flag from the current quantity.
// Every mutation path calls this before the product becomes visible to readers.
func (p *Product) RefreshLowStock() {
	p.LowStock = p.Quantity < LowStockThreshold
}
