package entity

import "github.com/shopspring/decimal"

// Product represents a catalog entry for data transfer between layers.
type Product struct {
	ID            string          `json:"id"`
	StoreID       string          `json:"store_id"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int             `json:"stock_quantity"`
	Category      string          `json:"category"`
}
