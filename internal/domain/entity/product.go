package entity

import "github.com/shopspring/decimal"

// Product producto del catálogo tal como lo entrega /products/:id.
type Product struct {
	ID    int64           `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}
