package entity

import "github.com/shopspring/decimal"

// CartEntry línea del carrito: un producto con la cantidad solicitada (Amount >= 1).
// Los nombres JSON coinciden con el formato guardado en @RocketShoes:cart.
type CartEntry struct {
	ID     int64           `json:"id"`
	Title  string          `json:"title"`
	Price  decimal.Decimal `json:"price"`
	Image  string          `json:"image"`
	Amount int             `json:"amount"`
}

// NewCartEntry crea la línea para un producto recién agregado (Amount = 1).
func NewCartEntry(p Product) CartEntry {
	return CartEntry{
		ID:     p.ID,
		Title:  p.Title,
		Price:  p.Price,
		Image:  p.Image,
		Amount: 1,
	}
}

// Subtotal precio unitario por cantidad.
func (e CartEntry) Subtotal() decimal.Decimal {
	return e.Price.Mul(decimal.NewFromInt(int64(e.Amount)))
}
