package dto

import (
	"github.com/jhoicas/Carrito-api/internal/application/cart"
	"github.com/jhoicas/Carrito-api/pkg/money"
)

// CartEntryResponse línea del carrito con precios formateados.
type CartEntryResponse struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Price             string `json:"price"`
	PriceFormatted    string `json:"price_formatted"`
	Image             string `json:"image"`
	Amount            int    `json:"amount"`
	Subtotal          string `json:"subtotal"`
	SubtotalFormatted string `json:"subtotal_formatted"`
}

// CartResponse respuesta de GET /api/cart y de las mutaciones.
type CartResponse struct {
	Version        uint64              `json:"version"`
	Entries        []CartEntryResponse `json:"entries"`
	Items          int                 `json:"items"`
	Total          string              `json:"total"`
	TotalFormatted string              `json:"total_formatted"`
}

// UpdateAmountRequest cuerpo de PUT /api/cart/products/:productId.
type UpdateAmountRequest struct {
	Amount int `json:"amount"`
}

// NewCartResponse arma la respuesta a partir de una instantánea.
func NewCartResponse(snap cart.Snapshot) CartResponse {
	entries := make([]CartEntryResponse, 0, len(snap.Entries))
	for _, e := range snap.Entries {
		sub := e.Subtotal()
		entries = append(entries, CartEntryResponse{
			ID:                e.ID,
			Title:             e.Title,
			Price:             e.Price.StringFixed(2),
			PriceFormatted:    money.FormatBRL(e.Price),
			Image:             e.Image,
			Amount:            e.Amount,
			Subtotal:          sub.StringFixed(2),
			SubtotalFormatted: money.FormatBRL(sub),
		})
	}
	total, items := cart.Totals(snap.Entries)
	return CartResponse{
		Version:        snap.Version,
		Entries:        entries,
		Items:          items,
		Total:          total.StringFixed(2),
		TotalFormatted: money.FormatBRL(total),
	}
}
