package cart

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Carrito-api/internal/domain/entity"
)

// Quote cotización del carrito en un instante.
type Quote struct {
	Reference string
	IssuedAt  time.Time
	Entries   []entity.CartEntry
	Total     decimal.Decimal
	Items     int
}

// QuoteGenerator genera el documento de la cotización (PDF).
type QuoteGenerator interface {
	GenerateCartQuote(ctx context.Context, q Quote) ([]byte, error)
}

// Totals suma subtotales y unidades de entries.
func Totals(entries []entity.CartEntry) (total decimal.Decimal, items int) {
	total = decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Subtotal())
		items += e.Amount
	}
	return total, items
}

// NewQuote arma la cotización de snap.
func NewQuote(reference string, snap Snapshot, now time.Time) Quote {
	total, items := Totals(snap.Entries)
	return Quote{
		Reference: reference,
		IssuedAt:  now,
		Entries:   snap.Entries,
		Total:     total,
		Items:     items,
	}
}
