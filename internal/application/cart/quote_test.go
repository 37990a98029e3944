package cart_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Carrito-api/internal/application/cart"
	"github.com/jhoicas/Carrito-api/internal/domain/entity"
)

func TestNewQuote_Totales(t *testing.T) {
	snap := cart.Snapshot{Version: 3, Entries: []entity.CartEntry{
		{ID: 1, Price: decimal.RequireFromString("179.90"), Amount: 2},
		{ID: 2, Price: decimal.RequireFromString("139.90"), Amount: 1},
	}}
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	q := cart.NewQuote("ref-1", snap, now)
	assert.Equal(t, "ref-1", q.Reference)
	assert.Equal(t, now, q.IssuedAt)
	assert.Equal(t, 3, q.Items)
	assert.True(t, decimal.RequireFromString("499.70").Equal(q.Total), q.Total.String())
}

func TestTotals_CarritoVacio(t *testing.T) {
	total, items := cart.Totals(nil)
	assert.True(t, total.IsZero())
	assert.Zero(t, items)
}
