package dto_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Carrito-api/internal/application/cart"
	"github.com/jhoicas/Carrito-api/internal/application/dto"
	"github.com/jhoicas/Carrito-api/internal/domain/entity"
)

func TestNewCartResponse(t *testing.T) {
	snap := cart.Snapshot{Version: 4, Entries: []entity.CartEntry{
		{ID: 1, Title: "a", Price: decimal.RequireFromString("179.9"), Image: "a.jpg", Amount: 2},
		{ID: 2, Title: "b", Price: decimal.RequireFromString("780"), Image: "b.jpg", Amount: 1},
	}}

	out := dto.NewCartResponse(snap)
	require.Len(t, out.Entries, 2)
	assert.Equal(t, uint64(4), out.Version)
	assert.Equal(t, 3, out.Items)
	assert.Equal(t, "1139.80", out.Total)
	assert.Equal(t, "R$ 1.139,80", out.TotalFormatted)
	assert.Equal(t, "179.90", out.Entries[0].Price)
	assert.Equal(t, "R$ 179,90", out.Entries[0].PriceFormatted)
	assert.Equal(t, "R$ 359,80", out.Entries[0].SubtotalFormatted)
}

func TestNewCartResponse_Vacio(t *testing.T) {
	out := dto.NewCartResponse(cart.Snapshot{})
	assert.NotNil(t, out.Entries)
	assert.Equal(t, "0.00", out.Total)
}
