package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Carrito-api/internal/application/dto"
)

func TestCatalog_RutasCompatibles(t *testing.T) {
	env := newTestEnv(t, true)

	resp := do(t, env.app, http.MethodGet, "/stock/1", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.StockResponse{ID: 1, Amount: 3}, decode[dto.StockResponse](t, resp))

	resp = do(t, env.app, http.MethodGet, "/products/1", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	p := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, "179.9", p.Price.String(), "precio numérico como en el json-server")

	resp = do(t, env.app, http.MethodGet, "/products/99", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, env.app, http.MethodGet, "/stock/x", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCatalog_NoMontadoConFuenteHTTP(t *testing.T) {
	env := newTestEnv(t, false)

	resp := do(t, env.app, http.MethodGet, "/stock/1", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
