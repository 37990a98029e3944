package http_test

import (
	"bufio"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Carrito-api/internal/application/cart"
	"github.com/jhoicas/Carrito-api/internal/application/dto"
)

func TestSession_CreaTokenUsable(t *testing.T) {
	env := newTestEnv(t, false)

	resp := do(t, env.app, http.MethodPost, "/api/session", "", "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sess := decode[dto.SessionResponse](t, resp)
	assert.NotEmpty(t, sess.SessionID)
	assert.Equal(t, testExpMin*60, sess.ExpiresIn)

	resp = do(t, env.app, http.MethodGet, "/api/cart", "Bearer "+sess.Token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.CartResponse](t, resp)
	assert.Empty(t, out.Entries)
	assert.Equal(t, "R$ 0,00", out.TotalFormatted)
}

func TestCart_AgregarActualizarQuitar(t *testing.T) {
	env := newTestEnv(t, false)
	auth := bearer(t, "s1")

	resp := do(t, env.app, http.MethodPost, "/api/cart/products/1", auth, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.CartResponse](t, resp)
	require.Len(t, out.Entries, 1)
	assert.Equal(t, 1, out.Entries[0].Amount)
	assert.Equal(t, "R$ 179,90", out.Entries[0].PriceFormatted)

	resp = do(t, env.app, http.MethodPut, "/api/cart/products/1", auth, `{"amount":3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out = decode[dto.CartResponse](t, resp)
	assert.Equal(t, 3, out.Items)
	assert.Equal(t, "R$ 539,70", out.TotalFormatted)

	resp = do(t, env.app, http.MethodDelete, "/api/cart/products/1", auth, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[dto.CartResponse](t, resp).Entries)
	assert.Empty(t, env.notes.messages)
}

func TestCart_Errores(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		status  int
		code    string
		message string
	}{
		{"sin stock", http.MethodPost, "/api/cart/products/2", "", http.StatusConflict, "OUT_OF_STOCK", cart.MsgOutOfStock},
		{"producto desconocido", http.MethodPost, "/api/cart/products/99", "", http.StatusBadGateway, "CART_OPERATION_FAILED", cart.MsgAddFailed},
		{"quitar ausente", http.MethodDelete, "/api/cart/products/1", "", http.StatusNotFound, "NOT_IN_CART", cart.MsgRemoveFailed},
		{"actualizar ausente", http.MethodPut, "/api/cart/products/1", `{"amount":1}`, http.StatusNotFound, "NOT_IN_CART", cart.MsgUpdateFailed},
		{"actualizar sobre stock", http.MethodPut, "/api/cart/products/1", `{"amount":4}`, http.StatusConflict, "OUT_OF_STOCK", cart.MsgOutOfStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, false)

			resp := do(t, env.app, tt.method, tt.path, bearer(t, "s1"), tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			body := decode[dto.ErrorResponse](t, resp)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, []string{tt.message}, env.notes.messages)
		})
	}
}

func TestCart_FallaDeCatalogo(t *testing.T) {
	env := newTestEnv(t, false)
	env.catalog.err = errors.New("json-server caído")

	resp := do(t, env.app, http.MethodPost, "/api/cart/products/1", bearer(t, "s1"), "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, cart.MsgAddFailed, decode[dto.ErrorResponse](t, resp).Message)
}

func TestCart_CantidadNoPositivaEsNoOp(t *testing.T) {
	env := newTestEnv(t, false)
	auth := bearer(t, "s1")
	do(t, env.app, http.MethodPost, "/api/cart/products/1", auth, "")

	resp := do(t, env.app, http.MethodPut, "/api/cart/products/1", auth, `{"amount":0}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.CartResponse](t, resp)
	assert.Equal(t, 1, out.Entries[0].Amount)
	assert.Equal(t, uint64(1), out.Version)
	assert.Empty(t, env.notes.messages)
}

func TestCart_ProductIDInvalido(t *testing.T) {
	env := newTestEnv(t, false)

	resp := do(t, env.app, http.MethodPost, "/api/cart/products/abc", bearer(t, "s1"), "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_PRODUCT_ID", decode[dto.ErrorResponse](t, resp).Code)
}

func TestCart_SesionesAisladas(t *testing.T) {
	env := newTestEnv(t, false)

	do(t, env.app, http.MethodPost, "/api/cart/products/1", bearer(t, "a"), "")

	resp := do(t, env.app, http.MethodGet, "/api/cart", bearer(t, "b"), "")
	assert.Empty(t, decode[dto.CartResponse](t, resp).Entries)
	assert.Equal(t, 2, env.sessions.Len())
}

func TestCart_Quote(t *testing.T) {
	env := newTestEnv(t, false)

	resp := do(t, env.app, http.MethodGet, "/api/cart/quote.pdf", bearer(t, "s1"), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake s1", string(body))
}

// Con el handler cerrado el stream envía la instantánea inicial y termina.
func TestCart_EventsEnviaInstantaneaInicial(t *testing.T) {
	env := newTestEnv(t, false)
	auth := bearer(t, "s1")
	do(t, env.app, http.MethodPost, "/api/cart/products/1", auth, "")
	env.cart.Close()

	req := httptest.NewRequest(http.MethodGet, "/api/cart/events", nil)
	req.Header.Set("Authorization", auth)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	sc := bufio.NewScanner(resp.Body)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "id: 1", lines[0])
	assert.Equal(t, "event: cart", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "data: {"), lines[2])
	assert.Contains(t, lines[2], `"amount":1`)
}
