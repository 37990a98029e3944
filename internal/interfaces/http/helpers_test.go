package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Carrito-api/internal/application/cart"
	"github.com/jhoicas/Carrito-api/internal/domain"
	"github.com/jhoicas/Carrito-api/internal/domain/entity"
	"github.com/jhoicas/Carrito-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Carrito-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Carrito-api/pkg/jwt"
	"github.com/jhoicas/Carrito-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "carrito-test"
	testExpMin    = 60
)

// catalog stock y productos fijos.
type catalog struct {
	stock    map[int64]int
	products map[int64]entity.Product
	err      error
}

func newCatalog() *catalog {
	return &catalog{
		stock: map[int64]int{1: 3, 2: 0},
		products: map[int64]entity.Product{
			1: {ID: 1, Title: "Tênis de Caminhada Leve Confortável", Price: decimal.RequireFromString("179.9"), Image: "https://x/1.jpg"},
			2: {ID: 2, Title: "Tênis VR Caminhada Confortável", Price: decimal.RequireFromString("139.9"), Image: "https://x/2.jpg"},
		},
	}
}

func (f *catalog) GetByProductID(_ context.Context, id int64) (*entity.Stock, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.stock[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entity.Stock{ProductID: id, Amount: a}, nil
}

func (f *catalog) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (f *catalog) List(context.Context) ([]*entity.Product, error) {
	return []*entity.Product{}, nil
}

type fakeQuotes struct{}

func (fakeQuotes) GenerateCartQuote(_ context.Context, q cart.Quote) ([]byte, error) {
	return []byte("%PDF-fake " + q.Reference), nil
}

type recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *recorder) Error(m string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
}

type testEnv struct {
	app      *fiber.App
	catalog  *catalog
	kv       *memory.KVStore
	notes    *recorder
	cart     *apphttp.CartHandler
	sessions *cart.Sessions
}

func newTestEnv(t *testing.T, withCatalog bool) *testEnv {
	t.Helper()
	env := &testEnv{catalog: newCatalog(), kv: memory.NewKVStore(), notes: &recorder{}}
	log := logger.Nop()
	env.sessions = cart.NewSessions(env.kv, cart.Deps{Stock: env.catalog, Products: env.catalog}, log)
	env.cart = apphttp.NewCartHandler(env.sessions, fakeQuotes{}, env.notes, log)

	deps := apphttp.RouterDeps{
		Cart:    env.cart,
		Session: apphttp.SessionConfig{Secret: testJWTSecret, Issuer: testIssuer, ExpMinutes: testExpMin},
	}
	if withCatalog {
		deps.Catalog = &apphttp.CatalogDeps{Stock: env.catalog, Products: env.catalog}
	}

	env.app = fiber.New()
	apphttp.Router(env.app, deps)
	return env
}

func bearer(t *testing.T, sessionID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, sessionID, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func do(t *testing.T, app *fiber.App, method, path, auth, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
