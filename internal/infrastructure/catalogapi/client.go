// Package catalogapi consulta stock y productos en la API REST del catálogo
// (compatible con el json-server de la tienda: /stock/:id y /products/:id).
package catalogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/Carrito-api/internal/domain"
	"github.com/jhoicas/Carrito-api/internal/domain/entity"
	"github.com/jhoicas/Carrito-api/internal/domain/repository"
)

const tracerName = "github.com/jhoicas/Carrito-api/internal/infrastructure/catalogapi"

var (
	_ repository.StockRepository   = (*Client)(nil)
	_ repository.ProductRepository = (*Client)(nil)
)

// Client cliente HTTP del catálogo. Implementa StockRepository y ProductRepository.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tracer  trace.Tracer
}

// Option configura el Client.
type Option func(*Client)

// WithHTTPClient reemplaza el *http.Client (tests, transportes propios).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTracerProvider usa tp en lugar del proveedor global de otel.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp.Tracer(tracerName) }
}

// New construye el cliente. timeout aplica a cada request completo.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: CATALOG_API_URL %q", domain.ErrInvalidInput, baseURL)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetByProductID GET /stock/{id}.
func (c *Client) GetByProductID(ctx context.Context, productID int64) (*entity.Stock, error) {
	var s entity.Stock
	if err := c.get(ctx, "catalogapi.GetStock", &s, "stock", strconv.FormatInt(productID, 10)); err != nil {
		return nil, fmt.Errorf("stock %d: %w", productID, err)
	}
	return &s, nil
}

// GetByID GET /products/{id}.
func (c *Client) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var p entity.Product
	if err := c.get(ctx, "catalogapi.GetProduct", &p, "products", strconv.FormatInt(id, 10)); err != nil {
		return nil, fmt.Errorf("producto %d: %w", id, err)
	}
	return &p, nil
}

// List GET /products.
func (c *Client) List(ctx context.Context) ([]*entity.Product, error) {
	var list []*entity.Product
	if err := c.get(ctx, "catalogapi.ListProducts", &list, "products"); err != nil {
		return nil, fmt.Errorf("productos: %w", err)
	}
	return list, nil
}

// get hace GET de baseURL + elems. Los segmentos se agregan a la ruta base (p. ej. /api/v1).
func (c *Client) get(ctx context.Context, spanName string, out any, elems ...string) (err error) {
	ctx, span := c.tracer.Start(ctx, spanName, trace.WithSpanKind(trace.SpanKindClient))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	u := c.baseURL.JoinPath(elems...)
	span.SetAttributes(attribute.String("http.method", http.MethodGet), attribute.String("http.url", u.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("catálogo respondió %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decodificar respuesta: %w", err)
	}
	return nil
}
