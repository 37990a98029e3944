package cart_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Carrito-api/internal/application/cart"
	"github.com/jhoicas/Carrito-api/internal/domain"
	"github.com/jhoicas/Carrito-api/internal/domain/entity"
)

// fakeCatalog stock y productos en memoria, con contadores de llamadas.
type fakeCatalog struct {
	mu       sync.Mutex
	stock    map[int64]int
	products map[int64]entity.Product
	stockErr error
	prodErr  error

	stockCalls   int
	productCalls int

	// gate, si no es nil, bloquea cada consulta de stock hasta recibir un valor.
	// arrived recibe un aviso cuando una consulta queda bloqueada.
	gate    chan struct{}
	arrived chan struct{}
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		stock:    map[int64]int{},
		products: map[int64]entity.Product{},
	}
}

func (f *fakeCatalog) withProduct(id int64, title, price string, stock int) *fakeCatalog {
	f.products[id] = entity.Product{
		ID:    id,
		Title: title,
		Price: decimal.RequireFromString(price),
		Image: "https://img.example/" + title + ".jpg",
	}
	f.stock[id] = stock
	return f
}

func (f *fakeCatalog) GetByProductID(ctx context.Context, productID int64) (*entity.Stock, error) {
	if f.gate != nil {
		if f.arrived != nil {
			f.arrived <- struct{}{}
		}
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stockCalls++
	if f.stockErr != nil {
		return nil, f.stockErr
	}
	amount, ok := f.stock[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entity.Stock{ProductID: productID, Amount: amount}, nil
}

func (f *fakeCatalog) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.productCalls++
	if f.prodErr != nil {
		return nil, f.prodErr
	}
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (f *fakeCatalog) List(context.Context) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Product, 0, len(f.products))
	for _, p := range f.products {
		p := p
		out = append(out, &p)
	}
	return out, nil
}

func (f *fakeCatalog) calls() (stock, product int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stockCalls, f.productCalls
}

func (f *fakeCatalog) deps() cart.Deps {
	return cart.Deps{Stock: f, Products: f}
}

// recorder Notifier que guarda los mensajes recibidos.
type recorder struct {
	messages []string
}

func (r *recorder) Error(message string) { r.messages = append(r.messages, message) }

func amounts(entries []entity.CartEntry) map[int64]int {
	out := make(map[int64]int, len(entries))
	for _, e := range entries {
		out[e.ID] = e.Amount
	}
	return out
}
