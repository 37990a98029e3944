// Package cart contiene el estado del carrito de compras: agregar, quitar y ajustar
// cantidades validando contra el stock remoto, con instantáneas inmutables para
// los observadores.
//
// Las operaciones no se excluyen entre sí: mientras una espera la consulta de stock,
// otra puede completarse y la última en confirmar gana. El mutex solo protege la
// lectura y el reemplazo de la instantánea.
package cart

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/jhoicas/Carrito-api/internal/domain"
	"github.com/jhoicas/Carrito-api/internal/domain/entity"
	"github.com/jhoicas/Carrito-api/internal/domain/repository"
)

// Snapshot lista completa del carrito en un instante. Version crece en cada mutación aceptada.
// Entries no debe modificarse: se comparte con todos los observadores.
type Snapshot struct {
	Version uint64
	Entries []entity.CartEntry
}

// Deps consultas externas que usa el carrito.
type Deps struct {
	Stock    repository.StockRepository
	Products repository.ProductRepository
}

// UpdateProductAmount entrada de Store.UpdateProductAmount.
type UpdateProductAmount struct {
	ProductID int64 `json:"productId"`
	Amount    int   `json:"amount"`
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// Store dueño exclusivo de la lista del carrito.
type Store struct {
	stock    repository.StockRepository
	products repository.ProductRepository

	mu      sync.Mutex
	current Snapshot

	subMu   sync.Mutex
	nextSub int
	subs    []subscriber
}

// NewStore construye el carrito con las líneas iniciales (pueden ser nil).
func NewStore(deps Deps, initial []entity.CartEntry) *Store {
	entries := slices.Clone(initial)
	if entries == nil {
		entries = []entity.CartEntry{}
	}
	return &Store{
		stock:    deps.Stock,
		products: deps.Products,
		current:  Snapshot{Entries: entries},
	}
}

// Load construye el carrito leyendo StorageKey de storage. Clave ausente = carrito vacío.
func Load(ctx context.Context, storage repository.KeyValueStore, deps Deps) (*Store, error) {
	raw, ok, err := storage.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("leer carrito: %w", err)
	}
	if !ok {
		return NewStore(deps, nil), nil
	}
	entries, err := DecodeEntries(raw)
	if err != nil {
		return nil, err
	}
	return NewStore(deps, entries), nil
}

// Snapshot devuelve la instantánea vigente.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Cart devuelve una copia de las líneas actuales, en orden.
func (s *Store) Cart() []entity.CartEntry {
	return slices.Clone(s.Snapshot().Entries)
}

// Subscribe registra fn para recibir cada nueva instantánea. La función devuelta cancela la suscripción.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
		})
	}
}

// AddProduct suma una unidad del producto. El stock se consulta siempre; el detalle del
// producto solo cuando no estaba en el carrito.
func (s *Store) AddProduct(ctx context.Context, productID int64) error {
	base := s.Snapshot()
	idx := indexOf(base.Entries, productID)

	stock, err := s.stock.GetByProductID(ctx, productID)
	if err != nil {
		return fault(OpAdd, productID, err)
	}

	current := 0
	if idx >= 0 {
		current = base.Entries[idx].Amount
	}
	requested := current + 1
	if requested > stock.Amount {
		return outOfStock(OpAdd, productID)
	}

	next := slices.Clone(base.Entries)
	if idx >= 0 {
		next[idx].Amount = requested
	} else {
		product, err := s.products.GetByID(ctx, productID)
		if err != nil {
			return fault(OpAdd, productID, err)
		}
		if product == nil {
			return fault(OpAdd, productID, domain.ErrNotFound)
		}
		entry := entity.NewCartEntry(*product)
		entry.ID = productID
		next = append(next, entry)
	}

	s.commit(next)
	return nil
}

// RemoveProduct quita la línea del producto conservando el orden del resto.
func (s *Store) RemoveProduct(productID int64) error {
	base := s.Snapshot()
	idx := indexOf(base.Entries, productID)
	if idx < 0 {
		return notInCart(OpRemove, productID)
	}
	next := slices.Delete(slices.Clone(base.Entries), idx, idx+1)
	s.commit(next)
	return nil
}

// UpdateProductAmount fija la cantidad de una línea existente.
// Amount <= 0 no hace nada y no es error (la UI limita el decremento en 1).
func (s *Store) UpdateProductAmount(ctx context.Context, in UpdateProductAmount) error {
	if in.Amount <= 0 {
		return nil
	}

	stock, err := s.stock.GetByProductID(ctx, in.ProductID)
	if err != nil {
		return fault(OpUpdate, in.ProductID, err)
	}
	if in.Amount > stock.Amount {
		return outOfStock(OpUpdate, in.ProductID)
	}

	base := s.Snapshot()
	idx := indexOf(base.Entries, in.ProductID)
	if idx < 0 {
		return notInCart(OpUpdate, in.ProductID)
	}
	next := slices.Clone(base.Entries)
	next[idx].Amount = in.Amount
	s.commit(next)
	return nil
}

// commit reemplaza la instantánea y la entrega a los observadores fuera del lock de estado.
func (s *Store) commit(entries []entity.CartEntry) {
	s.mu.Lock()
	snap := Snapshot{Version: s.current.Version + 1, Entries: entries}
	s.current = snap
	s.mu.Unlock()

	s.subMu.Lock()
	subs := slices.Clone(s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(snap)
	}
}

func indexOf(entries []entity.CartEntry, productID int64) int {
	return slices.IndexFunc(entries, func(e entity.CartEntry) bool { return e.ID == productID })
}
