package cart

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Carrito-api/internal/domain/repository"
	"github.com/jhoicas/Carrito-api/pkg/logger"
)

const persistTimeout = 5 * time.Second

// Persister escribe cada nueva instantánea del carrito en el almacenamiento.
// Solo escribe cuando la versión es mayor que la última guardada; cargar el carrito no escribe.
type Persister struct {
	storage repository.KeyValueStore
	log     *logger.Logger

	mu   sync.Mutex
	last uint64
}

// NewPersister construye el persistidor. log puede ser nil.
func NewPersister(storage repository.KeyValueStore, log *logger.Logger) *Persister {
	if log == nil {
		log = logger.Nop()
	}
	return &Persister{storage: storage, log: log.Component("cart_persister")}
}

// Attach se suscribe a store tomando su versión actual como ya guardada.
func (p *Persister) Attach(store *Store) (detach func()) {
	p.mu.Lock()
	p.last = store.Snapshot().Version
	p.mu.Unlock()
	return store.Subscribe(p.Persist)
}

// Persist guarda snap si es más reciente que lo último escrito. Un fallo se registra
// y no avanza la versión, así la siguiente mutación reintenta con el estado completo.
func (p *Persister) Persist(snap Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if snap.Version <= p.last {
		return
	}

	raw, err := EncodeEntries(snap.Entries)
	if err != nil {
		p.log.Error().Err(err).Uint64("version", snap.Version).Msg("serializar carrito")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := p.storage.Set(ctx, StorageKey, raw); err != nil {
		p.log.Error().Err(err).Uint64("version", snap.Version).Msg("guardar carrito")
		return
	}
	p.last = snap.Version
	p.log.Debug().Uint64("version", snap.Version).Int("items", len(snap.Entries)).Msg("carrito guardado")
}

// Open carga el carrito de storage y le conecta un Persister.
func Open(ctx context.Context, storage repository.KeyValueStore, deps Deps, log *logger.Logger) (*Store, error) {
	store, err := Load(ctx, storage, deps)
	if err != nil {
		return nil, err
	}
	NewPersister(storage, log).Attach(store)
	return store, nil
}
