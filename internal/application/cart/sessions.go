package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/Carrito-api/internal/domain"
	"github.com/jhoicas/Carrito-api/internal/domain/repository"
	"github.com/jhoicas/Carrito-api/pkg/logger"
)

type session struct {
	store    *Store
	lastSeen time.Time
}

// Sessions mantiene un Store por sesión de comprador. Cada sesión guarda su carrito
// bajo el prefijo "cart:<session>:" del almacenamiento compartido.
type Sessions struct {
	storage repository.KeyValueStore
	deps    Deps
	log     *logger.Logger
	now     func() time.Time

	// loads agrupa las cargas concurrentes de una misma sesión; mu no se toma durante la lectura.
	loads singleflight.Group

	mu     sync.Mutex
	stores map[string]*session
}

// NewSessions construye el registro de carritos.
func NewSessions(storage repository.KeyValueStore, deps Deps, log *logger.Logger) *Sessions {
	if log == nil {
		log = logger.Nop()
	}
	return &Sessions{
		storage: storage,
		deps:    deps,
		log:     log.Component("cart_sessions"),
		now:     time.Now,
		stores:  make(map[string]*session),
	}
}

// SessionPrefix prefijo de claves de una sesión.
func SessionPrefix(sessionID string) string {
	return "cart:" + sessionID + ":"
}

// Get devuelve el carrito de la sesión, cargándolo la primera vez.
// Un valor guardado corrupto se descarta y la sesión empieza con el carrito vacío.
func (s *Sessions) Get(ctx context.Context, sessionID string) (*Store, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidInput
	}
	if st, ok := s.lookup(sessionID); ok {
		return st, nil
	}

	v, err, _ := s.loads.Do(sessionID, func() (any, error) {
		// otra carga pudo terminar entre lookup y Do
		if st, ok := s.lookup(sessionID); ok {
			return st, nil
		}
		st, err := s.open(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.stores[sessionID] = &session{store: st, lastSeen: s.now()}
		s.mu.Unlock()
		return st, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Store), nil
}

func (s *Sessions) lookup(sessionID string) (*Store, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.stores[sessionID]
	if !ok {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.store, true
}

func (s *Sessions) open(ctx context.Context, sessionID string) (*Store, error) {
	storage := repository.Namespace(s.storage, SessionPrefix(sessionID))
	st, err := Open(ctx, storage, s.deps, s.log)
	if errors.Is(err, domain.ErrCorruptCart) {
		s.log.Warn().Err(err).Str("session", sessionID).Msg("carrito guardado ilegible, se inicia vacío")
		st = NewStore(s.deps, nil)
		NewPersister(storage, s.log).Attach(st)
		return st, nil
	}
	return st, err
}

// EvictIdle descarta las sesiones sin acceso desde hace más de idle. La próxima
// petición de una sesión descartada vuelve a leer su carrito del almacenamiento.
func (s *Sessions) EvictIdle(idle time.Duration) int {
	cutoff := s.now().Add(-idle)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.stores {
		if sess.lastSeen.Before(cutoff) {
			delete(s.stores, id)
			n++
		}
	}
	return n
}

// RunEviction llama a EvictIdle cada interval hasta que ctx termine.
func (s *Sessions) RunEviction(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.EvictIdle(idle); n > 0 {
				s.log.Debug().Int("evicted", n).Int("loaded", s.Len()).Msg("sesiones inactivas descartadas")
			}
		}
	}
}

// Len cantidad de sesiones cargadas.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stores)
}
