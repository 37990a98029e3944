// Package memory implementa repository.KeyValueStore en memoria (desarrollo y tests).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Carrito-api/internal/domain/repository"
)

// KVStore mapa protegido por mutex.
type KVStore struct {
	mu   sync.RWMutex
	data map[string]string
	sets int
}

var _ repository.KeyValueStore = (*KVStore)(nil)

// NewKVStore crea el almacenamiento vacío.
func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string]string)}
}

// Get devuelve el valor de key.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set guarda value en key.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	s.sets++
	return nil
}

// Sets cantidad de escrituras realizadas.
func (s *KVStore) Sets() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sets
}
