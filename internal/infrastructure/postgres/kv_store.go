package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Carrito-api/internal/domain/repository"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

// KVStore almacenamiento clave/valor sobre la tabla cart_storage.
type KVStore struct {
	q Querier
}

// NewKVStore construye el adaptador. Pasar pool o tx (Querier).
func NewKVStore(q Querier) *KVStore {
	return &KVStore{q: q}
}

// Get lee el valor de key. Sin fila = ok false.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.q.QueryRow(ctx, `SELECT value FROM cart_storage WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get cart_storage: %w", err)
	}
	return value, true, nil
}

// Set inserta o reemplaza el valor de key.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO cart_storage (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := s.q.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("upsert cart_storage: %w", err)
	}
	return nil
}
