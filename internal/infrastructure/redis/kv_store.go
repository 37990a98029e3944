// Package redis implementa repository.KeyValueStore sobre Redis (go-redis/v9).
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Carrito-api/internal/domain/repository"
)

// Commands subconjunto de *goredis.Client que usa KVStore.
type Commands interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
}

var _ repository.KeyValueStore = (*KVStore)(nil)

// KVStore guarda cada clave como un string de Redis. ttl 0 = sin vencimiento.
type KVStore struct {
	rdb Commands
	ttl time.Duration
}

// NewKVStore construye el adaptador.
func NewKVStore(rdb Commands, ttl time.Duration) *KVStore {
	return &KVStore{rdb: rdb, ttl: ttl}
}

// NewClient abre el cliente y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr, Password: password, DB: db})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return rdb, nil
}

// Get lee key. goredis.Nil = clave ausente.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return v, true, nil
}

// Set guarda value renovando el vencimiento.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
