package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Carrito-api/internal/infrastructure/redis"
)

// fakeRedis responde con los tipos de resultado de go-redis sin servidor.
type fakeRedis struct {
	data    map[string]string
	lastTTL time.Duration
	err     error
}

func (f *fakeRedis) Get(ctx context.Context, key string) *goredis.StringCmd {
	if f.err != nil {
		return goredis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd {
	if f.err != nil {
		return goredis.NewStatusResult("", f.err)
	}
	f.data[key] = value.(string)
	f.lastTTL = expiration
	return goredis.NewStatusResult("OK", nil)
}

func TestKVStore_GetSet(t *testing.T) {
	ctx := context.Background()
	fake := &fakeRedis{data: map[string]string{}}
	s := redis.NewKVStore(fake, 24*time.Hour)

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "redis.Nil es clave ausente")

	require.NoError(t, s.Set(ctx, "k", "[]"))
	assert.Equal(t, 24*time.Hour, fake.lastTTL)

	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestKVStore_Errores(t *testing.T) {
	boom := errors.New("connection refused")
	s := redis.NewKVStore(&fakeRedis{data: map[string]string{}, err: boom}, 0)

	_, _, err := s.Get(context.Background(), "k")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, s.Set(context.Background(), "k", "v"), boom)
}
