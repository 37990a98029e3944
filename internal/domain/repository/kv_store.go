package repository

import "context"

// KeyValueStore almacenamiento de strings por clave (equivalente al localStorage del navegador).
// Get devuelve ok=false cuando la clave no existe.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Namespace antepone prefix a todas las claves de store.
func Namespace(store KeyValueStore, prefix string) KeyValueStore {
	return namespaced{store: store, prefix: prefix}
}

type namespaced struct {
	store  KeyValueStore
	prefix string
}

func (n namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.store.Get(ctx, n.prefix+key)
}

func (n namespaced) Set(ctx context.Context, key, value string) error {
	return n.store.Set(ctx, n.prefix+key, value)
}
