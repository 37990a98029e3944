package cart

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/Carrito-api/internal/domain"
	"github.com/jhoicas/Carrito-api/internal/domain/entity"
)

// StorageKey clave fija bajo la que se guarda el carrito.
const StorageKey = "@RocketShoes:cart"

// EncodeEntries serializa el carrito como arreglo JSON conservando el orden.
func EncodeEntries(entries []entity.CartEntry) (string, error) {
	if entries == nil {
		entries = []entity.CartEntry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(b), nil
}

// DecodeEntries lee el valor guardado. Vacío equivale a carrito vacío.
// Un valor ilegible, con ids repetidos o cantidades < 1 devuelve domain.ErrCorruptCart.
func DecodeEntries(raw string) ([]entity.CartEntry, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return []entity.CartEntry{}, nil
	}
	var entries []entity.CartEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptCart, err)
	}
	seen := make(map[int64]struct{}, len(entries))
	for _, e := range entries {
		if e.Amount < 1 {
			return nil, fmt.Errorf("%w: producto %d con cantidad %d", domain.ErrCorruptCart, e.ID, e.Amount)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("%w: producto %d repetido", domain.ErrCorruptCart, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	if entries == nil {
		entries = []entity.CartEntry{}
	}
	return entries, nil
}
