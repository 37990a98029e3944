package repository

import (
	"context"

	"github.com/jhoicas/Carrito-api/internal/domain/entity"
)

// ProductRepository puerto de consulta del catálogo. GetByID devuelve domain.ErrNotFound si no existe.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
}
