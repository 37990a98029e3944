package repository

import (
	"context"

	"github.com/jhoicas/Carrito-api/internal/domain/entity"
)

// StockRepository puerto para consultar el stock disponible de un producto.
// Devuelve domain.ErrNotFound si el producto no tiene registro de stock.
type StockRepository interface {
	GetByProductID(ctx context.Context, productID int64) (*entity.Stock, error)
}
