package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Carrito-api/internal/domain"
	"github.com/jhoicas/Carrito-api/internal/domain/entity"
	"github.com/jhoicas/Carrito-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetByProductID obtiene el stock disponible de un producto.
func (r *StockRepo) GetByProductID(ctx context.Context, productID int64) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(ctx, `SELECT id, amount FROM stock WHERE id = $1`, productID).Scan(&s.ProductID, &s.Amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Upsert fija el stock de un producto (usado por el seed del catálogo).
func (r *StockRepo) Upsert(ctx context.Context, s entity.Stock) error {
	query := `
		INSERT INTO stock (id, amount)
		VALUES ($1, $2)
		ON CONFLICT (id)
		DO UPDATE SET amount = EXCLUDED.amount`
	if _, err := r.q.Exec(ctx, query, s.ProductID, s.Amount); err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
