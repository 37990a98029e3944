package dto

import (
	"encoding/json"

	"github.com/jhoicas/Carrito-api/internal/domain/entity"
)

// ProductResponse producto en el formato del json-server (precio numérico).
type ProductResponse struct {
	ID    int64       `json:"id"`
	Title string      `json:"title"`
	Price json.Number `json:"price"`
	Image string      `json:"image"`
}

// StockResponse stock en el formato del json-server.
type StockResponse struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

// NewProductResponse convierte la entidad.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:    p.ID,
		Title: p.Title,
		Price: json.Number(p.Price.String()),
		Image: p.Image,
	}
}
