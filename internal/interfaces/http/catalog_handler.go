package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Carrito-api/internal/application/dto"
	"github.com/jhoicas/Carrito-api/internal/domain"
	"github.com/jhoicas/Carrito-api/internal/domain/repository"
)

// CatalogHandler expone el catálogo con las mismas rutas y formato del json-server.
type CatalogHandler struct {
	stock    repository.StockRepository
	products repository.ProductRepository
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(stock repository.StockRepository, products repository.ProductRepository) *CatalogHandler {
	return &CatalogHandler{stock: stock, products: products}
}

// GetStock godoc
// @Summary      Stock disponible de un producto
// @Tags         catalog
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /stock/{id} [get]
func (h *CatalogHandler) GetStock(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	s, err := h.stock.GetByProductID(c.UserContext(), id)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(dto.StockResponse{ID: s.ProductID, Amount: s.Amount})
}

// GetProduct godoc
// @Summary      Obtener producto por ID
// @Tags         catalog
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	p, err := h.products.GetByID(c.UserContext(), id)
	if err != nil {
		return catalogError(c, err)
	}
	return c.JSON(dto.NewProductResponse(p))
}

// ListProducts godoc
// @Summary      Listar productos
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	list, err := h.products.List(c.UserContext())
	if err != nil {
		return catalogError(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewProductResponse(p))
	}
	return c.JSON(out)
}

func catalogError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no encontrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
