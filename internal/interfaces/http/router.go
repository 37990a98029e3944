package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Carrito-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Cart    *CartHandler
	Session SessionConfig
	// Catalog se monta solo cuando no es nil (catálogo servido desde PostgreSQL).
	Catalog *CatalogDeps
}

// CatalogDeps puertos que sirven las rutas compatibles con el json-server.
type CatalogDeps struct {
	Stock    repository.StockRepository
	Products repository.ProductRepository
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Catalog != nil {
		catalogHandler := NewCatalogHandler(deps.Catalog.Stock, deps.Catalog.Products)
		app.Get("/stock/:id", catalogHandler.GetStock)
		app.Get("/products", catalogHandler.ListProducts)
		app.Get("/products/:id", catalogHandler.GetProduct)
	}

	api := app.Group("/api")

	// Sesión de invitado (público)
	sessionHandler := NewSessionHandler(deps.Session, deps.Cart.log)
	api.Post("/session", sessionHandler.Create)

	// Carrito (protegido)
	cartGroup := api.Group("/cart", AuthMiddleware(deps.Session.Secret))
	cartGroup.Get("/", deps.Cart.Get)
	cartGroup.Get("/quote.pdf", deps.Cart.Quote)
	cartGroup.Get("/events", deps.Cart.Events)
	cartGroup.Post("/products/:productId", deps.Cart.AddProduct)
	cartGroup.Put("/products/:productId", deps.Cart.UpdateProductAmount)
	cartGroup.Delete("/products/:productId", deps.Cart.RemoveProduct)
}
