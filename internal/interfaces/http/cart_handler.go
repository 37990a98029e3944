package http

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/jhoicas/Carrito-api/internal/application/cart"
	"github.com/jhoicas/Carrito-api/internal/application/dto"
	"github.com/jhoicas/Carrito-api/pkg/logger"
)

const sseKeepAlive = 15 * time.Second

// CartHandler maneja el carrito de la sesión autenticada.
type CartHandler struct {
	sessions *cart.Sessions
	quotes   cart.QuoteGenerator
	notifier cart.Notifier
	log      *logger.Logger

	done      chan struct{}
	closeOnce sync.Once
}

// NewCartHandler construye el handler. notifier puede ser nil.
func NewCartHandler(sessions *cart.Sessions, quotes cart.QuoteGenerator, notifier cart.Notifier, log *logger.Logger) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		quotes:   quotes,
		notifier: notifier,
		log:      log.Component("cart_handler"),
		done:     make(chan struct{}),
	}
}

// Close corta los streams de eventos abiertos (apagado del servidor).
func (h *CartHandler) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Get godoc
// @Summary      Carrito actual
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	store, ok := h.store(c)
	if !ok {
		return nil
	}
	return c.JSON(dto.NewCartResponse(store.Snapshot()))
}

// AddProduct godoc
// @Summary      Agregar una unidad de un producto
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        productId  path  int  true  "ID del producto"
// @Success      200  {object}  dto.CartResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/cart/products/{productId} [post]
func (h *CartHandler) AddProduct(c *fiber.Ctx) error {
	productID, ok := productIDParam(c)
	if !ok {
		return nil
	}
	store, ok := h.store(c)
	if !ok {
		return nil
	}
	if err := store.AddProduct(c.UserContext(), productID); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.NewCartResponse(store.Snapshot()))
}

// UpdateProductAmount godoc
// @Summary      Fijar la cantidad de un producto del carrito
// @Description  amount <= 0 no modifica el carrito y responde 200.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  int                      true  "ID del producto"
// @Param        body       body  dto.UpdateAmountRequest  true  "Cantidad"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/cart/products/{productId} [put]
func (h *CartHandler) UpdateProductAmount(c *fiber.Ctx) error {
	productID, ok := productIDParam(c)
	if !ok {
		return nil
	}
	var in dto.UpdateAmountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	store, ok := h.store(c)
	if !ok {
		return nil
	}
	if err := store.UpdateProductAmount(c.UserContext(), cart.UpdateProductAmount{ProductID: productID, Amount: in.Amount}); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.NewCartResponse(store.Snapshot()))
}

// RemoveProduct godoc
// @Summary      Quitar un producto del carrito
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Param        productId  path  int  true  "ID del producto"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/products/{productId} [delete]
func (h *CartHandler) RemoveProduct(c *fiber.Ctx) error {
	productID, ok := productIDParam(c)
	if !ok {
		return nil
	}
	store, ok := h.store(c)
	if !ok {
		return nil
	}
	if err := store.RemoveProduct(productID); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.NewCartResponse(store.Snapshot()))
}

// Quote godoc
// @Summary      Cotización del carrito en PDF
// @Tags         cart
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/cart/quote.pdf [get]
func (h *CartHandler) Quote(c *fiber.Ctx) error {
	store, ok := h.store(c)
	if !ok {
		return nil
	}
	q := cart.NewQuote(GetSessionID(c), store.Snapshot(), time.Now())
	pdf, err := h.quotes.GenerateCartQuote(c.UserContext(), q)
	if err != nil {
		h.log.Error().Err(err).Str("session", q.Reference).Msg("generar cotización")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "QUOTE_FAILED", Message: "no se pudo generar la cotización"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="orcamento.pdf"`)
	return c.Send(pdf)
}

// Events godoc
// @Summary      Stream de instantáneas del carrito (Server-Sent Events)
// @Description  Envía el carrito actual al conectar y luego cada mutación aceptada (evento "cart").
// @Tags         cart
// @Security     Bearer
// @Produce      text/event-stream
// @Success      200
// @Router       /api/cart/events [get]
func (h *CartHandler) Events(c *fiber.Ctx) error {
	store, ok := h.store(c)
	if !ok {
		return nil
	}
	sessionID := GetSessionID(c)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	// c no es válido dentro del writer: fasthttp lo recicla al volver el handler.
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		updates := make(chan cart.Snapshot, 16)
		unsubscribe := store.Subscribe(func(s cart.Snapshot) {
			select {
			case updates <- s:
			default: // cliente lento: se descarta, Version permite detectar el salto
			}
		})
		defer unsubscribe()

		var gate versionGate
		initial := store.Snapshot()
		gate.accept(initial)
		if err := writeSnapshotEvent(w, initial); err != nil {
			return
		}

		ticker := time.NewTicker(sseKeepAlive)
		defer ticker.Stop()
		for {
			select {
			case s := <-updates:
				if !gate.accept(s) {
					continue
				}
				if err := writeSnapshotEvent(w, s); err != nil {
					h.log.Debug().Str("session", sessionID).Msg("cliente de eventos desconectado")
					return
				}
			case <-ticker.C:
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			case <-h.done:
				return
			}
		}
	}))
	return nil
}

// versionGate descarta instantáneas que no son más nuevas que la última enviada.
// Dos commits concurrentes pueden entregarse fuera de orden.
type versionGate struct {
	last uint64
	seen bool
}

func (g *versionGate) accept(s cart.Snapshot) bool {
	if g.seen && s.Version <= g.last {
		return false
	}
	g.last, g.seen = s.Version, true
	return true
}

func writeSnapshotEvent(w *bufio.Writer, s cart.Snapshot) error {
	data, err := json.Marshal(dto.NewCartResponse(s))
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "id: %d\nevent: cart\ndata: %s\n\n", s.Version, data); err != nil {
		return err
	}
	return w.Flush()
}

// store resuelve el carrito de la sesión. Con ok=false la respuesta de error ya está escrita.
func (h *CartHandler) store(c *fiber.Ctx) (*cart.Store, bool) {
	sessionID := GetSessionID(c)
	store, err := h.sessions.Get(c.UserContext(), sessionID)
	if err != nil {
		h.log.Error().Err(err).Str("session", sessionID).Msg("cargar carrito")
		_ = c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "CART_UNAVAILABLE", Message: "carrito no disponible"})
		return nil, false
	}
	return store, true
}

// fail traduce el error de la operación a HTTP y lo reenvía al notificador.
func (h *CartHandler) fail(c *fiber.Ctx, err error) error {
	cart.Notify(h.notifier, err)

	var opErr *cart.OpError
	if !errors.As(err, &opErr) {
		h.log.Error().Err(err).Msg("error inesperado del carrito")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	resp := dto.ErrorResponse{Message: opErr.Message()}
	status := fiber.StatusBadGateway
	switch opErr.Kind {
	case cart.KindOutOfStock:
		status, resp.Code = fiber.StatusConflict, "OUT_OF_STOCK"
	case cart.KindNotInCart:
		status, resp.Code = fiber.StatusNotFound, "NOT_IN_CART"
	default:
		resp.Code = "CART_OPERATION_FAILED"
		h.log.Warn().Err(err).Str("op", string(opErr.Op)).Int64("product_id", opErr.ProductID).Msg("operación del carrito fallida")
	}
	return c.Status(status).JSON(resp)
}

func productIDParam(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("productId"), 10, 64)
	if err != nil || id <= 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PRODUCT_ID", Message: "productId inválido"})
		return 0, false
	}
	return id, true
}
