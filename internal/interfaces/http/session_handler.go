package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Carrito-api/internal/application/dto"
	"github.com/jhoicas/Carrito-api/pkg/jwt"
	"github.com/jhoicas/Carrito-api/pkg/logger"
)

// SessionConfig parámetros del token de invitado.
type SessionConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// SessionHandler emite sesiones de invitado.
type SessionHandler struct {
	cfg SessionConfig
	log *logger.Logger
}

// NewSessionHandler construye el handler.
func NewSessionHandler(cfg SessionConfig, log *logger.Logger) *SessionHandler {
	return &SessionHandler{cfg: cfg, log: log}
}

// Create godoc
// @Summary      Crear sesión de invitado
// @Tags         session
// @Produce      json
// @Success      201  {object}  dto.SessionResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/session [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	sessionID := uuid.NewString()
	token, err := jwt.Generate(h.cfg.Secret, sessionID, h.cfg.Issuer, h.cfg.ExpMinutes)
	if err != nil {
		h.log.Error().Err(err).Msg("generar token de sesión")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo crear la sesión"})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SessionResponse{
		Token:     token,
		SessionID: sessionID,
		ExpiresIn: h.cfg.ExpMinutes * 60,
	})
}
