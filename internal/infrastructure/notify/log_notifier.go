// Package notify entrega los mensajes de error del carrito fuera del proceso de la petición.
package notify

import (
	"github.com/jhoicas/Carrito-api/internal/application/cart"
	"github.com/jhoicas/Carrito-api/pkg/logger"
)

var _ cart.Notifier = (*LogNotifier)(nil)

// LogNotifier registra cada mensaje como warning estructurado.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log.Component("cart_notifier")}
}

func (n *LogNotifier) Error(message string) {
	n.log.Warn().Str("notification", message).Msg("notificación al comprador")
}
