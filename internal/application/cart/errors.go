package cart

import (
	"errors"
	"fmt"
)

// Op operación del carrito que produjo un error.
type Op string

const (
	OpAdd    Op = "add"
	OpRemove Op = "remove"
	OpUpdate Op = "update"
)

// Kind clasifica el rechazo: regla de negocio, integridad o falla de infraestructura.
type Kind int

const (
	KindFault      Kind = iota // falla de consulta, decodificación o almacenamiento
	KindOutOfStock             // la cantidad pedida supera el stock
	KindNotInCart              // el producto no está en el carrito
)

func (k Kind) String() string {
	switch k {
	case KindOutOfStock:
		return "out_of_stock"
	case KindNotInCart:
		return "not_in_cart"
	default:
		return "fault"
	}
}

var (
	ErrOutOfStock = errors.New("cantidad solicitada fuera de stock")
	ErrNotInCart  = errors.New("el producto no está en el carrito")
)

// Mensajes mostrados al usuario (texto literal de la tienda).
const (
	MsgOutOfStock   = "Quantidade solicitada fora de estoque"
	MsgAddFailed    = "Erro na adição do produto"
	MsgRemoveFailed = "Erro na remoção do produto"
	MsgUpdateFailed = "Erro na alteração de quantidade do produto"
)

// OpError resultado fallido de una operación. Err conserva la causa original.
type OpError struct {
	Op        Op
	Kind      Kind
	ProductID int64
	Err       error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("cart %s producto %d (%s): %v", e.Op, e.ProductID, e.Kind, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Message texto para el usuario según operación y tipo de error.
func (e *OpError) Message() string {
	if e.Kind == KindOutOfStock {
		return MsgOutOfStock
	}
	switch e.Op {
	case OpRemove:
		return MsgRemoveFailed
	case OpUpdate:
		return MsgUpdateFailed
	default:
		return MsgAddFailed
	}
}

func outOfStock(op Op, productID int64) *OpError {
	return &OpError{Op: op, Kind: KindOutOfStock, ProductID: productID, Err: ErrOutOfStock}
}

func notInCart(op Op, productID int64) *OpError {
	return &OpError{Op: op, Kind: KindNotInCart, ProductID: productID, Err: ErrNotInCart}
}

func fault(op Op, productID int64, err error) *OpError {
	return &OpError{Op: op, Kind: KindFault, ProductID: productID, Err: err}
}

// Notifier destino de las notificaciones de error (toast, log, respuesta HTTP).
type Notifier interface {
	Error(message string)
}

// Message devuelve el texto para el usuario de err. ok=false si err no es un *OpError.
func Message(err error) (string, bool) {
	var opErr *OpError
	if !errors.As(err, &opErr) {
		return "", false
	}
	return opErr.Message(), true
}

// Notify envía a n el mensaje de err. Devuelve true si hubo notificación.
func Notify(n Notifier, err error) bool {
	if err == nil || n == nil {
		return false
	}
	msg, ok := Message(err)
	if !ok {
		return false
	}
	n.Error(msg)
	return true
}
