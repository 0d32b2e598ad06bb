package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind clasifica los errores de negocio esperados. El conjunto es cerrado: la capa HTTP
// hace un switch exhaustivo sobre estos valores.
type Kind string

const (
	KindNotFound           Kind = "NOT_FOUND"
	KindInvalidLine        Kind = "INVALID_LINE"
	KindAlreadyFulfilled   Kind = "ALREADY_FULFILLED"
	KindOverDelivery       Kind = "OVER_DELIVERY"
	KindNoEffectivePrice   Kind = "NO_EFFECTIVE_PRICE"
	KindInsufficientStock  Kind = "INSUFFICIENT_STOCK"
	KindInvalidComposition Kind = "INVALID_COMPOSITION"
	KindZoneRejected       Kind = "ZONE_REJECTED"
	KindInvalidInput       Kind = "INVALID_INPUT"
	KindConflict           Kind = "CONFLICT"
)

// Kinds devuelve todos los tipos de error de negocio, en orden estable.
func Kinds() []Kind {
	return []Kind{
		KindNotFound, KindInvalidLine, KindAlreadyFulfilled, KindOverDelivery,
		KindNoEffectivePrice, KindInsufficientStock, KindInvalidComposition,
		KindZoneRejected, KindInvalidInput, KindConflict,
	}
}

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidLine        = errors.New("la línea no pertenece al pedido")
	ErrAlreadyFulfilled   = errors.New("la línea ya fue entregada por completo")
	ErrOverDelivery       = errors.New("la cantidad supera el saldo pendiente")
	ErrNoEffectivePrice   = errors.New("no hay precio vigente")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidComposition = errors.New("composición inválida")
	ErrZoneRejected       = errors.New("la zona no admite el ítem")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

var sentinelByKind = map[Kind]error{
	KindNotFound:           ErrNotFound,
	KindInvalidLine:        ErrInvalidLine,
	KindAlreadyFulfilled:   ErrAlreadyFulfilled,
	KindOverDelivery:       ErrOverDelivery,
	KindNoEffectivePrice:   ErrNoEffectivePrice,
	KindInsufficientStock:  ErrInsufficientStock,
	KindInvalidComposition: ErrInvalidComposition,
	KindZoneRejected:       ErrZoneRejected,
	KindInvalidInput:       ErrInvalidInput,
	KindConflict:           ErrConflict,
}

// Error es un error de negocio con tipo estable y contexto para mostrar al usuario.
type Error struct {
	Kind    Kind
	Message string
	// Outstanding sólo se informa en OVER_DELIVERY.
	Outstanding *decimal.Decimal
}

// Newf construye un error de negocio con mensaje formateado.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// OverDelivery construye el error con el saldo pendiente adjunto.
func OverDelivery(lineID string, requested, outstanding decimal.Decimal) *Error {
	o := outstanding
	return &Error{
		Kind:        KindOverDelivery,
		Message:     fmt.Sprintf("línea %s: solicitado %s supera el pendiente %s", lineID, requested.String(), outstanding.String()),
		Outstanding: &o,
	}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap expone el sentinel del tipo para que errors.Is(err, ErrX) funcione.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return sentinelByKind[e.Kind]
}

// KindOf devuelve el tipo de negocio del error, o "" si es un error inesperado.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	for kind, sentinel := range sentinelByKind {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return ""
}

// KindLabel tipo de negocio de err como texto, "" si es inesperado (etiqueta de métricas).
func KindLabel(err error) string {
	return string(KindOf(err))
}

// IsBusiness indica si err pertenece a la taxonomía de errores esperados.
func IsBusiness(err error) bool {
	return KindOf(err) != ""
}
