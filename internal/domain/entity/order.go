package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido. DELIVERED es un campo derivado que se recalcula tras cada entrega.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusDelivered = "DELIVERED"
)

// LineState estado derivado (no persistido) de una línea de pedido.
type LineState string

const (
	LineStateOpen      LineState = "OPEN"
	LineStateFulfilled LineState = "FULFILLED"
)

// Order cabecera de pedido de producto terminado.
type Order struct {
	ID         string
	CustomerID string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderLine línea de pedido; OrderedQuantity nunca baja de lo ya entregado.
type OrderLine struct {
	ID              string
	OrderID         string
	ProductID       string
	PresentationID  string
	OrderedQuantity decimal.Decimal
}
