package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Delivery cabecera de una entrega parcial o total de un pedido.
type Delivery struct {
	ID         string
	OrderID    string
	CustomerID string
	Date       time.Time // fecha efectiva (define el precio vigente)
	ZoneID     string    // almacén de despacho, vacío si no descuenta stock
	Note       string
	CreatedAt  time.Time
	CreatedBy  string
}

// DeliveryLine cantidad entregada contra una línea de pedido, con su precio unitario.
type DeliveryLine struct {
	ID          string
	DeliveryID  string
	OrderLineID string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Currency    string
}

// Amount importe de la línea.
func (l *DeliveryLine) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// CurrencyAmount importe agregado por moneda (cuentas por cobrar).
type CurrencyAmount struct {
	Currency string
	Amount   decimal.Decimal
}
