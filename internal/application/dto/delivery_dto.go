package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryLineRequest cantidad a entregar contra una línea del pedido.
type DeliveryLineRequest struct {
	OrderLineID string           `json:"order_line_id" validate:"required,max=64"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	Currency    string           `json:"currency,omitempty" validate:"omitempty,len=3"`
}

// CreateDeliveryRequest body para POST /api/orders/:id/deliveries.
type CreateDeliveryRequest struct {
	Date   string                `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ZoneID string                `json:"zone_id,omitempty" validate:"omitempty,max=64"`
	Note   string                `json:"note,omitempty" validate:"max=500"`
	Lines  []DeliveryLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// DeliveryLineResponse línea entregada con su precio.
type DeliveryLineResponse struct {
	ID          string          `json:"id"`
	OrderLineID string          `json:"order_line_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Currency    string          `json:"currency"`
	Amount      decimal.Decimal `json:"amount"`
}

// DeliveryResponse entrega registrada.
type DeliveryResponse struct {
	ID          string                 `json:"id"`
	OrderID     string                 `json:"order_id"`
	CustomerID  string                 `json:"customer_id"`
	Date        time.Time              `json:"date"`
	ZoneID      string                 `json:"zone_id,omitempty"`
	Note        string                 `json:"note,omitempty"`
	OrderStatus string                 `json:"order_status,omitempty"`
	Lines       []DeliveryLineResponse `json:"lines"`
}

// ReceivableResponse importe adeudado en una moneda.
type ReceivableResponse struct {
	Currency string          `json:"currency"`
	Amount   decimal.Decimal `json:"amount"`
}

// ReceivablesResponse cuentas por cobrar del cliente.
type ReceivablesResponse struct {
	CustomerID string               `json:"customer_id"`
	Totals     []ReceivableResponse `json:"totals"`
}
