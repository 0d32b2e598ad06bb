package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea de pedido.
type OrderLineRequest struct {
	ProductID      string          `json:"product_id" validate:"required,max=64"`
	PresentationID string          `json:"presentation_id,omitempty" validate:"max=64"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	CustomerID string             `json:"customer_id" validate:"required,max=64"`
	Lines      []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// UpdateOrderLineRequest body para PATCH /api/order-lines/:id.
type UpdateOrderLineRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// OrderLineResponse línea con su estado de entrega.
type OrderLineResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	PresentationID  string          `json:"presentation_id,omitempty"`
	OrderedQuantity decimal.Decimal `json:"ordered_quantity"`
	Delivered       decimal.Decimal `json:"delivered"`
	Outstanding     decimal.Decimal `json:"outstanding"`
	State           string          `json:"state"`
}

// OrderResponse pedido con sus líneas.
type OrderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	Status     string              `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	Lines      []OrderLineResponse `json:"lines"`
}
