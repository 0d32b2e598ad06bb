package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpsertPriceRequest body para PUT /api/prices.
type UpsertPriceRequest struct {
	CustomerID string          `json:"customer_id" validate:"required,max=64"`
	ProductID  string          `json:"product_id" validate:"required,max=64"`
	Price      decimal.Decimal `json:"price"`
	Currency   string          `json:"currency,omitempty" validate:"omitempty,len=3"`
	ValidFrom  string          `json:"valid_from" validate:"required,datetime=2006-01-02"`
}

// PriceQuery parámetros de GET /api/prices/effective.
type PriceQuery struct {
	CustomerID string `query:"customer_id" validate:"required"`
	ProductID  string `query:"product_id" validate:"required"`
	Date       string `query:"date" validate:"omitempty,datetime=2006-01-02"`
}

// PriceIntervalResponse intervalo de precio; valid_to vacío = abierto.
type PriceIntervalResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	ProductID  string          `json:"product_id"`
	Price      decimal.Decimal `json:"price"`
	Currency   string          `json:"currency"`
	ValidFrom  string          `json:"valid_from"`
	ValidTo    *string         `json:"valid_to"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// UpsertPriceResponse caso aplicado y el intervalo vigente resultante.
type UpsertPriceResponse struct {
	Action   string                 `json:"action"`
	Interval *PriceIntervalResponse `json:"interval,omitempty"`
}
