package dto

import "github.com/shopspring/decimal"

// CompositionRowRequest fila de receta.
type CompositionRowRequest struct {
	MaterialID string          `json:"material_id" validate:"required,max=64"`
	ZoneHint   string          `json:"zone_hint,omitempty" validate:"omitempty,max=64"`
	Percentage decimal.Decimal `json:"percentage"`
}

// ReplaceCompositionRequest body para PUT /api/recipes/:productId.
type ReplaceCompositionRequest struct {
	Rows []CompositionRowRequest `json:"rows" validate:"dive"`
}

// CompositionRowResponse fila de receta.
type CompositionRowResponse struct {
	MaterialID string          `json:"material_id"`
	ZoneHint   string          `json:"zone_hint,omitempty"`
	Percentage decimal.Decimal `json:"percentage"`
}

// CompositionResponse receta completa de un producto.
type CompositionResponse struct {
	ProductID string                   `json:"product_id"`
	Total     decimal.Decimal          `json:"total_percentage"`
	Rows      []CompositionRowResponse `json:"rows"`
}

// PlanConsumptionRequest body para POST /api/recipes/:productId/plan.
type PlanConsumptionRequest struct {
	Quantity  decimal.Decimal       `json:"quantity"`
	Materials []MaterialDrawRequest `json:"materials,omitempty" validate:"omitempty,dive"`
}

// MaterialDrawResponse cantidad planificada de un material.
type MaterialDrawResponse struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	ZoneHint   string          `json:"zone_hint,omitempty"`
}

// PlanConsumptionResponse plan de consumo.
type PlanConsumptionResponse struct {
	ProductID string                 `json:"product_id"`
	Quantity  decimal.Decimal        `json:"quantity"`
	Total     decimal.Decimal        `json:"total"`
	Materials []MaterialDrawResponse `json:"materials"`
}
