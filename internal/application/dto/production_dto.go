package dto

import "github.com/shopspring/decimal"

// MaterialDrawRequest material y cantidad a consumir (lista manual).
type MaterialDrawRequest struct {
	MaterialID string          `json:"material_id" validate:"required,max=64"`
	Quantity   decimal.Decimal `json:"quantity"`
	ZoneHint   string          `json:"zone_hint,omitempty" validate:"omitempty,max=64"`
}

// RegisterProductionRequest body para POST /api/production.
type RegisterProductionRequest struct {
	ProductID       string                `json:"product_id" validate:"required,max=64"`
	Quantity        decimal.Decimal       `json:"quantity"`
	WarehouseZoneID string                `json:"warehouse_zone_id" validate:"required,max=64"`
	Materials       []MaterialDrawRequest `json:"materials,omitempty" validate:"omitempty,dive"`
	ZonePriority    []string              `json:"zone_priority,omitempty" validate:"omitempty,dive,oneof=RECEPTION PRODUCTION SCRAP"`
	Note            string                `json:"note,omitempty" validate:"max=500"`
}

// ConsumptionResponse consumo FIFO de un material.
type ConsumptionResponse struct {
	MaterialID string            `json:"material_id"`
	Quantity   decimal.Decimal   `json:"quantity"`
	Postings   []PostingResponse `json:"postings"`
}

// ProductionResponse respuesta de POST /api/production.
type ProductionResponse struct {
	TransactionID  string                `json:"transaction_id"`
	ProductEntryID int64                 `json:"product_entry_id"`
	Consumptions   []ConsumptionResponse `json:"consumptions"`
}
