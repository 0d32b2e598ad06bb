package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/stock/movements.
// RECEIPT: item_kind, item_id, zone_id. TRANSFER: from_zone_id y to_zone_id.
// CONSUME: item_id (material), zona preferida y prioridad opcionales.
type RegisterMovementRequest struct {
	Type         string          `json:"type" validate:"required,oneof=RECEIPT TRANSFER CONSUME"`
	ItemKind     string          `json:"item_kind" validate:"omitempty,oneof=MATERIAL PRODUCT"`
	ItemID       string          `json:"item_id" validate:"required,max=64"`
	ZoneID       string          `json:"zone_id,omitempty" validate:"omitempty,max=64"`
	FromZoneID   string          `json:"from_zone_id,omitempty" validate:"required_if=Type TRANSFER,max=64"`
	ToZoneID     string          `json:"to_zone_id,omitempty" validate:"required_if=Type TRANSFER,max=64"`
	Quantity     decimal.Decimal `json:"quantity"`
	ZonePriority []string        `json:"zone_priority,omitempty" validate:"omitempty,dive,oneof=RECEPTION PRODUCTION SCRAP"`
	Note         string          `json:"note,omitempty" validate:"max=500"`
}

// PostingResponse asiento generado por un movimiento.
type PostingResponse struct {
	EntryID    int64           `json:"entry_id"`
	ZoneID     string          `json:"zone_id"`
	LotEntryID int64           `json:"lot_entry_id,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// MovementResponse respuesta de POST /api/stock/movements.
type MovementResponse struct {
	TransactionID string            `json:"transaction_id"`
	Postings      []PostingResponse `json:"postings"`
}

// StockQuery parámetros de consulta de saldo, lotes e historial.
type StockQuery struct {
	ItemKind string `query:"item_kind" validate:"required,oneof=MATERIAL PRODUCT"`
	ItemID   string `query:"item_id" validate:"required"`
	ZoneID   string `query:"zone_id" validate:"required"`
}

// BalanceResponse saldo de un par (ítem, zona).
type BalanceResponse struct {
	ItemKind string          `json:"item_kind"`
	ItemID   string          `json:"item_id"`
	ZoneID   string          `json:"zone_id"`
	Balance  decimal.Decimal `json:"balance"`
}

// LotResponse lote vivo.
type LotResponse struct {
	EntryID   int64           `json:"entry_id"`
	ZoneID    string          `json:"zone_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Timestamp time.Time       `json:"timestamp"`
}

// StockEntryResponse asiento del kardex.
type StockEntryResponse struct {
	ID            int64           `json:"id"`
	ItemKind      string          `json:"item_kind"`
	ItemID        string          `json:"item_id"`
	ZoneID        string          `json:"zone_id"`
	Quantity      decimal.Decimal `json:"quantity"`
	Note          string          `json:"note,omitempty"`
	Reference     string          `json:"reference,omitempty"`
	SourceEntryID *int64          `json:"source_entry_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     string          `json:"created_by,omitempty"`
}

// StockEntriesResponse historial paginado.
type StockEntriesResponse struct {
	Page    PageResponse         `json:"page"`
	Entries []StockEntryResponse `json:"entries"`
}
