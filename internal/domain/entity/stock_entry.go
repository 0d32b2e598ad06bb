package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntry movimiento firmado del kardex (positivo entrada, negativo salida), en kg.
// Es inmutable: las correcciones se registran como nuevos asientos compensatorios.
type StockEntry struct {
	ID            int64
	ItemKind      ItemKind
	ItemID        string
	ZoneID        string
	Quantity      decimal.Decimal
	Note          string
	Reference     string // id de la transacción de negocio (producción, entrega, traslado)
	SourceEntryID *int64 // lote consumido, sólo en salidas FIFO
	CreatedAt     time.Time
	CreatedBy     string
}

// Lot lote agotable: un asiento positivo con su cantidad remanente.
type Lot struct {
	EntryID   int64
	ZoneID    string
	Quantity  decimal.Decimal
	Timestamp time.Time
}
