package repository

import (
	"context"

	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockLedgerRepository kardex de sólo inserción por (tipo de ítem, ítem, zona).
type StockLedgerRepository interface {
	// Append inserta el asiento y le asigna ID (y CreatedAt si viene vacío).
	Append(ctx context.Context, entry *entity.StockEntry) error
	Balance(ctx context.Context, kind entity.ItemKind, itemID, zoneID string) (decimal.Decimal, error)
	// ListEntries devuelve los asientos del par ordenados por fecha e id ascendente.
	ListEntries(ctx context.Context, kind entity.ItemKind, itemID, zoneID string) ([]*entity.StockEntry, error)
	// CountEntries cuenta los asientos del par (límite de escaneo FIFO).
	CountEntries(ctx context.Context, kind entity.ItemKind, itemID, zoneID string) (int, error)
	// LockItem serializa consumos concurrentes del mismo ítem hasta el fin de la transacción.
	LockItem(ctx context.Context, kind entity.ItemKind, itemID string) error
}
