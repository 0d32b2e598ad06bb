package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/internal/domain/inventory"
	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// PostInput asiento a registrar en el kardex.
type PostInput struct {
	ItemKind      entity.ItemKind
	ItemID        string
	ZoneID        string
	Quantity      decimal.Decimal
	Note          string
	Reference     string
	SourceEntryID *int64
	UserID        string
}

// Post inserta un asiento firmado. No valida saldo: esa regla la aplica quien llama
// (motor FIFO, traslados) dentro de su transacción.
func Post(ctx context.Context, ledger repository.StockLedgerRepository, in PostInput) (int64, error) {
	if domain.IsNegligible(in.Quantity) {
		return 0, domain.Newf(domain.KindInvalidInput, "cantidad %s nula o por debajo de la tolerancia", in.Quantity.String())
	}
	entry := &entity.StockEntry{
		ItemKind:      in.ItemKind,
		ItemID:        in.ItemID,
		ZoneID:        in.ZoneID,
		Quantity:      in.Quantity,
		Note:          in.Note,
		Reference:     in.Reference,
		SourceEntryID: in.SourceEntryID,
		CreatedBy:     in.UserID,
	}
	if err := ledger.Append(ctx, entry); err != nil {
		return 0, fmt.Errorf("post stock entry: %w", err)
	}
	return entry.ID, nil
}

// LotsOldestFirst lotes vivos del par (ítem, zona) en orden FIFO.
// maxEntries > 0 limita el tamaño del kardex que se está dispuesto a escanear.
func LotsOldestFirst(ctx context.Context, ledger repository.StockLedgerRepository, kind entity.ItemKind, itemID, zoneID string, maxEntries int) ([]entity.Lot, error) {
	if maxEntries > 0 {
		n, err := ledger.CountEntries(ctx, kind, itemID, zoneID)
		if err != nil {
			return nil, fmt.Errorf("count stock entries: %w", err)
		}
		if n > maxEntries {
			return nil, fmt.Errorf("kardex de %s en zona %s excede el límite de escaneo (%d > %d)", itemID, zoneID, n, maxEntries)
		}
	}
	entries, err := ledger.ListEntries(ctx, kind, itemID, zoneID)
	if err != nil {
		return nil, fmt.Errorf("list stock entries: %w", err)
	}
	return inventory.OpenLots(entries), nil
}

// LedgerService consultas del kardex fuera de transacción.
type LedgerService struct {
	ledger     repository.StockLedgerRepository
	zones      repository.ZoneRepository
	maxEntries int
}

// NewLedgerService construye el servicio.
func NewLedgerService(ledger repository.StockLedgerRepository, zones repository.ZoneRepository, maxEntries int) *LedgerService {
	return &LedgerService{ledger: ledger, zones: zones, maxEntries: maxEntries}
}

// Balance saldo del par (ítem, zona).
func (s *LedgerService) Balance(ctx context.Context, kind entity.ItemKind, itemID, zoneID string) (decimal.Decimal, error) {
	if err := s.checkPair(ctx, kind, itemID, zoneID); err != nil {
		return decimal.Zero, err
	}
	return s.ledger.Balance(ctx, kind, itemID, zoneID)
}

// LotsOldestFirst lotes vivos del par en orden FIFO.
func (s *LedgerService) LotsOldestFirst(ctx context.Context, kind entity.ItemKind, itemID, zoneID string) ([]entity.Lot, error) {
	if err := s.checkPair(ctx, kind, itemID, zoneID); err != nil {
		return nil, err
	}
	return LotsOldestFirst(ctx, s.ledger, kind, itemID, zoneID, s.maxEntries)
}

// Entries historial del par.
func (s *LedgerService) Entries(ctx context.Context, kind entity.ItemKind, itemID, zoneID string) ([]*entity.StockEntry, error) {
	if err := s.checkPair(ctx, kind, itemID, zoneID); err != nil {
		return nil, err
	}
	return s.ledger.ListEntries(ctx, kind, itemID, zoneID)
}

func (s *LedgerService) checkPair(ctx context.Context, kind entity.ItemKind, itemID, zoneID string) error {
	if !kind.IsValid() || itemID == "" {
		return domain.Newf(domain.KindInvalidInput, "tipo de ítem e ítem requeridos")
	}
	z, err := s.zones.GetByID(ctx, zoneID)
	if err != nil {
		return fmt.Errorf("get zone: %w", err)
	}
	if z == nil {
		return domain.Newf(domain.KindNotFound, "zona %s no encontrada", zoneID)
	}
	return nil
}
