package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cordeleria-api/internal/application/zone"
	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/internal/domain/inventory"
	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
	"github.com/jhoicas/Cordeleria-api/pkg/metrics"
	"github.com/shopspring/decimal"
)

// ConsumeRequest pedido de consumo de materia prima.
type ConsumeRequest struct {
	MaterialID      string
	Quantity        decimal.Decimal
	ZonePriority    []entity.ZoneKind // vacío = prioridad por defecto del motor
	PreferredZoneID string            // se escanea antes que la prioridad por tipo
	Reference       string
	Note            string
	UserID          string
}

// Posting salida registrada contra un lote.
type Posting struct {
	EntryID    int64
	ZoneID     string
	LotEntryID int64
	Quantity   decimal.Decimal // negativa
}

// ConsumeResult detalle de un consumo FIFO.
type ConsumeResult struct {
	MaterialID string
	Quantity   decimal.Decimal
	Postings   []Posting
}

// ConsumptionEngine motor de consumo FIFO de materia prima por prioridad de zonas.
type ConsumptionEngine struct {
	priority   []entity.ZoneKind
	maxEntries int
	metrics    *metrics.CoreMetrics
}

// NewConsumptionEngine construye el motor. priority vacío = PRODUCTION, RECEPTION.
// maxEntries > 0 limita el kardex escaneado por zona.
func NewConsumptionEngine(priority []entity.ZoneKind, maxEntries int, m *metrics.CoreMetrics) *ConsumptionEngine {
	if len(priority) == 0 {
		priority = entity.DefaultZonePriority
	}
	return &ConsumptionEngine{priority: priority, maxEntries: maxEntries, metrics: m}
}

// ConsumeInTx consume req.Quantity dentro de la transacción del llamador.
//
// Recorre la zona preferida (si la hay) y luego los tipos de zona en orden de prioridad;
// dentro de cada tipo las zonas por nombre, y en cada zona los lotes más antiguos primero.
// Las tomas se calculan antes de escribir: si el stock no alcanza se devuelve
// INSUFFICIENT_STOCK sin registrar nada.
func (e *ConsumptionEngine) ConsumeInTx(ctx context.Context, uow repository.UnitOfWork, req ConsumeRequest) (*ConsumeResult, error) {
	if req.MaterialID == "" || !domain.IsPositive(req.Quantity) {
		return nil, domain.Newf(domain.KindInvalidInput, "material y cantidad positiva requeridos")
	}
	priority := req.ZonePriority
	if len(priority) == 0 {
		priority = e.priority
	}
	for _, kind := range priority {
		if !kind.IsValid() || !(&entity.Zone{Kind: kind}).Accepts(entity.ItemKindMaterial) {
			return nil, domain.Newf(domain.KindInvalidInput, "tipo de zona %q no válido para materia prima", kind)
		}
	}
	exists, err := uow.Catalog.MaterialExists(ctx, req.MaterialID)
	if err != nil {
		return nil, fmt.Errorf("material exists: %w", err)
	}
	if !exists {
		return nil, domain.Newf(domain.KindNotFound, "material %s no encontrado", req.MaterialID)
	}
	if err := uow.Ledger.LockItem(ctx, entity.ItemKindMaterial, req.MaterialID); err != nil {
		return nil, fmt.Errorf("lock material: %w", err)
	}

	alloc := inventory.NewAllocator(req.Quantity)
	visited := map[string]bool{}

	if req.PreferredZoneID != "" {
		z, err := zone.RequireZone(ctx, uow.Zones, req.PreferredZoneID, entity.ItemKindMaterial)
		if err != nil {
			return nil, err
		}
		visited[z.ID] = true
		lots, err := LotsOldestFirst(ctx, uow.Ledger, entity.ItemKindMaterial, req.MaterialID, z.ID, e.maxEntries)
		if err != nil {
			return nil, err
		}
		alloc.Take(lots)
	}

	for _, kind := range priority {
		if alloc.Satisfied() {
			break
		}
		zones, err := uow.Zones.ListByKind(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("list zones %s: %w", kind, err)
		}
		for _, z := range zones {
			if alloc.Satisfied() {
				break
			}
			if visited[z.ID] {
				continue
			}
			visited[z.ID] = true
			lots, err := LotsOldestFirst(ctx, uow.Ledger, entity.ItemKindMaterial, req.MaterialID, z.ID, e.maxEntries)
			if err != nil {
				return nil, err
			}
			alloc.Take(lots)
		}
	}

	if !alloc.Satisfied() {
		return nil, domain.Newf(domain.KindInsufficientStock,
			"material %s: faltan %s de %s solicitados", req.MaterialID, alloc.Remaining().String(), req.Quantity.String())
	}

	result := &ConsumeResult{MaterialID: req.MaterialID, Quantity: req.Quantity}
	for _, d := range alloc.Draws() {
		lotID := d.Lot.EntryID
		entryID, err := Post(ctx, uow.Ledger, PostInput{
			ItemKind:      entity.ItemKindMaterial,
			ItemID:        req.MaterialID,
			ZoneID:        d.Lot.ZoneID,
			Quantity:      d.Quantity.Neg(),
			Note:          req.Note,
			Reference:     req.Reference,
			SourceEntryID: &lotID,
			UserID:        req.UserID,
		})
		if err != nil {
			return nil, err
		}
		result.Postings = append(result.Postings, Posting{
			EntryID:    entryID,
			ZoneID:     d.Lot.ZoneID,
			LotEntryID: lotID,
			Quantity:   d.Quantity.Neg(),
		})
	}
	e.metrics.AddLotsDrawn(len(result.Postings))
	return result, nil
}

// ParseZonePriority convierte la prioridad configurada (p. ej. "PRODUCTION","RECEPTION")
// validando que cada tipo pueda contener materia prima.
func ParseZonePriority(values []string) ([]entity.ZoneKind, error) {
	out := make([]entity.ZoneKind, 0, len(values))
	seen := map[entity.ZoneKind]bool{}
	for _, v := range values {
		kind := entity.ZoneKind(v)
		if !kind.IsValid() || !(&entity.Zone{Kind: kind}).Accepts(entity.ItemKindMaterial) {
			return nil, domain.Newf(domain.KindInvalidInput, "tipo de zona %q no válido para materia prima", v)
		}
		if seen[kind] {
			continue
		}
		seen[kind] = true
		out = append(out, kind)
	}
	return out, nil
}
