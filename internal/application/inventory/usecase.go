package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Cordeleria-api/internal/application/zone"
	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
	"github.com/jhoicas/Cordeleria-api/pkg/metrics"
	"github.com/shopspring/decimal"
)

// Tipos de movimiento manual soportados por RegisterMovement.
const (
	MovementTypeReceipt  = "RECEIPT"  // ingreso de materia prima o producto a una zona
	MovementTypeTransfer = "TRANSFER" // traslado entre zonas
	MovementTypeConsume  = "CONSUME"  // consumo FIFO de materia prima
)

// RegisterMovementUseCase registra movimientos de kardex de forma transaccional
// (ingresos, traslados y consumos FIFO) con Commit/Rollback por request.
type RegisterMovementUseCase struct {
	txRunner repository.TxRunner
	engine   *ConsumptionEngine
	metrics  *metrics.CoreMetrics
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner repository.TxRunner, engine *ConsumptionEngine, m *metrics.CoreMetrics) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, engine: engine, metrics: m}
}

// MovementInputDTO entrada para registrar un movimiento.
// RECEIPT: ItemKind, ItemID, ZoneID, Quantity.
// TRANSFER: ItemKind, ItemID, FromZoneID, ToZoneID, Quantity.
// CONSUME: ItemID (material), Quantity, ZonePriority y ZoneID (preferida) opcionales.
type MovementInputDTO struct {
	UserID       string
	Type         string
	ItemKind     entity.ItemKind
	ItemID       string
	ZoneID       string
	FromZoneID   string
	ToZoneID     string
	Quantity     decimal.Decimal
	ZonePriority []entity.ZoneKind
	Note         string
}

// MovementResult asientos generados por el movimiento.
type MovementResult struct {
	TransactionID string
	Postings      []Posting
}

// RegisterMovement valida la entrada y aplica el movimiento en una sola transacción.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (res *MovementResult, err error) {
	started := time.Now()
	defer func() { uc.metrics.Observe("movement_"+input.Type, started, err) }()

	if !domain.IsPositive(input.Quantity) || input.ItemID == "" {
		return nil, domain.Newf(domain.KindInvalidInput, "ítem y cantidad positiva requeridos")
	}
	txID := uuid.New().String()
	res = &MovementResult{TransactionID: txID}

	err = uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		switch input.Type {
		case MovementTypeReceipt:
			p, err := uc.doReceipt(ctx, uow, input, txID)
			if err != nil {
				return err
			}
			res.Postings = append(res.Postings, p)
			return nil
		case MovementTypeTransfer:
			ps, err := uc.doTransfer(ctx, uow, input, txID)
			if err != nil {
				return err
			}
			res.Postings = append(res.Postings, ps...)
			return nil
		case MovementTypeConsume:
			cr, err := uc.engine.ConsumeInTx(ctx, uow, ConsumeRequest{
				MaterialID:      input.ItemID,
				Quantity:        input.Quantity,
				ZonePriority:    input.ZonePriority,
				PreferredZoneID: input.ZoneID,
				Reference:       txID,
				Note:            input.Note,
				UserID:          input.UserID,
			})
			if err != nil {
				return err
			}
			res.Postings = append(res.Postings, cr.Postings...)
			return nil
		}
		return domain.Newf(domain.KindInvalidInput, "tipo de movimiento %q desconocido", input.Type)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (uc *RegisterMovementUseCase) checkItem(ctx context.Context, uow repository.UnitOfWork, kind entity.ItemKind, itemID string) error {
	var (
		exists bool
		err    error
	)
	switch kind {
	case entity.ItemKindMaterial:
		exists, err = uow.Catalog.MaterialExists(ctx, itemID)
	case entity.ItemKindProduct:
		exists, err = uow.Catalog.ProductExists(ctx, itemID)
	default:
		return domain.Newf(domain.KindInvalidInput, "tipo de ítem %q desconocido", kind)
	}
	if err != nil {
		return err
	}
	if !exists {
		return domain.Newf(domain.KindNotFound, "ítem %s no encontrado", itemID)
	}
	return nil
}

// doReceipt: valida zona e ítem, registra el lote positivo.
func (uc *RegisterMovementUseCase) doReceipt(ctx context.Context, uow repository.UnitOfWork, input MovementInputDTO, txID string) (Posting, error) {
	if err := uc.checkItem(ctx, uow, input.ItemKind, input.ItemID); err != nil {
		return Posting{}, err
	}
	z, err := zone.RequireZone(ctx, uow.Zones, input.ZoneID, input.ItemKind)
	if err != nil {
		return Posting{}, err
	}
	id, err := Post(ctx, uow.Ledger, PostInput{
		ItemKind:  input.ItemKind,
		ItemID:    input.ItemID,
		ZoneID:    z.ID,
		Quantity:  input.Quantity,
		Note:      input.Note,
		Reference: txID,
		UserID:    input.UserID,
	})
	if err != nil {
		return Posting{}, err
	}
	return Posting{EntryID: id, ZoneID: z.ID, LotEntryID: id, Quantity: input.Quantity}, nil
}

// doTransfer: bloquea el ítem, verifica saldo en origen, resta en origen y suma en destino.
func (uc *RegisterMovementUseCase) doTransfer(ctx context.Context, uow repository.UnitOfWork, input MovementInputDTO, txID string) ([]Posting, error) {
	if input.FromZoneID == "" || input.ToZoneID == "" || input.FromZoneID == input.ToZoneID {
		return nil, domain.Newf(domain.KindInvalidInput, "zonas de origen y destino distintas requeridas")
	}
	if err := uc.checkItem(ctx, uow, input.ItemKind, input.ItemID); err != nil {
		return nil, err
	}
	from, err := zone.RequireZone(ctx, uow.Zones, input.FromZoneID, input.ItemKind)
	if err != nil {
		return nil, err
	}
	to, err := zone.RequireZone(ctx, uow.Zones, input.ToZoneID, input.ItemKind)
	if err != nil {
		return nil, err
	}
	if err := uow.Ledger.LockItem(ctx, input.ItemKind, input.ItemID); err != nil {
		return nil, err
	}
	balance, err := uow.Ledger.Balance(ctx, input.ItemKind, input.ItemID, from.ID)
	if err != nil {
		return nil, err
	}
	if domain.Exceeds(input.Quantity, balance) {
		return nil, domain.Newf(domain.KindInsufficientStock,
			"zona %s: saldo %s menor que %s", from.Name, balance.String(), input.Quantity.String())
	}
	outID, err := Post(ctx, uow.Ledger, PostInput{
		ItemKind: input.ItemKind, ItemID: input.ItemID, ZoneID: from.ID,
		Quantity: input.Quantity.Neg(), Note: input.Note, Reference: txID, UserID: input.UserID,
	})
	if err != nil {
		return nil, err
	}
	inID, err := Post(ctx, uow.Ledger, PostInput{
		ItemKind: input.ItemKind, ItemID: input.ItemID, ZoneID: to.ID,
		Quantity: input.Quantity, Note: input.Note, Reference: txID, UserID: input.UserID,
	})
	if err != nil {
		return nil, err
	}
	return []Posting{
		{EntryID: outID, ZoneID: from.ID, Quantity: input.Quantity.Neg()},
		{EntryID: inID, ZoneID: to.ID, LotEntryID: inID, Quantity: input.Quantity},
	}, nil
}
