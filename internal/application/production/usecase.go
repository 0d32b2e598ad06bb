package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Cordeleria-api/internal/application/inventory"
	"github.com/jhoicas/Cordeleria-api/internal/application/recipe"
	"github.com/jhoicas/Cordeleria-api/internal/application/zone"
	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
	"github.com/jhoicas/Cordeleria-api/pkg/metrics"
	"github.com/shopspring/decimal"
)

// RegisterInput parte de producción: kg de producto terminado ingresados a un almacén.
type RegisterInput struct {
	UserID          string
	ProductID       string
	Quantity        decimal.Decimal
	WarehouseZoneID string
	ManualMaterials []entity.MaterialDraw // obligatorio si el producto no tiene receta
	ZonePriority    []entity.ZoneKind
	Note            string
}

// Result consumo y entrada generados por la producción.
type Result struct {
	TransactionID string
	ProductEntry  int64
	Consumptions  []*inventory.ConsumeResult
}

// RegisterProductionUseCase receta → consumo FIFO de materiales → entrada del producto.
// Todo ocurre en una transacción: si falta un material no queda nada registrado.
type RegisterProductionUseCase struct {
	txRunner repository.TxRunner
	engine   *inventory.ConsumptionEngine
	metrics  *metrics.CoreMetrics
}

// NewRegisterProductionUseCase construye el caso de uso.
func NewRegisterProductionUseCase(txRunner repository.TxRunner, engine *inventory.ConsumptionEngine, m *metrics.CoreMetrics) *RegisterProductionUseCase {
	return &RegisterProductionUseCase{txRunner: txRunner, engine: engine, metrics: m}
}

// Register ejecuta el parte de producción.
func (uc *RegisterProductionUseCase) Register(ctx context.Context, in RegisterInput) (res *Result, err error) {
	started := time.Now()
	defer func() { uc.metrics.Observe("register_production", started, err) }()

	if !domain.IsPositive(in.Quantity) {
		return nil, domain.Newf(domain.KindInvalidInput, "la cantidad producida debe ser positiva")
	}
	txID := uuid.New().String()
	res = &Result{TransactionID: txID}

	err = uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		warehouse, err := zone.RequireZone(ctx, uow.Zones, in.WarehouseZoneID, entity.ItemKindProduct)
		if err != nil {
			return err
		}
		draws, err := recipe.PlanInTx(ctx, uow, in.ProductID, in.Quantity, in.ManualMaterials)
		if err != nil {
			return err
		}
		for _, d := range draws {
			cr, err := uc.engine.ConsumeInTx(ctx, uow, inventory.ConsumeRequest{
				MaterialID:      d.MaterialID,
				Quantity:        d.Quantity,
				ZonePriority:    in.ZonePriority,
				PreferredZoneID: d.ZoneHint,
				Reference:       txID,
				Note:            "producción " + in.ProductID,
				UserID:          in.UserID,
			})
			if err != nil {
				return err
			}
			res.Consumptions = append(res.Consumptions, cr)
		}
		res.ProductEntry, err = inventory.Post(ctx, uow.Ledger, inventory.PostInput{
			ItemKind:  entity.ItemKindProduct,
			ItemID:    in.ProductID,
			ZoneID:    warehouse.ID,
			Quantity:  in.Quantity,
			Note:      in.Note,
			Reference: txID,
			UserID:    in.UserID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
