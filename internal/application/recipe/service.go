package recipe

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Cordeleria-api/internal/application/zone"
	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
	"github.com/jhoicas/Cordeleria-api/pkg/metrics"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// RowInput fila de receta recibida para reemplazo.
type RowInput struct {
	MaterialID string
	ZoneHint   string
	Percentage decimal.Decimal
}

// Service recetas porcentuales de producto terminado.
type Service struct {
	txRunner repository.TxRunner
	metrics  *metrics.CoreMetrics
}

// NewService construye el servicio.
func NewService(txRunner repository.TxRunner, m *metrics.CoreMetrics) *Service {
	return &Service{txRunner: txRunner, metrics: m}
}

// GetComposition devuelve la receta del producto (vacía si no tiene).
func (s *Service) GetComposition(ctx context.Context, productID string) ([]*entity.CompositionRow, error) {
	var rows []*entity.CompositionRow
	err := s.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		if err := requireProduct(ctx, uow, productID); err != nil {
			return err
		}
		var err error
		rows, err = uow.Compositions.ListByProduct(ctx, productID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// PlanConsumption calcula el consumo de materiales para producir total kg del producto.
func (s *Service) PlanConsumption(ctx context.Context, productID string, total decimal.Decimal, manual []entity.MaterialDraw) ([]entity.MaterialDraw, error) {
	var draws []entity.MaterialDraw
	err := s.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		var err error
		draws, err = PlanInTx(ctx, uow, productID, total, manual)
		return err
	})
	if err != nil {
		return nil, err
	}
	return draws, nil
}

// PlanInTx variante de PlanConsumption dentro de la transacción del llamador.
func PlanInTx(ctx context.Context, uow repository.UnitOfWork, productID string, total decimal.Decimal, manual []entity.MaterialDraw) ([]entity.MaterialDraw, error) {
	if err := requireProduct(ctx, uow, productID); err != nil {
		return nil, err
	}
	rows, err := uow.Compositions.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list composition: %w", err)
	}
	return Plan(rows, total, manual)
}

// ReplaceComposition sustituye la receta completa en una transacción.
// Cada porcentaje en [0,100], sin materiales repetidos y con suma ≤ 100.
func (s *Service) ReplaceComposition(ctx context.Context, productID string, in []RowInput) (rows []*entity.CompositionRow, err error) {
	started := time.Now()
	defer func() { s.metrics.Observe("replace_composition", started, err) }()

	if err := ValidateRows(in); err != nil {
		return nil, err
	}
	rows = make([]*entity.CompositionRow, 0, len(in))
	for _, r := range in {
		rows = append(rows, &entity.CompositionRow{
			ProductID:  productID,
			MaterialID: r.MaterialID,
			ZoneHint:   r.ZoneHint,
			Percentage: r.Percentage,
		})
	}
	err = s.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		if err := requireProduct(ctx, uow, productID); err != nil {
			return err
		}
		for _, r := range rows {
			exists, err := uow.Catalog.MaterialExists(ctx, r.MaterialID)
			if err != nil {
				return fmt.Errorf("material exists: %w", err)
			}
			if !exists {
				return domain.Newf(domain.KindNotFound, "material %s no encontrado", r.MaterialID)
			}
			if r.ZoneHint != "" {
				if _, err := zone.RequireZone(ctx, uow.Zones, r.ZoneHint, entity.ItemKindMaterial); err != nil {
					return err
				}
			}
		}
		return uow.Compositions.Replace(ctx, productID, rows)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ValidateRows reúne todos los problemas de la receta en un único INVALID_COMPOSITION.
func ValidateRows(in []RowInput) error {
	var errs error
	seen := make(map[string]bool, len(in))
	sum := decimal.Zero
	for i, r := range in {
		if r.MaterialID == "" {
			errs = multierr.Append(errs, fmt.Errorf("fila %d: material requerido", i+1))
			continue
		}
		if seen[r.MaterialID] {
			errs = multierr.Append(errs, fmt.Errorf("fila %d: material %s repetido", i+1, r.MaterialID))
		}
		seen[r.MaterialID] = true
		if r.Percentage.IsNegative() || domain.Exceeds(r.Percentage, domain.Hundred) {
			errs = multierr.Append(errs, fmt.Errorf("fila %d: porcentaje %s fuera de [0,100]", i+1, r.Percentage.String()))
		}
		sum = sum.Add(r.Percentage)
	}
	if domain.Exceeds(sum, domain.Hundred) {
		errs = multierr.Append(errs, fmt.Errorf("la suma de porcentajes %s supera 100", sum.String()))
	}
	if errs != nil {
		return domain.Newf(domain.KindInvalidComposition, "%s", errs.Error())
	}
	return nil
}

func requireProduct(ctx context.Context, uow repository.UnitOfWork, productID string) error {
	if productID == "" {
		return domain.Newf(domain.KindInvalidInput, "producto requerido")
	}
	exists, err := uow.Catalog.ProductExists(ctx, productID)
	if err != nil {
		return fmt.Errorf("product exists: %w", err)
	}
	if !exists {
		return domain.Newf(domain.KindNotFound, "producto %s no encontrado", productID)
	}
	return nil
}
