package pricing

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/internal/domain/pricing"
	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
	"github.com/jhoicas/Cordeleria-api/pkg/metrics"
	"github.com/shopspring/decimal"
)

// UpsertInput precio a registrar desde el día At.
type UpsertInput struct {
	CustomerID string
	ProductID  string
	Price      decimal.Decimal
	Currency   string // vacío = moneda por defecto
	At         civil.Date
}

// UpsertResult caso aplicado y el intervalo que queda vigente en At.
type UpsertResult struct {
	Action   pricing.Action
	Interval *entity.PriceInterval
}

// Service precios vigentes por (cliente, producto).
type Service struct {
	txRunner        repository.TxRunner
	defaultCurrency string
	metrics         *metrics.CoreMetrics
	now             func() time.Time
}

// NewService construye el servicio. defaultCurrency vacío = PEN.
func NewService(txRunner repository.TxRunner, defaultCurrency string, m *metrics.CoreMetrics) *Service {
	if defaultCurrency == "" {
		defaultCurrency = domain.DefaultCurrency
	}
	return &Service{txRunner: txRunner, defaultCurrency: defaultCurrency, metrics: m, now: time.Now}
}

// ResolvePrice devuelve el intervalo vigente el día at, o nil si no hay ninguno.
func (s *Service) ResolvePrice(ctx context.Context, customerID, productID string, at civil.Date) (*entity.PriceInterval, error) {
	var found *entity.PriceInterval
	err := s.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		var err error
		found, err = ResolveInTx(ctx, uow, customerID, productID, at)
		return err
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ResolveInTx variante de ResolvePrice dentro de la transacción del llamador.
func ResolveInTx(ctx context.Context, uow repository.UnitOfWork, customerID, productID string, at civil.Date) (*entity.PriceInterval, error) {
	if customerID == "" || productID == "" {
		return nil, domain.Newf(domain.KindInvalidInput, "cliente y producto requeridos")
	}
	if !at.IsValid() {
		return nil, domain.Newf(domain.KindInvalidInput, "fecha inválida")
	}
	intervals, err := uow.Prices.ListByCustomerProduct(ctx, customerID, productID)
	if err != nil {
		return nil, fmt.Errorf("list prices: %w", err)
	}
	return pricing.Resolve(intervals, at), nil
}

// PriceHistory historial del par ordenado por inicio de vigencia.
func (s *Service) PriceHistory(ctx context.Context, customerID, productID string) ([]*entity.PriceInterval, error) {
	if customerID == "" || productID == "" {
		return nil, domain.Newf(domain.KindInvalidInput, "cliente y producto requeridos")
	}
	var history []*entity.PriceInterval
	err := s.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		intervals, err := uow.Prices.ListByCustomerProduct(ctx, customerID, productID)
		if err != nil {
			return fmt.Errorf("list prices: %w", err)
		}
		history = pricing.Sorted(intervals)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return history, nil
}

// UpsertPrice registra el precio desde in.At partiendo o cerrando intervalos según haga falta.
// El par queda bloqueado durante la transacción para que dos upserts no se crucen.
func (s *Service) UpsertPrice(ctx context.Context, in UpsertInput) (res *UpsertResult, err error) {
	started := time.Now()
	defer func() { s.metrics.Observe("upsert_price", started, err) }()

	if in.CustomerID == "" || in.ProductID == "" {
		return nil, domain.Newf(domain.KindInvalidInput, "cliente y producto requeridos")
	}
	if !domain.IsPositive(in.Price) {
		return nil, domain.Newf(domain.KindInvalidInput, "el precio debe ser positivo")
	}
	if !in.At.IsValid() {
		return nil, domain.Newf(domain.KindInvalidInput, "fecha de vigencia inválida")
	}
	currency, err := domain.NormalizeCurrency(in.Currency, s.defaultCurrency)
	if err != nil {
		return nil, err
	}

	err = s.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		exists, err := uow.Catalog.ProductExists(ctx, in.ProductID)
		if err != nil {
			return fmt.Errorf("product exists: %w", err)
		}
		if !exists {
			return domain.Newf(domain.KindNotFound, "producto %s no encontrado", in.ProductID)
		}
		if err := uow.Prices.LockPair(ctx, in.CustomerID, in.ProductID); err != nil {
			return fmt.Errorf("lock price pair: %w", err)
		}
		intervals, err := uow.Prices.ListByCustomerProduct(ctx, in.CustomerID, in.ProductID)
		if err != nil {
			return fmt.Errorf("list prices: %w", err)
		}

		plan := pricing.PlanUpsert(intervals, pricing.Terms{
			CustomerID: in.CustomerID,
			ProductID:  in.ProductID,
			Price:      in.Price,
			Currency:   currency,
		}, in.At)

		now := s.now()
		if plan.Update != nil {
			plan.Update.UpdatedAt = now
		}
		if plan.Insert != nil {
			plan.Insert.ID = uuid.New().String()
			plan.Insert.CreatedAt = now
			plan.Insert.UpdatedAt = now
		}
		if err := pricing.Validate(pricing.Apply(intervals, plan)); err != nil {
			return fmt.Errorf("price plan %s: %w", plan.Action, err)
		}

		// Primero se acorta el intervalo existente para no solapar al insertar.
		if plan.Update != nil {
			if err := uow.Prices.Update(ctx, plan.Update); err != nil {
				return fmt.Errorf("update price interval: %w", err)
			}
		}
		if plan.Insert != nil {
			if err := uow.Prices.Create(ctx, plan.Insert); err != nil {
				return fmt.Errorf("create price interval: %w", err)
			}
		}

		res = &UpsertResult{Action: plan.Action}
		switch {
		case plan.Insert != nil:
			res.Interval = plan.Insert
		case plan.Update != nil:
			res.Interval = plan.Update
		default:
			res.Interval = pricing.Resolve(intervals, in.At)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncPriceAction(string(res.Action))
	return res, nil
}
