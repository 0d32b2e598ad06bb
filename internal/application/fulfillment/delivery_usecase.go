package fulfillment

import (
	"context"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/jhoicas/Cordeleria-api/internal/application/inventory"
	"github.com/jhoicas/Cordeleria-api/internal/application/pricing"
	"github.com/jhoicas/Cordeleria-api/internal/application/zone"
	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
	"github.com/jhoicas/Cordeleria-api/pkg/logger"
	"github.com/jhoicas/Cordeleria-api/pkg/metrics"
	"github.com/shopspring/decimal"
)

// DeliveryLineInput cantidad a entregar contra una línea de pedido.
// UnitPrice nil = precio vigente del cliente para el producto.
type DeliveryLineInput struct {
	OrderLineID string
	Quantity    decimal.Decimal
	UnitPrice   *decimal.Decimal
	Currency    string
}

// CreateDeliveryInput entrega parcial o total de un pedido.
type CreateDeliveryInput struct {
	UserID  string
	OrderID string
	Lines   []DeliveryLineInput
	Date    *civil.Date // nil = hoy; define el precio vigente
	ZoneID  string      // almacén del que se descuenta el producto, opcional
	Note    string
}

// DeliveryView entrega con sus líneas.
type DeliveryView struct {
	Delivery    *entity.Delivery
	Lines       []*entity.DeliveryLine
	OrderStatus string
}

// DeliveryUseCase entregas de pedidos con control de pendiente y precio vigente.
type DeliveryUseCase struct {
	txRunner        repository.TxRunner
	log             *logger.Logger
	metrics         *metrics.CoreMetrics
	defaultCurrency string
	now             func() time.Time
}

// NewDeliveryUseCase construye el caso de uso. defaultCurrency vacío = PEN.
func NewDeliveryUseCase(txRunner repository.TxRunner, log *logger.Logger, m *metrics.CoreMetrics, defaultCurrency string) *DeliveryUseCase {
	if log == nil {
		log = logger.Nop()
	}
	if defaultCurrency == "" {
		defaultCurrency = domain.DefaultCurrency
	}
	return &DeliveryUseCase{txRunner: txRunner, log: log, metrics: m, defaultCurrency: defaultCurrency, now: time.Now}
}

// pendingLine línea de pedido solicitada, con lo pedido en esta entrega acumulado.
type pendingLine struct {
	line      *entity.OrderLine
	requested decimal.Decimal
}

// CreateDelivery valida contra el pendiente de cada línea, resuelve precios y registra
// cabecera y líneas en una transacción. El estado del pedido se recalcula después del
// commit; si eso falla la entrega se mantiene y el error sólo se registra en el log.
func (uc *DeliveryUseCase) CreateDelivery(ctx context.Context, in CreateDeliveryInput) (view *DeliveryView, err error) {
	started := time.Now()
	defer func() { uc.metrics.Observe("create_delivery", started, err) }()

	if in.OrderID == "" || len(in.Lines) == 0 {
		return nil, domain.Newf(domain.KindInvalidInput, "pedido y al menos una línea requeridos")
	}
	now := uc.now()
	effective := civil.DateOf(now)
	deliveryDate := now
	if in.Date != nil {
		if !in.Date.IsValid() {
			return nil, domain.Newf(domain.KindInvalidInput, "fecha de entrega inválida")
		}
		effective = *in.Date
		deliveryDate = in.Date.In(now.Location())
	}

	err = uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		// 1. cabecera del pedido, bloqueada hasta el commit
		order, err := uow.Orders.GetForUpdate(ctx, in.OrderID)
		if err != nil {
			return fmt.Errorf("lock order: %w", err)
		}
		if order == nil {
			return domain.Newf(domain.KindNotFound, "pedido %s no encontrado", in.OrderID)
		}

		// 2. pertenencia y pendiente por línea (repetidas se acumulan)
		pending, err := collectLines(ctx, uow, order, in.Lines)
		if err != nil {
			return err
		}
		for _, p := range pending {
			delivered, err := uow.Deliveries.SumDeliveredByLine(ctx, p.line.ID)
			if err != nil {
				return fmt.Errorf("sum delivered: %w", err)
			}
			outstanding := Outstanding(p.line.OrderedQuantity, delivered)
			if !domain.IsPositive(outstanding) {
				return domain.Newf(domain.KindAlreadyFulfilled, "línea %s ya entregada (%s de %s)",
					p.line.ID, delivered.String(), p.line.OrderedQuantity.String())
			}
			if domain.Exceeds(p.requested, outstanding) {
				return domain.OverDelivery(p.line.ID, p.requested, outstanding)
			}
		}

		// 3. precio unitario y moneda por línea
		delivery := &entity.Delivery{
			ID:         uuid.New().String(),
			OrderID:    order.ID,
			CustomerID: order.CustomerID,
			Date:       deliveryDate,
			ZoneID:     in.ZoneID,
			Note:       in.Note,
			CreatedAt:  now,
			CreatedBy:  in.UserID,
		}
		lines := make([]*entity.DeliveryLine, 0, len(in.Lines))
		for _, req := range in.Lines {
			orderLine := pending[req.OrderLineID].line
			price, currency, err := uc.priceFor(ctx, uow, order.CustomerID, orderLine.ProductID, effective, req)
			if err != nil {
				return err
			}
			lines = append(lines, &entity.DeliveryLine{
				ID:          uuid.New().String(),
				DeliveryID:  delivery.ID,
				OrderLineID: orderLine.ID,
				Quantity:    req.Quantity,
				UnitPrice:   price,
				Currency:    currency,
			})
		}

		// 4. cabecera, líneas y, si se indicó almacén, la salida de producto
		if err := uow.Deliveries.Create(ctx, delivery); err != nil {
			return fmt.Errorf("create delivery: %w", err)
		}
		for _, l := range lines {
			if err := uow.Deliveries.CreateLine(ctx, l); err != nil {
				return fmt.Errorf("create delivery line: %w", err)
			}
		}
		if in.ZoneID != "" {
			if err := uc.dispatch(ctx, uow, delivery, pending, in.UserID); err != nil {
				return err
			}
		}
		view = &DeliveryView{Delivery: delivery, Lines: lines, OrderStatus: order.Status}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 5. estado derivado, best-effort
	status, err := uc.RecomputeOrderStatus(ctx, in.OrderID)
	if err != nil {
		uc.log.Warn().Err(err).Str("order_id", in.OrderID).Str("delivery_id", view.Delivery.ID).
			Msg("no se pudo recalcular el estado del pedido")
		return view, nil
	}
	view.OrderStatus = status
	return view, nil
}

// collectLines carga cada línea solicitada y acumula cantidades por línea.
func collectLines(ctx context.Context, uow repository.UnitOfWork, order *entity.Order, reqs []DeliveryLineInput) (map[string]*pendingLine, error) {
	pending := make(map[string]*pendingLine, len(reqs))
	for _, req := range reqs {
		if req.OrderLineID == "" || !domain.IsPositive(req.Quantity) {
			return nil, domain.Newf(domain.KindInvalidInput, "línea y cantidad positiva requeridas")
		}
		if p, ok := pending[req.OrderLineID]; ok {
			p.requested = p.requested.Add(req.Quantity)
			continue
		}
		line, err := uow.Orders.GetLine(ctx, req.OrderLineID)
		if err != nil {
			return nil, fmt.Errorf("get order line: %w", err)
		}
		if line == nil {
			return nil, domain.Newf(domain.KindNotFound, "línea %s no encontrada", req.OrderLineID)
		}
		if line.OrderID != order.ID {
			return nil, domain.Newf(domain.KindInvalidLine, "la línea %s no pertenece al pedido %s", line.ID, order.ID)
		}
		pending[req.OrderLineID] = &pendingLine{line: line, requested: req.Quantity}
	}
	return pending, nil
}

// priceFor: el precio del llamador gana; si no, el vigente en la fecha efectiva.
func (uc *DeliveryUseCase) priceFor(ctx context.Context, uow repository.UnitOfWork, customerID, productID string, at civil.Date, req DeliveryLineInput) (decimal.Decimal, string, error) {
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return decimal.Zero, "", domain.Newf(domain.KindInvalidInput, "línea %s: precio negativo", req.OrderLineID)
		}
		currency, err := domain.NormalizeCurrency(req.Currency, uc.defaultCurrency)
		if err != nil {
			return decimal.Zero, "", err
		}
		return *req.UnitPrice, currency, nil
	}
	interval, err := pricing.ResolveInTx(ctx, uow, customerID, productID, at)
	if err != nil {
		return decimal.Zero, "", err
	}
	if interval == nil {
		return decimal.Zero, "", domain.Newf(domain.KindNoEffectivePrice,
			"cliente %s, producto %s: sin precio vigente al %s", customerID, productID, at.String())
	}
	code := req.Currency
	if code == "" {
		code = interval.Currency
	}
	currency, err := domain.NormalizeCurrency(code, uc.defaultCurrency)
	if err != nil {
		return decimal.Zero, "", err
	}
	return interval.Price, currency, nil
}

// dispatch descuenta del almacén el producto entregado, verificando saldo por producto.
func (uc *DeliveryUseCase) dispatch(ctx context.Context, uow repository.UnitOfWork, delivery *entity.Delivery, pending map[string]*pendingLine, userID string) error {
	warehouse, err := zone.RequireZone(ctx, uow.Zones, delivery.ZoneID, entity.ItemKindProduct)
	if err != nil {
		return err
	}
	byProduct := map[string]decimal.Decimal{}
	for _, p := range pending {
		byProduct[p.line.ProductID] = byProduct[p.line.ProductID].Add(p.requested)
	}
	products := make([]string, 0, len(byProduct))
	for id := range byProduct {
		products = append(products, id)
	}
	sort.Strings(products)

	for _, productID := range products {
		qty := byProduct[productID]
		if err := uow.Ledger.LockItem(ctx, entity.ItemKindProduct, productID); err != nil {
			return fmt.Errorf("lock product: %w", err)
		}
		balance, err := uow.Ledger.Balance(ctx, entity.ItemKindProduct, productID, warehouse.ID)
		if err != nil {
			return fmt.Errorf("product balance: %w", err)
		}
		if domain.Exceeds(qty, balance) {
			return domain.Newf(domain.KindInsufficientStock, "producto %s en %s: saldo %s menor que %s",
				productID, warehouse.Name, balance.String(), qty.String())
		}
		if _, err := inventory.Post(ctx, uow.Ledger, inventory.PostInput{
			ItemKind:  entity.ItemKindProduct,
			ItemID:    productID,
			ZoneID:    warehouse.ID,
			Quantity:  qty.Neg(),
			Note:      "entrega pedido " + delivery.OrderID,
			Reference: delivery.ID,
			UserID:    userID,
		}); err != nil {
			return err
		}
	}
	return nil
}

// RecomputeOrderStatus recalcula en su propia transacción el estado DELIVERED/PENDING.
func (uc *DeliveryUseCase) RecomputeOrderStatus(ctx context.Context, orderID string) (string, error) {
	var status string
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		order, err := uow.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return fmt.Errorf("lock order: %w", err)
		}
		if order == nil {
			return domain.Newf(domain.KindNotFound, "pedido %s no encontrado", orderID)
		}
		status, err = recomputeStatusInTx(ctx, uow, order)
		return err
	})
	return status, err
}

// GetDelivery devuelve la entrega con sus líneas.
func (uc *DeliveryUseCase) GetDelivery(ctx context.Context, id string) (*DeliveryView, error) {
	var view *DeliveryView
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		d, err := uow.Deliveries.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get delivery: %w", err)
		}
		if d == nil {
			return domain.Newf(domain.KindNotFound, "entrega %s no encontrada", id)
		}
		lines, err := uow.Deliveries.ListLines(ctx, id)
		if err != nil {
			return fmt.Errorf("list delivery lines: %w", err)
		}
		order, err := uow.Orders.GetByID(ctx, d.OrderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		view = &DeliveryView{Delivery: d, Lines: lines}
		if order != nil {
			view.OrderStatus = order.Status
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// CustomerReceivables cuentas por cobrar del cliente: Σ cantidad × precio por moneda.
func (uc *DeliveryUseCase) CustomerReceivables(ctx context.Context, customerID string) ([]entity.CurrencyAmount, error) {
	if customerID == "" {
		return nil, domain.Newf(domain.KindInvalidInput, "cliente requerido")
	}
	var amounts []entity.CurrencyAmount
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		var err error
		amounts, err = uow.Deliveries.SumAmountsByCustomer(ctx, customerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return amounts, nil
}
