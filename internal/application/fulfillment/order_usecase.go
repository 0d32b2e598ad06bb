package fulfillment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
	"github.com/jhoicas/Cordeleria-api/pkg/metrics"
	"github.com/shopspring/decimal"
)

// OrderLineInput línea de un pedido nuevo.
type OrderLineInput struct {
	ProductID      string
	PresentationID string
	Quantity       decimal.Decimal
}

// CreateOrderInput pedido de producto terminado.
type CreateOrderInput struct {
	CustomerID string
	Lines      []OrderLineInput
}

// OrderView pedido con el estado de entrega de cada línea.
type OrderView struct {
	Order *entity.Order
	Lines []LineView
}

// OrderUseCase pedidos: alta, consulta y edición de líneas con la regla de pendiente.
type OrderUseCase struct {
	txRunner repository.TxRunner
	metrics  *metrics.CoreMetrics
	now      func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner repository.TxRunner, m *metrics.CoreMetrics) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, metrics: m, now: time.Now}
}

// CreateOrder registra el pedido y sus líneas en estado PENDING.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, in CreateOrderInput) (view *OrderView, err error) {
	started := time.Now()
	defer func() { uc.metrics.Observe("create_order", started, err) }()

	if in.CustomerID == "" || len(in.Lines) == 0 {
		return nil, domain.Newf(domain.KindInvalidInput, "cliente y al menos una línea requeridos")
	}
	now := uc.now()
	order := &entity.Order{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		Status:     entity.OrderStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	view = &OrderView{Order: order}
	err = uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		if err := uow.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		for i, l := range in.Lines {
			if !domain.IsPositive(l.Quantity) {
				return domain.Newf(domain.KindInvalidInput, "línea %d: cantidad debe ser positiva", i+1)
			}
			exists, err := uow.Catalog.ProductExists(ctx, l.ProductID)
			if err != nil {
				return fmt.Errorf("product exists: %w", err)
			}
			if !exists {
				return domain.Newf(domain.KindNotFound, "producto %s no encontrado", l.ProductID)
			}
			line := &entity.OrderLine{
				ID:              uuid.New().String(),
				OrderID:         order.ID,
				ProductID:       l.ProductID,
				PresentationID:  l.PresentationID,
				OrderedQuantity: l.Quantity,
			}
			if err := uow.Orders.CreateLine(ctx, line); err != nil {
				return fmt.Errorf("create order line: %w", err)
			}
			view.Lines = append(view.Lines, LineView{
				Line:        line,
				Delivered:   decimal.Zero,
				Outstanding: line.OrderedQuantity,
				State:       entity.LineStateOpen,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// GetOrder devuelve el pedido con lo entregado y pendiente por línea.
func (uc *OrderUseCase) GetOrder(ctx context.Context, orderID string) (*OrderView, error) {
	var view *OrderView
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		order, err := uow.Orders.GetByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if order == nil {
			return domain.Newf(domain.KindNotFound, "pedido %s no encontrado", orderID)
		}
		lines, err := lineViews(ctx, uow, orderID)
		if err != nil {
			return err
		}
		view = &OrderView{Order: order, Lines: lines}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// UpdateOrderLineQuantity cambia la cantidad pedida. Una vez que la línea tiene
// entregas no se puede reducir (y nunca por debajo de lo entregado).
func (uc *OrderUseCase) UpdateOrderLineQuantity(ctx context.Context, lineID string, quantity decimal.Decimal) (view *LineView, err error) {
	started := time.Now()
	defer func() { uc.metrics.Observe("update_order_line", started, err) }()

	if !domain.IsPositive(quantity) {
		return nil, domain.Newf(domain.KindInvalidInput, "la cantidad debe ser positiva")
	}
	err = uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		line, order, err := lockLine(ctx, uow, lineID)
		if err != nil {
			return err
		}
		delivered, err := uow.Deliveries.SumDeliveredByLine(ctx, line.ID)
		if err != nil {
			return fmt.Errorf("sum delivered: %w", err)
		}
		if domain.IsPositive(delivered) && quantity.LessThan(line.OrderedQuantity) {
			return domain.Newf(domain.KindConflict,
				"línea %s: ya tiene %s entregado; no se puede reducir de %s a %s",
				line.ID, delivered.String(), line.OrderedQuantity.String(), quantity.String())
		}
		if err := uow.Orders.UpdateLineQuantity(ctx, line.ID, quantity); err != nil {
			return fmt.Errorf("update order line: %w", err)
		}
		line.OrderedQuantity = quantity
		if _, err := recomputeStatusInTx(ctx, uow, order); err != nil {
			return err
		}
		view = &LineView{
			Line:        line,
			Delivered:   delivered,
			Outstanding: Outstanding(quantity, delivered),
			State:       LineStateOf(quantity, delivered),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// DeleteOrderLine elimina la línea si todavía no tiene ninguna entrega.
func (uc *OrderUseCase) DeleteOrderLine(ctx context.Context, lineID string) (err error) {
	started := time.Now()
	defer func() { uc.metrics.Observe("delete_order_line", started, err) }()

	return uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		line, order, err := lockLine(ctx, uow, lineID)
		if err != nil {
			return err
		}
		n, err := uow.Deliveries.CountByLine(ctx, line.ID)
		if err != nil {
			return fmt.Errorf("count deliveries: %w", err)
		}
		if n > 0 {
			return domain.Newf(domain.KindConflict, "línea %s: tiene %d entrega(s), no se puede eliminar", line.ID, n)
		}
		if err := uow.Orders.DeleteLine(ctx, line.ID); err != nil {
			return fmt.Errorf("delete order line: %w", err)
		}
		_, err = recomputeStatusInTx(ctx, uow, order)
		return err
	})
}

// lockLine carga la línea y bloquea la cabecera de su pedido.
func lockLine(ctx context.Context, uow repository.UnitOfWork, lineID string) (*entity.OrderLine, *entity.Order, error) {
	if lineID == "" {
		return nil, nil, domain.Newf(domain.KindInvalidInput, "línea requerida")
	}
	line, err := uow.Orders.GetLine(ctx, lineID)
	if err != nil {
		return nil, nil, fmt.Errorf("get order line: %w", err)
	}
	if line == nil {
		return nil, nil, domain.Newf(domain.KindNotFound, "línea %s no encontrada", lineID)
	}
	order, err := uow.Orders.GetForUpdate(ctx, line.OrderID)
	if err != nil {
		return nil, nil, fmt.Errorf("lock order: %w", err)
	}
	if order == nil {
		return nil, nil, domain.Newf(domain.KindNotFound, "pedido %s no encontrado", line.OrderID)
	}
	return line, order, nil
}
