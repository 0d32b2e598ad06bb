package fulfillment

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Outstanding pendiente de entrega: max(0, pedido − entregado).
func Outstanding(ordered, delivered decimal.Decimal) decimal.Decimal {
	out := ordered.Sub(delivered)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}

// LineStateOf OPEN mientras lo entregado no alcance lo pedido (con tolerancia).
func LineStateOf(ordered, delivered decimal.Decimal) entity.LineState {
	if domain.IsPositive(Outstanding(ordered, delivered)) {
		return entity.LineStateOpen
	}
	return entity.LineStateFulfilled
}

// LineView línea de pedido con su estado de entrega derivado.
type LineView struct {
	Line        *entity.OrderLine
	Delivered   decimal.Decimal
	Outstanding decimal.Decimal
	State       entity.LineState
}

// lineViews calcula el estado de cada línea del pedido.
func lineViews(ctx context.Context, uow repository.UnitOfWork, orderID string) ([]LineView, error) {
	lines, err := uow.Orders.ListLines(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	views := make([]LineView, 0, len(lines))
	for _, l := range lines {
		delivered, err := uow.Deliveries.SumDeliveredByLine(ctx, l.ID)
		if err != nil {
			return nil, fmt.Errorf("sum delivered: %w", err)
		}
		views = append(views, LineView{
			Line:        l,
			Delivered:   delivered,
			Outstanding: Outstanding(l.OrderedQuantity, delivered),
			State:       LineStateOf(l.OrderedQuantity, delivered),
		})
	}
	return views, nil
}

// StatusOf DELIVERED cuando todas las líneas (al menos una) están FULFILLED.
func StatusOf(views []LineView) string {
	if len(views) == 0 {
		return entity.OrderStatusPending
	}
	for _, v := range views {
		if v.State != entity.LineStateFulfilled {
			return entity.OrderStatusPending
		}
	}
	return entity.OrderStatusDelivered
}

// recomputeStatusInTx recalcula y persiste el estado del pedido si cambió.
func recomputeStatusInTx(ctx context.Context, uow repository.UnitOfWork, order *entity.Order) (string, error) {
	views, err := lineViews(ctx, uow, order.ID)
	if err != nil {
		return "", err
	}
	status := StatusOf(views)
	if status == order.Status {
		return status, nil
	}
	if err := uow.Orders.UpdateStatus(ctx, order.ID, status); err != nil {
		return "", fmt.Errorf("update order status: %w", err)
	}
	order.Status = status
	return status, nil
}
