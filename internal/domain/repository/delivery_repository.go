package repository

import (
	"context"

	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DeliveryRepository entregas y sus líneas.
type DeliveryRepository interface {
	Create(ctx context.Context, delivery *entity.Delivery) error
	CreateLine(ctx context.Context, line *entity.DeliveryLine) error
	GetByID(ctx context.Context, id string) (*entity.Delivery, error)
	ListLines(ctx context.Context, deliveryID string) ([]*entity.DeliveryLine, error)
	// SumDeliveredByLine Σ cantidad entregada contra la línea de pedido (cero si no hay entregas).
	SumDeliveredByLine(ctx context.Context, orderLineID string) (decimal.Decimal, error)
	CountByLine(ctx context.Context, orderLineID string) (int, error)
	// SumAmountsByCustomer Σ cantidad × precio de las entregas del cliente, por moneda.
	SumAmountsByCustomer(ctx context.Context, customerID string) ([]entity.CurrencyAmount, error)
}
