package repository

import (
	"context"

	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// OrderRepository pedidos y líneas de pedido. Los Get devuelven nil, nil si no existen.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateLine(ctx context.Context, line *entity.OrderLine) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	GetLine(ctx context.Context, lineID string) (*entity.OrderLine, error)
	ListLines(ctx context.Context, orderID string) ([]*entity.OrderLine, error)
	UpdateLineQuantity(ctx context.Context, lineID string, quantity decimal.Decimal) error
	DeleteLine(ctx context.Context, lineID string) error
	UpdateStatus(ctx context.Context, orderID, status string) error
}
