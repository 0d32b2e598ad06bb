package repository

import (
	"context"

	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
)

// PriceRepository intervalos de precio por (cliente, producto). Nunca se eliminan.
type PriceRepository interface {
	// ListByCustomerProduct devuelve el historial ordenado por ValidFrom.
	ListByCustomerProduct(ctx context.Context, customerID, productID string) ([]*entity.PriceInterval, error)
	// LockPair serializa upserts concurrentes del mismo par hasta el fin de la transacción.
	LockPair(ctx context.Context, customerID, productID string) error
	Create(ctx context.Context, interval *entity.PriceInterval) error
	// Update persiste precio, moneda y ValidTo.
	Update(ctx context.Context, interval *entity.PriceInterval) error
}
