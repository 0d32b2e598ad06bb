package repository

import (
	"context"

	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
)

// CompositionRepository recetas porcentuales de producto terminado.
type CompositionRepository interface {
	ListByProduct(ctx context.Context, productID string) ([]*entity.CompositionRow, error)
	// Replace sustituye todas las filas del producto.
	Replace(ctx context.Context, productID string, rows []*entity.CompositionRow) error
}
