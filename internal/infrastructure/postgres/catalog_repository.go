package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo consultas de existencia sobre materiales y productos.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// MaterialExists indica si el material está dado de alta.
func (r *CatalogRepo) MaterialExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM materials WHERE id = $1)`, id)
}

// ProductExists indica si el producto está dado de alta.
func (r *CatalogRepo) ProductExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id)
}

func (r *CatalogRepo) exists(ctx context.Context, query, id string) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, query, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("catalog exists: %w", err)
	}
	return ok, nil
}
