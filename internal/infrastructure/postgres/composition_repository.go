package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
)

var _ repository.CompositionRepository = (*CompositionRepo)(nil)

// CompositionRepo recetas sobre PostgreSQL (usable con pool o tx).
type CompositionRepo struct {
	q Querier
}

// NewCompositionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompositionRepository(q Querier) *CompositionRepo {
	return &CompositionRepo{q: q}
}

// ListByProduct filas de la receta ordenadas por material.
func (r *CompositionRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.CompositionRow, error) {
	query := `
		SELECT product_id, material_id, zone_hint, percentage
		FROM product_compositions WHERE product_id = $1 ORDER BY material_id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list composition: %w", err)
	}
	defer rows.Close()
	var list []*entity.CompositionRow
	for rows.Next() {
		var c entity.CompositionRow
		var zoneHint *string
		if err := rows.Scan(&c.ProductID, &c.MaterialID, &zoneHint, &c.Percentage); err != nil {
			return nil, fmt.Errorf("scan composition: %w", err)
		}
		c.ZoneHint = derefStr(zoneHint)
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Replace borra la receta del producto e inserta las filas nuevas. Debe ir dentro de una tx.
func (r *CompositionRepo) Replace(ctx context.Context, productID string, rows []*entity.CompositionRow) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM product_compositions WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete composition: %w", err)
	}
	query := `
		INSERT INTO product_compositions (product_id, material_id, zone_hint, percentage)
		VALUES ($1, $2, $3, $4)`
	for _, row := range rows {
		_, err := r.q.Exec(ctx, query, productID, row.MaterialID, nullIfEmpty(row.ZoneHint), row.Percentage)
		if err != nil {
			switch {
			case isUniqueViolation(err):
				return domain.ErrInvalidComposition
			case isForeignKeyViolation(err):
				return domain.ErrNotFound
			}
			return fmt.Errorf("insert composition: %w", err)
		}
	}
	return nil
}
