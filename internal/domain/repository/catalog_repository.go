package repository

import "context"

// CatalogRepository consultas de existencia sobre el catálogo (su CRUD es externo).
type CatalogRepository interface {
	MaterialExists(ctx context.Context, id string) (bool, error)
	ProductExists(ctx context.Context, id string) (bool, error)
}
