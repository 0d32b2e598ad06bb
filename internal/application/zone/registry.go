package zone

import (
	"context"
	"fmt"

	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
)

// Registry consulta de zonas y de su capacidad para contener materia prima o producto.
type Registry struct {
	repo repository.ZoneRepository
}

// NewRegistry construye el registro sobre el repositorio dado (pool o tx).
func NewRegistry(repo repository.ZoneRepository) *Registry {
	return &Registry{repo: repo}
}

// GetZone devuelve la zona o un error NOT_FOUND.
func (r *Registry) GetZone(ctx context.Context, id string) (*entity.Zone, error) {
	return GetZone(ctx, r.repo, id)
}

// ListZones lista zonas, opcionalmente filtradas por tipo.
func (r *Registry) ListZones(ctx context.Context, kind entity.ZoneKind) ([]*entity.Zone, error) {
	if kind != "" && !kind.IsValid() {
		return nil, domain.Newf(domain.KindInvalidInput, "tipo de zona %q desconocido", kind)
	}
	return r.repo.ListByKind(ctx, kind)
}

// RequireZone obtiene la zona y verifica que admita el tipo de ítem.
func (r *Registry) RequireZone(ctx context.Context, id string, kind entity.ItemKind) (*entity.Zone, error) {
	return RequireZone(ctx, r.repo, id, kind)
}

// GetZone variante para usar con el repositorio de una transacción.
func GetZone(ctx context.Context, repo repository.ZoneRepository, id string) (*entity.Zone, error) {
	if id == "" {
		return nil, domain.Newf(domain.KindInvalidInput, "zona requerida")
	}
	z, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get zone: %w", err)
	}
	if z == nil {
		return nil, domain.Newf(domain.KindNotFound, "zona %s no encontrada", id)
	}
	return z, nil
}

// RequireZone variante transaccional de Registry.RequireZone.
func RequireZone(ctx context.Context, repo repository.ZoneRepository, id string, kind entity.ItemKind) (*entity.Zone, error) {
	z, err := GetZone(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	if err := AssertAccepts(kind, z); err != nil {
		return nil, err
	}
	return z, nil
}

// AssertAccepts falla con ZONE_REJECTED si la zona no puede contener el tipo de ítem.
func AssertAccepts(kind entity.ItemKind, z *entity.Zone) error {
	if !kind.IsValid() {
		return domain.Newf(domain.KindInvalidInput, "tipo de ítem %q desconocido", kind)
	}
	if z == nil {
		return domain.Newf(domain.KindNotFound, "zona no encontrada")
	}
	if !z.Accepts(kind) {
		switch kind {
		case entity.ItemKindProduct:
			return domain.Newf(domain.KindZoneRejected, "la zona %s (%s) no admite producto terminado; sólo WAREHOUSE", z.Name, z.Kind)
		default:
			return domain.Newf(domain.KindZoneRejected, "la zona %s (%s) no admite materia prima", z.Name, z.Kind)
		}
	}
	return nil
}
