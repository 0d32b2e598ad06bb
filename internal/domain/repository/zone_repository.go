package repository

import (
	"context"

	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
)

// ZoneRepository puerto de lectura del registro de zonas (datos de referencia).
type ZoneRepository interface {
	// GetByID devuelve nil, nil si la zona no existe.
	GetByID(ctx context.Context, id string) (*entity.Zone, error)
	// ListByKind devuelve las zonas del tipo ordenadas por nombre e id. Kind vacío = todas.
	ListByKind(ctx context.Context, kind entity.ZoneKind) ([]*entity.Zone, error)
}
