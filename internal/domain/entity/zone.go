package entity

import "time"

// ZoneKind clasifica una ubicación física o de proceso.
type ZoneKind string

const (
	ZoneKindReception  ZoneKind = "RECEPTION"  // recepción de materia prima
	ZoneKindProduction ZoneKind = "PRODUCTION" // planta / proceso
	ZoneKindWarehouse  ZoneKind = "WAREHOUSE"  // almacén de producto terminado
	ZoneKindScrap      ZoneKind = "SCRAP"      // merma
)

// IsValid indica si el tipo de zona es conocido.
func (k ZoneKind) IsValid() bool {
	switch k {
	case ZoneKindReception, ZoneKindProduction, ZoneKindWarehouse, ZoneKindScrap:
		return true
	}
	return false
}

// DefaultZonePriority orden de consumo FIFO por defecto: planta antes que recepción.
var DefaultZonePriority = []ZoneKind{ZoneKindProduction, ZoneKindReception}

// ItemKind distingue las dos series paralelas del kardex.
type ItemKind string

const (
	ItemKindMaterial ItemKind = "MATERIAL" // materia prima
	ItemKindProduct  ItemKind = "PRODUCT"  // producto terminado
)

// IsValid indica si el tipo de ítem es conocido.
func (k ItemKind) IsValid() bool {
	return k == ItemKindMaterial || k == ItemKindProduct
}

// Zone representa una zona de almacenamiento o proceso. Inmutable una vez referenciada.
type Zone struct {
	ID        string
	Name      string
	Kind      ZoneKind
	CreatedAt time.Time
}

// Accepts indica si la zona puede contener el tipo de ítem:
// materia prima en RECEPTION/PRODUCTION/SCRAP, producto terminado sólo en WAREHOUSE.
func (z *Zone) Accepts(kind ItemKind) bool {
	if z == nil {
		return false
	}
	switch kind {
	case ItemKindMaterial:
		return z.Kind == ZoneKindReception || z.Kind == ZoneKindProduction || z.Kind == ZoneKindScrap
	case ItemKindProduct:
		return z.Kind == ZoneKindWarehouse
	}
	return false
}
