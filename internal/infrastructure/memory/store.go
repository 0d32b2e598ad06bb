// Package memory implementa los repositorios en memoria con transacciones por copia:
// cada Run trabaja sobre una copia del estado que sólo se publica si fn no falla.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
)

var _ repository.TxRunner = (*Store)(nil)

type state struct {
	zones         map[string]entity.Zone
	materials     map[string]bool
	products      map[string]bool
	entries       []entity.StockEntry
	nextEntryID   int64
	orders        map[string]entity.Order
	orderLines    map[string]entity.OrderLine
	deliveries    map[string]entity.Delivery
	deliveryLines []entity.DeliveryLine
	compositions  map[string][]entity.CompositionRow
	prices        map[string]entity.PriceInterval
}

func newState() *state {
	return &state{
		zones:        map[string]entity.Zone{},
		materials:    map[string]bool{},
		products:     map[string]bool{},
		orders:       map[string]entity.Order{},
		orderLines:   map[string]entity.OrderLine{},
		deliveries:   map[string]entity.Delivery{},
		compositions: map[string][]entity.CompositionRow{},
		prices:       map[string]entity.PriceInterval{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.zones {
		c.zones[k] = v
	}
	for k, v := range s.materials {
		c.materials[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	c.entries = append([]entity.StockEntry(nil), s.entries...)
	c.nextEntryID = s.nextEntryID
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.orderLines {
		c.orderLines[k] = v
	}
	for k, v := range s.deliveries {
		c.deliveries[k] = v
	}
	c.deliveryLines = append([]entity.DeliveryLine(nil), s.deliveryLines...)
	for k, v := range s.compositions {
		c.compositions[k] = append([]entity.CompositionRow(nil), v...)
	}
	for k, v := range s.prices {
		c.prices[k] = v
	}
	return c
}

// accessor entrega el estado sobre el que opera un repositorio y la función que lo libera.
type accessor func() (*state, func())

// Store almacén en memoria. Las escrituras se serializan con un único mutex, lo que
// equivale a aislamiento serializable.
type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState(), now: time.Now}
}

// WithClock fija el reloj usado para sellar asientos sin fecha.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Run ejecuta fn sobre una copia del estado; la copia reemplaza al estado sólo si fn no falla.
func (s *Store) Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	acc := func() (*state, func()) { return work, func() {} }
	if err := fn(s.unitOfWork(acc)); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Repositories devuelve repositorios fuera de transacción (cada llamada es atómica).
// No deben usarse dentro de Run.
func (s *Store) Repositories() repository.UnitOfWork {
	return s.unitOfWork(s.committed)
}

func (s *Store) committed() (*state, func()) {
	s.mu.Lock()
	return s.st, s.mu.Unlock
}

func (s *Store) unitOfWork(acc accessor) repository.UnitOfWork {
	return repository.UnitOfWork{
		Zones:        &zoneRepo{acc: acc},
		Ledger:       &ledgerRepo{acc: acc, now: s.now},
		Orders:       &orderRepo{acc: acc},
		Deliveries:   &deliveryRepo{acc: acc},
		Compositions: &compositionRepo{acc: acc},
		Prices:       &priceRepo{acc: acc},
		Catalog:      &catalogRepo{acc: acc},
	}
}

// ── Carga de datos de referencia ────────────────────────────────────────────

// AddZone registra una zona.
func (s *Store) AddZone(z entity.Zone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.zones[z.ID] = z
}

// AddMaterial registra un material del catálogo.
func (s *Store) AddMaterial(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.materials[id] = true
}

// AddProduct registra un producto terminado del catálogo.
func (s *Store) AddProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.products[id] = true
}

// SeedDefaultZones registra las zonas que la migración inicial crea en PostgreSQL.
func (s *Store) SeedDefaultZones() {
	now := s.now()
	for _, z := range []entity.Zone{
		{ID: "RECEPCION", Name: "Recepción", Kind: entity.ZoneKindReception},
		{ID: "PLANTA", Name: "Planta", Kind: entity.ZoneKindProduction},
		{ID: "ALMACEN", Name: "Almacén", Kind: entity.ZoneKindWarehouse},
		{ID: "MERMA", Name: "Merma", Kind: entity.ZoneKindScrap},
	} {
		z.CreatedAt = now
		s.AddZone(z)
	}
}
