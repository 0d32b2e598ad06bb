package inventory

import (
	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Draw cantidad tomada de un lote.
type Draw struct {
	Lot      entity.Lot
	Quantity decimal.Decimal
}

// Allocator acumula tomas FIFO hasta cubrir la cantidad requerida.
// No escribe nada: el llamador decide si registra las tomas.
type Allocator struct {
	remaining decimal.Decimal
	draws     []Draw
}

// NewAllocator crea un asignador para la cantidad requerida.
func NewAllocator(required decimal.Decimal) *Allocator {
	return &Allocator{remaining: required}
}

// Take consume de los lotes (ya en orden FIFO) hasta cubrir lo pendiente.
func (a *Allocator) Take(lots []entity.Lot) {
	for _, lot := range lots {
		if a.Satisfied() {
			return
		}
		take := decimal.Min(a.remaining, lot.Quantity)
		if !take.IsPositive() {
			continue
		}
		a.draws = append(a.draws, Draw{Lot: lot, Quantity: take})
		a.remaining = a.remaining.Sub(take)
	}
}

// Satisfied indica si lo pendiente ya no supera la tolerancia.
func (a *Allocator) Satisfied() bool {
	return !domain.IsPositive(a.remaining)
}

// Remaining cantidad aún no cubierta.
func (a *Allocator) Remaining() decimal.Decimal {
	return a.remaining
}

// Draws tomas realizadas, en orden.
func (a *Allocator) Draws() []Draw {
	return a.draws
}
