// Package pricing contiene el álgebra de intervalos de precio vigente por (cliente, producto).
// Las funciones son puras: reciben el historial y devuelven qué filas cambiar.
package pricing

import (
	"fmt"
	"sort"

	"cloud.google.com/go/civil"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Action caso aplicado por PlanUpsert.
type Action string

const (
	ActionInsertOpen     Action = "INSERT_OPEN"      // no hay intervalo vigente ni futuro
	ActionUpdateInPlace  Action = "UPDATE_IN_PLACE"  // el intervalo vigente empieza ese mismo día
	ActionCloseAndInsert Action = "CLOSE_AND_INSERT" // se cierra el abierto en at-1 y se abre uno nuevo
	ActionInsertBounded  Action = "INSERT_BOUNDED"   // hueco antes de un intervalo futuro
	ActionSplit          Action = "SPLIT"            // intervalo histórico cerrado partido en at
	ActionNoop           Action = "NOOP"             // el vigente ya tiene el mismo precio y moneda
)

// Terms precio solicitado.
type Terms struct {
	CustomerID string
	ProductID  string
	Price      decimal.Decimal
	Currency   string
}

// Plan filas a modificar (Update) y/o insertar (Insert). Ambas pueden ser nil (NOOP).
type Plan struct {
	Action Action
	Update *entity.PriceInterval
	Insert *entity.PriceInterval
}

// Sorted devuelve una copia del historial ordenada por ValidFrom.
func Sorted(intervals []*entity.PriceInterval) []*entity.PriceInterval {
	out := make([]*entity.PriceInterval, len(intervals))
	copy(out, intervals)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ValidFrom.Before(out[j].ValidFrom)
	})
	return out
}

// Resolve devuelve el intervalo vigente el día at, o nil.
// Si hubiera solapamiento (no debería) gana el de ValidFrom mayor.
func Resolve(intervals []*entity.PriceInterval, at civil.Date) *entity.PriceInterval {
	var best *entity.PriceInterval
	for _, iv := range intervals {
		if !iv.Covers(at) {
			continue
		}
		if best == nil || iv.ValidFrom.After(best.ValidFrom) {
			best = iv
		}
	}
	return best
}

// nextAfter devuelve el intervalo de inicio más cercano estrictamente posterior a at.
func nextAfter(intervals []*entity.PriceInterval, at civil.Date) *entity.PriceInterval {
	var next *entity.PriceInterval
	for _, iv := range intervals {
		if !iv.ValidFrom.After(at) {
			continue
		}
		if next == nil || iv.ValidFrom.Before(next.ValidFrom) {
			next = iv
		}
	}
	return next
}

// PlanUpsert decide cómo registrar terms a partir del día at sin romper la regla de
// no solapamiento: a lo sumo se modifica una fila y se inserta otra.
func PlanUpsert(intervals []*entity.PriceInterval, terms Terms, at civil.Date) Plan {
	covering := Resolve(intervals, at)
	if covering == nil {
		if next := nextAfter(intervals, at); next != nil {
			end := next.ValidFrom.AddDays(-1)
			return Plan{Action: ActionInsertBounded, Insert: newInterval(terms, at, &end)}
		}
		return Plan{Action: ActionInsertOpen, Insert: newInterval(terms, at, nil)}
	}

	if covering.SameTerms(terms.Price, terms.Currency) {
		return Plan{Action: ActionNoop}
	}

	if covering.ValidFrom == at {
		updated := *covering
		updated.Price = terms.Price
		updated.Currency = terms.Currency
		return Plan{Action: ActionUpdateInPlace, Update: &updated}
	}

	closed := *covering
	end := at.AddDays(-1)
	closed.ValidTo = &end
	if covering.IsOpen() {
		return Plan{Action: ActionCloseAndInsert, Update: &closed, Insert: newInterval(terms, at, nil)}
	}
	tail := *covering.ValidTo
	return Plan{Action: ActionSplit, Update: &closed, Insert: newInterval(terms, at, &tail)}
}

func newInterval(terms Terms, from civil.Date, to *civil.Date) *entity.PriceInterval {
	return &entity.PriceInterval{
		CustomerID: terms.CustomerID,
		ProductID:  terms.ProductID,
		Price:      terms.Price,
		Currency:   terms.Currency,
		ValidFrom:  from,
		ValidTo:    to,
	}
}

// Apply devuelve el historial resultante de aplicar el plan (copia, ordenada).
func Apply(intervals []*entity.PriceInterval, plan Plan) []*entity.PriceInterval {
	out := make([]*entity.PriceInterval, 0, len(intervals)+1)
	for _, iv := range intervals {
		if plan.Update != nil && iv.ID == plan.Update.ID {
			out = append(out, plan.Update)
			continue
		}
		out = append(out, iv)
	}
	if plan.Insert != nil {
		out = append(out, plan.Insert)
	}
	return Sorted(out)
}

// Validate comprueba que el historial no tenga solapamientos, que cada intervalo sea
// coherente (ValidTo >= ValidFrom) y que haya a lo sumo uno abierto.
func Validate(intervals []*entity.PriceInterval) error {
	sorted := Sorted(intervals)
	open := 0
	for i, iv := range sorted {
		if iv.ValidTo != nil && iv.ValidTo.Before(iv.ValidFrom) {
			return fmt.Errorf("intervalo %s: fin %s anterior al inicio %s", iv.ID, iv.ValidTo, iv.ValidFrom)
		}
		if iv.IsOpen() {
			open++
		}
		if i == 0 {
			continue
		}
		prev := sorted[i-1]
		if prev.IsOpen() || !prev.ValidTo.Before(iv.ValidFrom) {
			return fmt.Errorf("intervalos %s y %s se solapan", prev.ID, iv.ID)
		}
	}
	if open > 1 {
		return fmt.Errorf("hay %d intervalos abiertos", open)
	}
	return nil
}
