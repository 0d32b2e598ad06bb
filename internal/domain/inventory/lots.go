package inventory

import (
	"sort"

	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SortEntries ordena asientos por fecha y luego por id ascendente (orden del kardex).
func SortEntries(entries []*entity.StockEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
}

// Balance suma las cantidades de los asientos.
func Balance(entries []*entity.StockEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Quantity)
	}
	return total
}

// OpenLots reconstruye los lotes vivos de un par (ítem, zona) a partir de su kardex.
//
// Cada asiento positivo es un lote. Las salidas que indican el lote consumido
// (SourceEntryID) se descuentan de ese lote; el resto de salidas se descuenta de los
// lotes más antiguos primero. Los lotes agotados se omiten. El resultado queda en
// orden FIFO (fecha, id).
func OpenLots(entries []*entity.StockEntry) []entity.Lot {
	ordered := make([]*entity.StockEntry, len(entries))
	copy(ordered, entries)
	SortEntries(ordered)

	lots := make([]entity.Lot, 0, len(ordered))
	index := make(map[int64]int, len(ordered))
	for _, e := range ordered {
		if e.Quantity.IsPositive() {
			index[e.ID] = len(lots)
			lots = append(lots, entity.Lot{
				EntryID:   e.ID,
				ZoneID:    e.ZoneID,
				Quantity:  e.Quantity,
				Timestamp: e.CreatedAt,
			})
		}
	}

	unsourced := decimal.Zero
	for _, e := range ordered {
		if !e.Quantity.IsNegative() {
			continue
		}
		out := e.Quantity.Neg()
		if e.SourceEntryID != nil {
			if i, ok := index[*e.SourceEntryID]; ok {
				take := decimal.Min(out, lots[i].Quantity)
				lots[i].Quantity = lots[i].Quantity.Sub(take)
				out = out.Sub(take)
			}
		}
		unsourced = unsourced.Add(out)
	}

	for i := range lots {
		if !unsourced.IsPositive() {
			break
		}
		take := decimal.Min(unsourced, lots[i].Quantity)
		lots[i].Quantity = lots[i].Quantity.Sub(take)
		unsourced = unsourced.Sub(take)
	}

	open := lots[:0]
	for _, l := range lots {
		if domain.IsPositive(l.Quantity) {
			open = append(open, l)
		}
	}
	return open
}
