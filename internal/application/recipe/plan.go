package recipe

import (
	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Plan calcula las cantidades de material a consumir para producir total kg.
//
// Con lista manual se usa esa lista (el operador manda); si no, cada fila de la receta
// aporta total × porcentaje / 100. Las filas que no resultan positivas se descartan.
// Un resultado vacío o una lista manual que supera total se rechazan con INVALID_COMPOSITION.
func Plan(rows []*entity.CompositionRow, total decimal.Decimal, manual []entity.MaterialDraw) ([]entity.MaterialDraw, error) {
	if !domain.IsPositive(total) {
		return nil, domain.Newf(domain.KindInvalidInput, "la cantidad a producir debe ser positiva")
	}
	if len(manual) > 0 {
		return planManual(total, manual)
	}
	if len(rows) == 0 {
		return nil, domain.Newf(domain.KindInvalidComposition, "el producto no tiene receta; indique los materiales a consumir")
	}

	draws := make([]entity.MaterialDraw, 0, len(rows))
	for _, row := range rows {
		qty := total.Mul(row.Percentage).Div(domain.Hundred)
		if !domain.IsPositive(qty) {
			continue
		}
		draws = append(draws, entity.MaterialDraw{
			MaterialID: row.MaterialID,
			Quantity:   qty,
			ZoneHint:   row.ZoneHint,
		})
	}
	if len(draws) == 0 {
		return nil, domain.Newf(domain.KindInvalidComposition, "la receta no genera consumo")
	}
	return draws, nil
}

// planManual agrupa materiales repetidos conservando el orden de aparición.
func planManual(total decimal.Decimal, manual []entity.MaterialDraw) ([]entity.MaterialDraw, error) {
	index := make(map[string]int, len(manual))
	draws := make([]entity.MaterialDraw, 0, len(manual))
	sum := decimal.Zero
	for _, m := range manual {
		if m.MaterialID == "" {
			return nil, domain.Newf(domain.KindInvalidComposition, "material vacío en la lista manual")
		}
		if m.Quantity.IsNegative() {
			return nil, domain.Newf(domain.KindInvalidComposition, "material %s: cantidad negativa", m.MaterialID)
		}
		if !domain.IsPositive(m.Quantity) {
			continue
		}
		sum = sum.Add(m.Quantity)
		if i, ok := index[m.MaterialID]; ok {
			draws[i].Quantity = draws[i].Quantity.Add(m.Quantity)
			continue
		}
		index[m.MaterialID] = len(draws)
		draws = append(draws, m)
	}
	if len(draws) == 0 {
		return nil, domain.Newf(domain.KindInvalidComposition, "la lista manual no tiene consumo")
	}
	if domain.Exceeds(sum, total) {
		return nil, domain.Newf(domain.KindInvalidComposition,
			"la lista manual suma %s y supera la cantidad producida %s", sum.String(), total.String())
	}
	return draws, nil
}

// Total suma de cantidades planificadas.
func Total(draws []entity.MaterialDraw) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range draws {
		sum = sum.Add(d.Quantity)
	}
	return sum
}
