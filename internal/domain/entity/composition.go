package entity

import "github.com/shopspring/decimal"

// CompositionRow fila de receta: porcentaje de un material en el producto terminado.
// La suma por producto no supera 100 (se admiten recetas parciales).
type CompositionRow struct {
	ProductID  string
	MaterialID string
	ZoneHint   string // zona preferida para consumir el material, opcional
	Percentage decimal.Decimal
}

// MaterialDraw cantidad de un material a consumir.
type MaterialDraw struct {
	MaterialID string
	Quantity   decimal.Decimal
	ZoneHint   string
}
