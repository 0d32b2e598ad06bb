package domain

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultCurrency moneda usada cuando una entrega, compra o precio no la especifica.
const DefaultCurrency = "PEN"

// Tolerance tolerancia absoluta para comparar cantidades y porcentajes.
var Tolerance = decimal.New(1, -9)

// Hundred 100 como decimal (porcentajes).
var Hundred = decimal.NewFromInt(100)

// IsPositive indica si q supera la tolerancia.
func IsPositive(q decimal.Decimal) bool {
	return q.GreaterThan(Tolerance)
}

// IsNegligible indica si |q| no supera la tolerancia.
func IsNegligible(q decimal.Decimal) bool {
	return q.Abs().LessThanOrEqual(Tolerance)
}

// Exceeds indica si a > b + tolerancia.
func Exceeds(a, b decimal.Decimal) bool {
	return a.GreaterThan(b.Add(Tolerance))
}

// NormalizeCurrency devuelve el código ISO 4217 en mayúsculas; vacío equivale a la moneda por defecto.
func NormalizeCurrency(code, fallback string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		code = fallback
	}
	if code == "" {
		code = DefaultCurrency
	}
	unit, err := currency.ParseISO(strings.ToUpper(code))
	if err != nil {
		return "", Newf(KindInvalidInput, "moneda %q no reconocida", code)
	}
	return unit.String(), nil
}
