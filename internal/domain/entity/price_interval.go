package entity

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// PriceInterval precio de un producto para un cliente durante [ValidFrom, ValidTo].
// ValidTo es el último día vigente (inclusive); nil = intervalo abierto.
type PriceInterval struct {
	ID         string
	CustomerID string
	ProductID  string
	Price      decimal.Decimal
	Currency   string
	ValidFrom  civil.Date
	ValidTo    *civil.Date
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsOpen indica si el intervalo no tiene fecha de cierre.
func (p *PriceInterval) IsOpen() bool {
	return p.ValidTo == nil
}

// Covers indica si el día d está dentro del intervalo.
// ValidTo es inclusivo: un intervalo cerrado en at-1 y el siguiente desde at no dejan hueco.
func (p *PriceInterval) Covers(d civil.Date) bool {
	if d.Before(p.ValidFrom) {
		return false
	}
	return p.ValidTo == nil || !d.After(*p.ValidTo)
}

// SameTerms indica si precio y moneda coinciden.
func (p *PriceInterval) SameTerms(price decimal.Decimal, currency string) bool {
	return p.Price.Equal(price) && p.Currency == currency
}
