package fulfillment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
)

func TestOutstanding(t *testing.T) {
	d := decimal.RequireFromString
	assert.True(t, d("40").Equal(Outstanding(d("100"), d("60"))))
	assert.True(t, Outstanding(d("100"), d("100")).IsZero())
	assert.True(t, Outstanding(d("100"), d("120")).IsZero(), "nunca negativo")
}

func TestLineStateOf(t *testing.T) {
	d := decimal.RequireFromString
	tests := []struct {
		name      string
		ordered   string
		delivered string
		want      entity.LineState
	}{
		{"sin entregas", "10", "0", entity.LineStateOpen},
		{"parcial", "10", "9.99", entity.LineStateOpen},
		{"completa", "10", "10", entity.LineStateFulfilled},
		{"dentro de tolerancia", "10", "9.9999999999", entity.LineStateFulfilled},
		{"excedida", "10", "11", entity.LineStateFulfilled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineStateOf(d(tt.ordered), d(tt.delivered)))
		})
	}
}

func TestStatusOf(t *testing.T) {
	open := LineView{State: entity.LineStateOpen}
	done := LineView{State: entity.LineStateFulfilled}

	assert.Equal(t, entity.OrderStatusPending, StatusOf(nil), "sin líneas queda PENDING")
	assert.Equal(t, entity.OrderStatusPending, StatusOf([]LineView{done, open}))
	assert.Equal(t, entity.OrderStatusDelivered, StatusOf([]LineView{done, done}))
}
