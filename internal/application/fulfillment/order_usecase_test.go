package fulfillment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cordeleria-api/internal/application/fulfillment"
	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Alta y consulta
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_Pendiente(t *testing.T) {
	f := newFixture()
	view, ids := f.order(t, "100", "20")

	assert.Equal(t, entity.OrderStatusPending, view.Order.Status)
	require.Len(t, ids, 2)
	for _, l := range view.Lines {
		assert.Equal(t, entity.LineStateOpen, l.State)
		assert.True(t, l.Delivered.IsZero())
		assert.True(t, l.Line.OrderedQuantity.Equal(l.Outstanding))
	}

	got, err := f.orders.GetOrder(context.Background(), view.Order.ID)
	require.NoError(t, err)
	assert.Len(t, got.Lines, 2)
}

func TestCreateOrder_Invalido(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.orders.CreateOrder(ctx, fulfillment.CreateOrderInput{CustomerID: "C"})
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))

	_, err = f.orders.CreateOrder(ctx, fulfillment.CreateOrderInput{
		CustomerID: "C",
		Lines:      []fulfillment.OrderLineInput{{ProductID: "P1", Quantity: d("0")}},
	})
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))

	_, err = f.orders.CreateOrder(ctx, fulfillment.CreateOrderInput{
		CustomerID: "C",
		Lines: []fulfillment.OrderLineInput{
			{ProductID: "P1", Quantity: d("5")},
			{ProductID: "NO-EXISTE", Quantity: d("5")},
		},
	})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = f.orders.GetOrder(ctx, "no-existe")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestGetOrder_EntregadoYPendiente(t *testing.T) {
	f := newFixture()
	f.setPrice(t, "C", "P1", "1", "", "2024-01-01")
	o, ids := f.order(t, "100")

	_, err := f.deliver(o.Order.ID, "2024-02-01", line(ids[0], "30"))
	require.NoError(t, err)
	_, err = f.deliver(o.Order.ID, "2024-02-03", line(ids[0], "25.5"))
	require.NoError(t, err)

	got, err := f.orders.GetOrder(context.Background(), o.Order.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.True(t, d("55.5").Equal(got.Lines[0].Delivered))
	assert.True(t, d("44.5").Equal(got.Lines[0].Outstanding))
	assert.Equal(t, entity.LineStateOpen, got.Lines[0].State)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición de líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateOrderLineQuantity(t *testing.T) {
	f := newFixture()
	f.setPrice(t, "C", "P1", "1", "", "2024-01-01")
	o, ids := f.order(t, "10")
	ctx := context.Background()

	// sin entregas se puede reducir
	view, err := f.orders.UpdateOrderLineQuantity(ctx, ids[0], d("8"))
	require.NoError(t, err)
	assert.True(t, d("8").Equal(view.Outstanding))

	_, err = f.deliver(o.Order.ID, "2024-02-01", line(ids[0], "8"))
	require.NoError(t, err)
	got, err := f.orders.GetOrder(ctx, o.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, got.Order.Status)

	_, err = f.orders.UpdateOrderLineQuantity(ctx, ids[0], d("7"))
	assert.Equal(t, domain.KindConflict, domain.KindOf(err), "con entregas no se puede reducir")

	// ampliar reabre la línea y el pedido vuelve a PENDING
	view, err = f.orders.UpdateOrderLineQuantity(ctx, ids[0], d("12"))
	require.NoError(t, err)
	assert.Equal(t, entity.LineStateOpen, view.State)
	assert.True(t, d("4").Equal(view.Outstanding))
	got, err = f.orders.GetOrder(ctx, o.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, got.Order.Status)

	_, err = f.orders.UpdateOrderLineQuantity(ctx, ids[0], d("0"))
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
	_, err = f.orders.UpdateOrderLineQuantity(ctx, "no-existe", d("1"))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestDeleteOrderLine(t *testing.T) {
	f := newFixture()
	f.setPrice(t, "C", "P1", "1", "", "2024-01-01")
	o, ids := f.order(t, "10", "5")
	ctx := context.Background()

	_, err := f.deliver(o.Order.ID, "2024-02-01", line(ids[0], "10"))
	require.NoError(t, err)

	err = f.orders.DeleteOrderLine(ctx, ids[0])
	assert.Equal(t, domain.KindConflict, domain.KindOf(err), "la línea tiene entregas")

	// la única línea abierta desaparece: el pedido queda entregado
	require.NoError(t, f.orders.DeleteOrderLine(ctx, ids[1]))
	got, err := f.orders.GetOrder(ctx, o.Order.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, entity.OrderStatusDelivered, got.Order.Status)

	err = f.orders.DeleteOrderLine(ctx, ids[1])
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
