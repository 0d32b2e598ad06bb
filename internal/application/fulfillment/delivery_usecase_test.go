package fulfillment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cordeleria-api/internal/application/fulfillment"
	"github.com/jhoicas/Cordeleria-api/internal/application/inventory"
	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Control de pendiente
// ──────────────────────────────────────────────────────────────────────────────

// Línea de 100 kg ya entregada por completo: otros 0.01 kg se rechazan.
func TestCreateDelivery_LineaCompletaRechazaMas(t *testing.T) {
	f := newFixture()
	f.setPrice(t, "C", "P1", "4.5", "", "2024-01-01")
	o, ids := f.order(t, "100")

	_, err := f.deliver(o.Order.ID, "2024-02-01", line(ids[0], "100"))
	require.NoError(t, err)

	_, err = f.deliver(o.Order.ID, "2024-02-02", line(ids[0], "0.01"))
	assert.Equal(t, domain.KindAlreadyFulfilled, domain.KindOf(err))
}

func TestCreateDelivery_ExcesoInformaPendiente(t *testing.T) {
	f := newFixture()
	f.setPrice(t, "C", "P1", "4.5", "", "2024-01-01")
	o, ids := f.order(t, "100")

	_, err := f.deliver(o.Order.ID, "2024-02-01", line(ids[0], "80"))
	require.NoError(t, err)

	_, err = f.deliver(o.Order.ID, "2024-02-02", line(ids[0], "30"))
	require.Error(t, err)
	assert.Equal(t, domain.KindOverDelivery, domain.KindOf(err))
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	require.NotNil(t, de.Outstanding)
	assert.True(t, d("20").Equal(*de.Outstanding))
}

func TestCreateDelivery_LineasRepetidasSeAcumulan(t *testing.T) {
	f := newFixture()
	f.setPrice(t, "C", "P1", "2", "", "2024-01-01")
	o, ids := f.order(t, "10")

	_, err := f.deliver(o.Order.ID, "2024-02-01", line(ids[0], "6"), line(ids[0], "6"))
	assert.Equal(t, domain.KindOverDelivery, domain.KindOf(err), "6 + 6 supera el pendiente de 10")

	view, err := f.deliver(o.Order.ID, "2024-02-01", line(ids[0], "4"), line(ids[0], "6"))
	require.NoError(t, err)
	assert.Len(t, view.Lines, 2, "cada entrada genera su propia línea")
	assert.Equal(t, entity.OrderStatusDelivered, view.OrderStatus)
}

func TestCreateDelivery_ToleranciaDecimal(t *testing.T) {
	f := newFixture()
	f.setPrice(t, "C", "P1", "2", "", "2024-01-01")
	o, ids := f.order(t, "0.3")

	_, err := f.deliver(o.Order.ID, "2024-02-01", line(ids[0], "0.1"), line(ids[0], "0.2"))
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Líneas inválidas y atomicidad
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateDelivery_LineaDeOtroPedido(t *testing.T) {
	f := newFixture()
	f.setPrice(t, "C", "P1", "2", "", "2024-01-01")
	o1, ids1 := f.order(t, "10")
	_, ids2 := f.order(t, "10")

	_, err := f.deliver(o1.Order.ID, "2024-02-01", line(ids1[0], "1"), line(ids2[0], "1"))
	assert.Equal(t, domain.KindInvalidLine, domain.KindOf(err))

	_, err = f.deliver(o1.Order.ID, "2024-02-01", line("no-existe", "1"))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = f.deliver("no-existe", "2024-02-01", line(ids1[0], "1"))
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	got, err := f.orders.GetOrder(context.Background(), o1.Order.ID)
	require.NoError(t, err)
	assert.True(t, got.Lines[0].Delivered.IsZero(), "las entregas rechazadas no dejan rastro")
}

func TestCreateDelivery_SinPrecioVigenteNoRegistraNada(t *testing.T) {
	f := newFixture()
	f.setPrice(t, "C", "P1", "2", "", "2024-01-01")
	o, ids := f.order(t, "10", "10")

	_, err := f.deliver(o.Order.ID, "2024-02-01", line(ids[0], "5"), line(ids[1], "5"))
	assert.Equal(t, domain.KindNoEffectivePrice, domain.KindOf(err), "P2 no tiene precio")

	amounts, err := f.deliveries.CustomerReceivables(context.Background(), "C")
	require.NoError(t, err)
	assert.Empty(t, amounts)
}

// ──────────────────────────────────────────────────────────────────────────────
// Precios
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateDelivery_PrecioSegunFechaEfectiva(t *testing.T) {
	f := newFixture()
	f.setPrice(t, "C", "P1", "8", "", "2024-01-01")
	f.setPrice(t, "C", "P1", "10", "", "2024-03-01")
	o, ids := f.order(t, "100")

	feb, err := f.deliver(o.Order.ID, "2024-02-15", line(ids[0], "10"))
	require.NoError(t, err)
	assert.True(t, d("8").Equal(feb.Lines[0].UnitPrice))
	assert.Equal(t, "PEN", feb.Lines[0].Currency)

	mar, err := f.deliver(o.Order.ID, "2024-03-01", line(ids[0], "10"))
	require.NoError(t, err)
	assert.True(t, d("10").Equal(mar.Lines[0].UnitPrice))
}

func TestCreateDelivery_PrecioDelLlamadorGana(t *testing.T) {
	f := newFixture()
	f.setPrice(t, "C", "P1", "8", "USD", "2024-01-01")
	o, ids := f.order(t, "10", "10")

	view, err := f.deliver(o.Order.ID, "2024-02-01",
		fulfillment.DeliveryLineInput{OrderLineID: ids[0], Quantity: d("2"), UnitPrice: dec("7.5")},
		fulfillment.DeliveryLineInput{OrderLineID: ids[1], Quantity: d("1"), UnitPrice: dec("0")},
	)
	require.NoError(t, err, "con precio explícito no hace falta precio vigente")
	assert.True(t, d("7.5").Equal(view.Lines[0].UnitPrice))
	assert.Equal(t, "PEN", view.Lines[0].Currency, "precio explícito sin moneda usa la moneda por defecto")
	assert.True(t, view.Lines[1].UnitPrice.IsZero())

	_, err = f.deliver(o.Order.ID, "2024-02-01",
		fulfillment.DeliveryLineInput{OrderLineID: ids[0], Quantity: d("1"), UnitPrice: dec("-1")})
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))

	resolved, err := f.deliver(o.Order.ID, "2024-02-01", line(ids[0], "1"))
	require.NoError(t, err)
	assert.Equal(t, "USD", resolved.Lines[0].Currency, "sin precio explícito se toma la moneda del intervalo")
}

func TestCustomerReceivables_PorMoneda(t *testing.T) {
	f := newFixture()
	f.setPrice(t, "C", "P1", "2.5", "", "2024-01-01")
	f.setPrice(t, "C", "P2", "3", "USD", "2024-01-01")
	o, ids := f.order(t, "10", "10")

	_, err := f.deliver(o.Order.ID, "2024-02-01", line(ids[0], "4"), line(ids[1], "2"))
	require.NoError(t, err)
	_, err = f.deliver(o.Order.ID, "2024-02-02", line(ids[0], "2"))
	require.NoError(t, err)

	amounts, err := f.deliveries.CustomerReceivables(context.Background(), "C")
	require.NoError(t, err)
	require.Len(t, amounts, 2)
	assert.Equal(t, "PEN", amounts[0].Currency)
	assert.True(t, d("15").Equal(amounts[0].Amount))
	assert.Equal(t, "USD", amounts[1].Currency)
	assert.True(t, d("6").Equal(amounts[1].Amount))
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado del pedido
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateDelivery_EstadoDelPedido(t *testing.T) {
	f := newFixture()
	f.setPrice(t, "C", "P1", "1", "", "2024-01-01")
	f.setPrice(t, "C", "P2", "1", "", "2024-01-01")
	o, ids := f.order(t, "10", "5")

	first, err := f.deliver(o.Order.ID, "2024-02-01", line(ids[0], "10"))
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, first.OrderStatus)

	second, err := f.deliver(o.Order.ID, "2024-02-02", line(ids[1], "5"))
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, second.OrderStatus)

	got, err := f.deliveries.GetDelivery(context.Background(), second.Delivery.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, got.OrderStatus)
	require.Len(t, got.Lines, 1)
}

func TestCreateDelivery_FalloAlRecalcularEstadoNoRevierte(t *testing.T) {
	f := newFixture()
	f.setPrice(t, "C", "P1", "1", "", "2024-01-01")
	o, ids := f.order(t, "10")

	runner := &flakyRunner{inner: f.store, failFrom: 2}
	uc := fulfillment.NewDeliveryUseCase(runner, nil, nil, "")

	view, err := uc.CreateDelivery(context.Background(), fulfillment.CreateDeliveryInput{
		OrderID: o.Order.ID, Lines: []fulfillment.DeliveryLineInput{line(ids[0], "10")}, Date: day("2024-02-01"),
	})
	require.NoError(t, err, "la entrega ya está confirmada")
	assert.Equal(t, entity.OrderStatusPending, view.OrderStatus, "estado previo al recálculo")

	status, err := f.deliveries.RecomputeOrderStatus(context.Background(), o.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, status, "un recálculo posterior corrige el estado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Despacho desde almacén
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateDelivery_DescuentaStockDelAlmacen(t *testing.T) {
	f := newFixture()
	f.setPrice(t, "C", "P1", "1", "", "2024-01-01")
	o, ids := f.order(t, "10")
	require.NoError(t, f.store.Run(context.Background(), func(uow repository.UnitOfWork) error {
		_, err := inventory.Post(context.Background(), uow.Ledger, inventory.PostInput{
			ItemKind: entity.ItemKindProduct, ItemID: "P1", ZoneID: "ALMACEN", Quantity: d("6"),
		})
		return err
	}))

	dispatch := func(qty string) error {
		_, err := f.deliveries.CreateDelivery(context.Background(), fulfillment.CreateDeliveryInput{
			OrderID: o.Order.ID, Lines: []fulfillment.DeliveryLineInput{line(ids[0], qty)},
			Date: day("2024-02-01"), ZoneID: "ALMACEN",
		})
		return err
	}

	require.NoError(t, dispatch("4"))
	assert.Equal(t, domain.KindInsufficientStock, domain.KindOf(dispatch("3")))

	balance, err := f.store.Repositories().Ledger.Balance(context.Background(), entity.ItemKindProduct, "P1", "ALMACEN")
	require.NoError(t, err)
	assert.True(t, d("2").Equal(balance))

	_, err = f.deliveries.CreateDelivery(context.Background(), fulfillment.CreateDeliveryInput{
		OrderID: o.Order.ID, Lines: []fulfillment.DeliveryLineInput{line(ids[0], "1")},
		Date: day("2024-02-01"), ZoneID: "PLANTA",
	})
	assert.Equal(t, domain.KindZoneRejected, domain.KindOf(err))
}
