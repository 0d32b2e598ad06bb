package fulfillment_test

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cordeleria-api/internal/application/fulfillment"
	"github.com/jhoicas/Cordeleria-api/internal/application/pricing"
	"github.com/jhoicas/Cordeleria-api/internal/domain/repository"
	"github.com/jhoicas/Cordeleria-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dec(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func day(s string) *civil.Date {
	v, err := civil.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &v
}

type fixture struct {
	store      *memory.Store
	orders     *fulfillment.OrderUseCase
	deliveries *fulfillment.DeliveryUseCase
	prices     *pricing.Service
}

func newFixture() *fixture {
	store := memory.NewStore()
	store.SeedDefaultZones()
	store.AddProduct("P1")
	store.AddProduct("P2")
	return &fixture{
		store:      store,
		orders:     fulfillment.NewOrderUseCase(store, nil),
		deliveries: fulfillment.NewDeliveryUseCase(store, nil, nil, ""),
		prices:     pricing.NewService(store, "", nil),
	}
}

func (f *fixture) setPrice(t *testing.T, customer, product, price, currency, from string) {
	t.Helper()
	_, err := f.prices.UpsertPrice(context.Background(), pricing.UpsertInput{
		CustomerID: customer, ProductID: product, Price: d(price), Currency: currency, At: *day(from),
	})
	require.NoError(t, err)
}

// order crea un pedido del cliente C con una línea por cantidad, alternando P1 y P2.
func (f *fixture) order(t *testing.T, quantities ...string) (*fulfillment.OrderView, []string) {
	t.Helper()
	products := []string{"P1", "P2"}
	lines := make([]fulfillment.OrderLineInput, 0, len(quantities))
	for i, q := range quantities {
		lines = append(lines, fulfillment.OrderLineInput{ProductID: products[i%2], Quantity: d(q)})
	}
	view, err := f.orders.CreateOrder(context.Background(), fulfillment.CreateOrderInput{CustomerID: "C", Lines: lines})
	require.NoError(t, err)
	ids := make([]string, 0, len(view.Lines))
	for _, l := range view.Lines {
		ids = append(ids, l.Line.ID)
	}
	return view, ids
}

func (f *fixture) deliver(orderID string, date string, lines ...fulfillment.DeliveryLineInput) (*fulfillment.DeliveryView, error) {
	return f.deliveries.CreateDelivery(context.Background(), fulfillment.CreateDeliveryInput{
		UserID: "u1", OrderID: orderID, Lines: lines, Date: day(date),
	})
}

func line(id, qty string) fulfillment.DeliveryLineInput {
	return fulfillment.DeliveryLineInput{OrderLineID: id, Quantity: d(qty)}
}

// flakyRunner delega en el almacén pero falla a partir de la llamada número failFrom.
type flakyRunner struct {
	inner    repository.TxRunner
	calls    int
	failFrom int
}

var errUnavailable = errors.New("base de datos no disponible")

func (r *flakyRunner) Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	r.calls++
	if r.failFrom > 0 && r.calls >= r.failFrom {
		return errUnavailable
	}
	return r.inner.Run(ctx, fn)
}
