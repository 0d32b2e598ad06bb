package pricing_test

import (
	"context"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cordeleria-api/internal/application/pricing"
	"github.com/jhoicas/Cordeleria-api/internal/domain"
	domainpricing "github.com/jhoicas/Cordeleria-api/internal/domain/pricing"
	"github.com/jhoicas/Cordeleria-api/internal/infrastructure/memory"
)

func day(s string) civil.Date {
	d, err := civil.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newService() *pricing.Service {
	store := memory.NewStore()
	store.AddProduct("P")
	return pricing.NewService(store, "", nil)
}

func upsert(t *testing.T, svc *pricing.Service, price int64, at string) *pricing.UpsertResult {
	t.Helper()
	res, err := svc.UpsertPrice(context.Background(), pricing.UpsertInput{
		CustomerID: "C", ProductID: "P", Price: decimal.NewFromInt(price), At: day(at),
	})
	require.NoError(t, err)
	return res
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestUpsertPrice_CambioDePrecioCierraElAnterior(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	first := upsert(t, svc, 8, "2024-01-01")
	assert.Equal(t, domainpricing.ActionInsertOpen, first.Action)
	assert.Equal(t, domain.DefaultCurrency, first.Interval.Currency)

	second := upsert(t, svc, 10, "2024-03-01")
	assert.Equal(t, domainpricing.ActionCloseAndInsert, second.Action)
	assert.Nil(t, second.Interval.ValidTo)

	feb, err := svc.ResolvePrice(ctx, "C", "P", day("2024-02-15"))
	require.NoError(t, err)
	require.NotNil(t, feb)
	assert.True(t, decimal.NewFromInt(8).Equal(feb.Price))
	require.NotNil(t, feb.ValidTo)
	assert.Equal(t, day("2024-02-29"), *feb.ValidTo)

	mar, err := svc.ResolvePrice(ctx, "C", "P", day("2024-03-01"))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(mar.Price))

	history, err := svc.PriceHistory(ctx, "C", "P")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].ValidFrom.Before(history[1].ValidFrom))
}

func TestUpsertPrice_Idempotente(t *testing.T) {
	svc := newService()
	upsert(t, svc, 8, "2024-01-01")

	again := upsert(t, svc, 8, "2024-02-01")
	assert.Equal(t, domainpricing.ActionNoop, again.Action)
	require.NotNil(t, again.Interval)
	assert.Equal(t, day("2024-01-01"), again.Interval.ValidFrom)

	history, err := svc.PriceHistory(context.Background(), "C", "P")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestUpsertPrice_MismoDiaActualiza(t *testing.T) {
	svc := newService()
	first := upsert(t, svc, 8, "2024-01-01")

	res := upsert(t, svc, 9, "2024-01-01")
	assert.Equal(t, domainpricing.ActionUpdateInPlace, res.Action)
	assert.Equal(t, first.Interval.ID, res.Interval.ID)
}

func TestUpsertPrice_Retroactivo(t *testing.T) {
	svc := newService()
	upsert(t, svc, 8, "2024-03-01")

	res := upsert(t, svc, 7, "2024-01-15")
	assert.Equal(t, domainpricing.ActionInsertBounded, res.Action)
	require.NotNil(t, res.Interval.ValidTo)
	assert.Equal(t, day("2024-02-29"), *res.Interval.ValidTo)
}

func TestUpsertPrice_EntradaInvalida(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.UpsertPrice(ctx, pricing.UpsertInput{CustomerID: "C", ProductID: "P", Price: decimal.Zero, At: day("2024-01-01")})
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))

	_, err = svc.UpsertPrice(ctx, pricing.UpsertInput{CustomerID: "C", ProductID: "P", Price: decimal.NewFromInt(1), Currency: "ZZZZ", At: day("2024-01-01")})
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))

	_, err = svc.UpsertPrice(ctx, pricing.UpsertInput{CustomerID: "C", ProductID: "Q", Price: decimal.NewFromInt(1), At: day("2024-01-01")})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = svc.UpsertPrice(ctx, pricing.UpsertInput{CustomerID: "", ProductID: "P", Price: decimal.NewFromInt(1), At: day("2024-01-01")})
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
}

func TestResolvePrice_SinPrecio(t *testing.T) {
	svc := newService()

	got, err := svc.ResolvePrice(context.Background(), "C", "P", day("2024-01-01"))
	require.NoError(t, err)
	assert.Nil(t, got)
}
