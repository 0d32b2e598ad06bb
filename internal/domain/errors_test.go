package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cordeleria-api/internal/domain"
)

func TestKindOf_ErrorDeNegocio(t *testing.T) {
	err := fmt.Errorf("registrar entrega: %w", domain.Newf(domain.KindInvalidLine, "línea %s", "L1"))

	assert.Equal(t, domain.KindInvalidLine, domain.KindOf(err))
	assert.True(t, errors.Is(err, domain.ErrInvalidLine), "Unwrap expone el sentinel del tipo")
	assert.True(t, domain.IsBusiness(err))
}

func TestKindOf_SentinelEnvuelto(t *testing.T) {
	err := fmt.Errorf("repo: %w", domain.ErrConflict)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestKindOf_ErrorInesperado(t *testing.T) {
	assert.Equal(t, domain.Kind(""), domain.KindOf(errors.New("conexión cerrada")))
	assert.Equal(t, domain.Kind(""), domain.KindOf(nil))
	assert.False(t, domain.IsBusiness(errors.New("no autorizado")))
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "NO_EFFECTIVE_PRICE", domain.KindLabel(domain.Newf(domain.KindNoEffectivePrice, "sin precio")))
	assert.Equal(t, "NOT_FOUND", domain.KindLabel(domain.ErrNotFound))
	assert.Empty(t, domain.KindLabel(errors.New("conexión cerrada")))
}

func TestOverDelivery_AdjuntaPendiente(t *testing.T) {
	err := domain.OverDelivery("L1", decimal.NewFromInt(30), decimal.NewFromInt(20))

	require.NotNil(t, err.Outstanding)
	assert.True(t, decimal.NewFromInt(20).Equal(*err.Outstanding))
	assert.Equal(t, domain.KindOverDelivery, err.Kind)
	assert.Contains(t, err.Error(), "OVER_DELIVERY")
}

func TestKinds_ConjuntoCerrado(t *testing.T) {
	kinds := domain.Kinds()
	assert.Len(t, kinds, 10)
	seen := map[domain.Kind]bool{}
	for _, k := range kinds {
		assert.False(t, seen[k], "tipo repetido %s", k)
		seen[k] = true
		assert.Equal(t, k, domain.KindOf(domain.Newf(k, "x")))
	}
}

func TestNormalizeCurrency(t *testing.T) {
	got, err := domain.NormalizeCurrency(" usd ", "")
	require.NoError(t, err)
	assert.Equal(t, "USD", got)

	got, err = domain.NormalizeCurrency("", "")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCurrency, got)

	got, err = domain.NormalizeCurrency("", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "EUR", got)

	_, err = domain.NormalizeCurrency("XYZW", "")
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
}

func TestTolerancia(t *testing.T) {
	assert.True(t, domain.IsNegligible(decimal.New(1, -10)))
	assert.False(t, domain.IsPositive(decimal.New(1, -10)))
	assert.True(t, domain.IsPositive(decimal.New(1, -2)))
	assert.False(t, domain.Exceeds(decimal.RequireFromString("10.0000000001"), decimal.NewFromInt(10)))
	assert.True(t, domain.Exceeds(decimal.RequireFromString("10.01"), decimal.NewFromInt(10)))
}
