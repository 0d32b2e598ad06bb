package recipe_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cordeleria-api/internal/application/recipe"
	"github.com/jhoicas/Cordeleria-api/internal/domain"
	"github.com/jhoicas/Cordeleria-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func row(material, pct string) *entity.CompositionRow {
	return &entity.CompositionRow{ProductID: "X", MaterialID: material, Percentage: d(pct)}
}

// Receta parcial M1 60 % y M2 30 %: producir 50 kg consume 30 y 15 (45 ≤ 50).
func TestPlan_RecetaParcial(t *testing.T) {
	draws, err := recipe.Plan([]*entity.CompositionRow{row("M1", "60"), row("M2", "30")}, d("50"), nil)
	require.NoError(t, err)

	require.Len(t, draws, 2)
	assert.Equal(t, "M1", draws[0].MaterialID)
	assert.True(t, d("30").Equal(draws[0].Quantity))
	assert.Equal(t, "M2", draws[1].MaterialID)
	assert.True(t, d("15").Equal(draws[1].Quantity))
	assert.True(t, d("45").Equal(recipe.Total(draws)))
}

func TestPlan_FilasEnCeroSeDescartan(t *testing.T) {
	draws, err := recipe.Plan([]*entity.CompositionRow{row("M1", "100"), row("M2", "0")}, d("10"), nil)
	require.NoError(t, err)
	require.Len(t, draws, 1)
	assert.Equal(t, "M1", draws[0].MaterialID)
}

func TestPlan_SinRecetaNiListaManual(t *testing.T) {
	_, err := recipe.Plan(nil, d("10"), nil)
	assert.Equal(t, domain.KindInvalidComposition, domain.KindOf(err))

	_, err = recipe.Plan([]*entity.CompositionRow{row("M1", "0")}, d("10"), nil)
	assert.Equal(t, domain.KindInvalidComposition, domain.KindOf(err), "una receta que no genera consumo se rechaza")
}

func TestPlan_CantidadNoPositiva(t *testing.T) {
	_, err := recipe.Plan([]*entity.CompositionRow{row("M1", "50")}, d("0"), nil)
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Lista manual
// ──────────────────────────────────────────────────────────────────────────────

func TestPlan_ListaManualReemplazaReceta(t *testing.T) {
	manual := []entity.MaterialDraw{
		{MaterialID: "M3", Quantity: d("4")},
		{MaterialID: "M1", Quantity: d("2")},
		{MaterialID: "M3", Quantity: d("1.5")},
	}
	draws, err := recipe.Plan([]*entity.CompositionRow{row("M1", "60")}, d("10"), manual)
	require.NoError(t, err)

	require.Len(t, draws, 2, "los materiales repetidos se agrupan")
	assert.Equal(t, "M3", draws[0].MaterialID)
	assert.True(t, d("5.5").Equal(draws[0].Quantity))
	assert.True(t, d("2").Equal(draws[1].Quantity))
}

func TestPlan_ListaManualInvalida(t *testing.T) {
	_, err := recipe.Plan(nil, d("10"), []entity.MaterialDraw{{MaterialID: "M1", Quantity: d("10.5")}})
	assert.Equal(t, domain.KindInvalidComposition, domain.KindOf(err), "no puede superar lo producido")

	_, err = recipe.Plan(nil, d("10"), []entity.MaterialDraw{{MaterialID: "M1", Quantity: d("-1")}})
	assert.Equal(t, domain.KindInvalidComposition, domain.KindOf(err))

	_, err = recipe.Plan(nil, d("10"), []entity.MaterialDraw{{MaterialID: "M1", Quantity: d("0")}})
	assert.Equal(t, domain.KindInvalidComposition, domain.KindOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidateRows
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateRows(t *testing.T) {
	assert.NoError(t, recipe.ValidateRows([]recipe.RowInput{
		{MaterialID: "M1", Percentage: d("60")},
		{MaterialID: "M2", Percentage: d("40")},
	}))
	assert.NoError(t, recipe.ValidateRows(nil), "receta vacía permitida")

	err := recipe.ValidateRows([]recipe.RowInput{
		{MaterialID: "M1", Percentage: d("70")},
		{MaterialID: "M1", Percentage: d("20")},
		{MaterialID: "M2", Percentage: d("120")},
	})
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidComposition, domain.KindOf(err))
	assert.Contains(t, err.Error(), "repetido")
	assert.Contains(t, err.Error(), "fuera de [0,100]")
	assert.Contains(t, err.Error(), "supera 100")
}
