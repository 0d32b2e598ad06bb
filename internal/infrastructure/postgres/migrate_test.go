package postgres

import (
	"io/fs"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cordeleria-api/internal/domain"
)

var numericColumn = regexp.MustCompile(`NUMERIC\((\d+),\s*(\d+)\)`)

// Las columnas decimales deben guardar al menos la precisión de la tolerancia del dominio;
// si no, una cantidad aceptada como positiva se redondearía a cero al insertarse.
func TestMigrations_EscalaNumericaCubreTolerancia(t *testing.T) {
	minScale := int(-domain.Tolerance.Exponent())
	files, err := fs.Glob(migrationsFS, migrationsDir+"/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	found := 0
	for _, name := range files {
		raw, err := fs.ReadFile(migrationsFS, name)
		require.NoError(t, err)
		for _, m := range numericColumn.FindAllStringSubmatch(string(raw), -1) {
			scale, err := strconv.Atoi(m[2])
			require.NoError(t, err)
			assert.GreaterOrEqual(t, scale, minScale, "%s: %s", name, m[0])
			found++
		}
	}
	assert.Positive(t, found)
}
