package metrics

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errOverDelivery = errors.New("excede el pendiente")

// classifyTest reconoce un único error esperado.
func classifyTest(err error) string {
	if errors.Is(err, errOverDelivery) {
		return "OVER_DELIVERY"
	}
	return ""
}

func TestResult(t *testing.T) {
	m := &CoreMetrics{classify: classifyTest}
	assert.Equal(t, ResultOK, m.result(nil))
	assert.Equal(t, ResultError, m.result(errors.New("conexión perdida")))
	assert.Equal(t, "OVER_DELIVERY", m.result(fmt.Errorf("entrega: %w", errOverDelivery)))

	plain := &CoreMetrics{}
	assert.Equal(t, ResultError, plain.result(errOverDelivery), "sin clasificador todo error es error")
}

func TestCoreMetrics_NilSeguro(t *testing.T) {
	var m *CoreMetrics
	assert.NotPanics(t, func() {
		m.Observe("create_delivery", time.Now(), nil)
		m.AddLotsDrawn(3)
		m.IncPriceAction("NOOP")
	})

	mute := NewCoreMetrics(nil, nil)
	assert.NotPanics(t, func() {
		mute.Observe("create_delivery", time.Now(), nil)
		mute.AddLotsDrawn(3)
	})
}

func TestCoreMetrics_Registra(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCoreMetrics(reg, classifyTest)

	m.Observe("create_delivery", time.Now(), nil)
	m.Observe("create_delivery", time.Now(), errOverDelivery)
	m.AddLotsDrawn(0)
	m.AddLotsDrawn(2)

	expected := `
# HELP core_operations_total Operaciones del núcleo por resultado (ok, tipo de error de negocio o error).
# TYPE core_operations_total counter
core_operations_total{operation="create_delivery",result="OVER_DELIVERY"} 1
core_operations_total{operation="create_delivery",result="ok"} 1
# HELP fifo_lots_drawn_total Lotes consumidos por el motor FIFO.
# TYPE fifo_lots_drawn_total counter
fifo_lots_drawn_total 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"core_operations_total", "fifo_lots_drawn_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}
