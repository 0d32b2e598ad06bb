package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Resultados que no son un tipo de error de negocio.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Classifier etiqueta de resultado para un error no nil. "" equivale a ResultError.
type Classifier func(err error) string

// CoreMetrics métricas de las operaciones del núcleo (consumo, entregas, precios).
// Todos los métodos aceptan receptor nil.
type CoreMetrics struct {
	classify     Classifier
	operations   *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	lotsDrawn    prometheus.Counter
	priceActions *prometheus.CounterVec
}

// NewCoreMetrics registra las métricas en reg. Con reg nil devuelve un recolector mudo.
// classify distingue los errores esperados en la etiqueta result; nil los cuenta como error.
func NewCoreMetrics(reg prometheus.Registerer, classify Classifier) *CoreMetrics {
	if reg == nil {
		return &CoreMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "core_operations_total",
		Help: "Operaciones del núcleo por resultado (ok, tipo de error de negocio o error).",
	}, []string{"operation", "result"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "core_operation_duration_seconds",
		Help:    "Duración de las operaciones del núcleo en segundos.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	lotsDrawn := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fifo_lots_drawn_total",
		Help: "Lotes consumidos por el motor FIFO.",
	})
	priceActions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "price_upsert_actions_total",
		Help: "Casos aplicados al registrar precios vigentes.",
	}, []string{"action"})
	reg.MustRegister(operations, duration, lotsDrawn, priceActions)
	return &CoreMetrics{
		classify:     classify,
		operations:   operations,
		duration:     duration,
		lotsDrawn:    lotsDrawn,
		priceActions: priceActions,
	}
}

// Observe registra duración y resultado de una operación.
func (m *CoreMetrics) Observe(operation string, started time.Time, err error) {
	if m == nil || m.operations == nil {
		return
	}
	m.duration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
	m.operations.WithLabelValues(operation, m.result(err)).Inc()
}

// AddLotsDrawn suma lotes consumidos.
func (m *CoreMetrics) AddLotsDrawn(n int) {
	if m == nil || m.lotsDrawn == nil || n <= 0 {
		return
	}
	m.lotsDrawn.Add(float64(n))
}

// IncPriceAction cuenta un caso de upsert de precio.
func (m *CoreMetrics) IncPriceAction(action string) {
	if m == nil || m.priceActions == nil {
		return
	}
	m.priceActions.WithLabelValues(action).Inc()
}

// result etiqueta de resultado para err.
func (m *CoreMetrics) result(err error) string {
	if err == nil {
		return ResultOK
	}
	if m.classify != nil {
		if label := m.classify(err); label != "" {
			return label
		}
	}
	return ResultError
}
