// Package metrics contadores Prometheus del catálogo sobre un registro propio. No hay endpoint
// HTTP: las métricas se vuelcan a un archivo de texto para el textfile collector de node_exporter.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// Resultados usados como etiqueta outcome.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeMissing  = "required_missing"
	OutcomeError    = "error"
)

// Metrics colectores del catálogo. Un *Metrics nil no registra nada.
type Metrics struct {
	reg *prometheus.Registry

	schemaResolutions *prometheus.CounterVec
	validations       *prometheus.CounterVec
	productsCreated   prometheus.Counter
	txAborted         prometheus.Counter
	chainDepth        prometheus.Histogram
}

// New crea los colectores en un registro nuevo.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		schemaResolutions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schema_resolutions_total",
			Help:      "Resoluciones de esquema efectivo por resultado",
		}, []string{"outcome"}),
		validations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Validaciones de producto por resultado",
		}, []string{"outcome"}),
		productsCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "products_created_total",
			Help:      "Productos confirmados",
		}),
		txAborted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_aborted_total",
			Help:      "Transacciones de escritura descartadas",
		}),
		chainDepth: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "schema_chain_depth",
			Help:      "Categorías recorridas por resolución",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
		}),
	}
}

// Registry registro con todos los colectores.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// SchemaResolved registra una resolución; depth solo cuenta si outcome es OutcomeOK.
func (m *Metrics) SchemaResolved(outcome string, depth int) {
	if m == nil {
		return
	}
	m.schemaResolutions.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		m.chainDepth.Observe(float64(depth))
	}
}

func (m *Metrics) Validated(outcome string) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ProductCreated() {
	if m == nil {
		return
	}
	m.productsCreated.Inc()
}

func (m *Metrics) TransactionAborted() {
	if m == nil {
		return
	}
	m.txAborted.Inc()
}

// WriteTextfile vuelca el registro en formato de exposición de texto (escritura atómica).
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.reg)
}
