package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one ETL run.
// Each instance owns its registry, so a one-shot process can dump it to a
// node_exporter textfile and tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	ExtractFailures *prometheus.CounterVec
	TransformErrors prometheus.Counter
	LoadErrors      prometheus.Counter
	RecordsLoaded   prometheus.Counter
	RunDuration     prometheus.Histogram
	LastSuccess     prometheus.Gauge
}

// NewMetrics creates all pipeline metrics and registers them with a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ExtractFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "etl",
			Name:      "extract_failures_total",
			Help:      "Extraction failures by reason.",
		}, []string{"reason"}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "etl",
			Name:      "transform_errors_total",
			Help:      "Total transformation failures.",
		}),
		LoadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "etl",
			Name:      "load_errors_total",
			Help:      "Total failures writing a record to a sink.",
		}),
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "etl",
			Name:      "records_loaded_total",
			Help:      "Total position records appended.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "etl",
			Name:      "run_duration_seconds",
			Help:      "Duration of a single extract-transform-load run.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "etl",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last run that loaded a record.",
		}),
	}

	m.Registry.MustRegister(
		m.ExtractFailures,
		m.TransformErrors,
		m.LoadErrors,
		m.RecordsLoaded,
		m.RunDuration,
		m.LastSuccess,
	)

	return m
}

// WriteTextfile atomically writes every registered metric to path in the
// text exposition format read by node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
