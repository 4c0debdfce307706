package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// report pipeline.
type Metrics struct {
	ObservationsRead prometheus.Counter
	LaborForceRows   prometheus.Counter
	RowsDropped      *prometheus.CounterVec // labels: reason={non_numeric,non_positive_total,join_miss,non_positive_labor_force}
	RecordsBuilt     prometheus.Gauge
	BuildsTotal      *prometheus.CounterVec // labels: outcome={success,error}
	BuildDuration    prometheus.Histogram
	ArtifactsWritten *prometheus.CounterVec // labels: kind={report,chart,choropleth,summary}
	LastBuildTime    prometheus.Gauge
	PipelineRunning  prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ObservationsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "county_claims",
			Name:      "observations_read_total",
			Help:      "Total weekly claim observations read from the claims source.",
		}),
		LaborForceRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "county_claims",
			Name:      "labor_force_rows_total",
			Help:      "Total labor-force rows read for the selected period.",
		}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "county_claims",
			Name:      "rows_dropped_total",
			Help:      "Rows excluded as data-quality drops, by reason.",
		}, []string{"reason"}),
		RecordsBuilt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "county_claims",
			Name:      "records_built",
			Help:      "Derived records in the most recent record set.",
		}),
		BuildsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "county_claims",
			Name:      "builds_total",
			Help:      "Pipeline runs by outcome.",
		}, []string{"outcome"}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "county_claims",
			Name:      "build_duration_seconds",
			Help:      "Duration of a complete load-derive-write run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		ArtifactsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "county_claims",
			Name:      "artifacts_written_total",
			Help:      "Output artifacts written, by kind.",
		}, []string{"kind"}),
		LastBuildTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "county_claims",
			Name:      "last_build_timestamp_seconds",
			Help:      "Unix time of the last successful build.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "county_claims",
			Name:      "pipeline_running",
			Help:      "1 while the pipeline process is active, 0 when shut down.",
		}),
	}

	prometheus.MustRegister(
		m.ObservationsRead,
		m.LaborForceRows,
		m.RowsDropped,
		m.RecordsBuilt,
		m.BuildsTotal,
		m.BuildDuration,
		m.ArtifactsWritten,
		m.LastBuildTime,
		m.PipelineRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ObservationsRead: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "county_claims", Name: "observations_read_total"}),
		LaborForceRows:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "county_claims", Name: "labor_force_rows_total"}),
		RowsDropped:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "county_claims", Name: "rows_dropped_total"}, []string{"reason"}),
		RecordsBuilt:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "county_claims", Name: "records_built"}),
		BuildsTotal:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "county_claims", Name: "builds_total"}, []string{"outcome"}),
		BuildDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "county_claims", Name: "build_duration_seconds"}),
		ArtifactsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "county_claims", Name: "artifacts_written_total"}, []string{"kind"}),
		LastBuildTime:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "county_claims", Name: "last_build_timestamp_seconds"}),
		PipelineRunning:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "county_claims", Name: "pipeline_running"}),
	}
}
