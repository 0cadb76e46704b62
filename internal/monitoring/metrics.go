package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	evaluationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "condor_evaluations_total",
			Help: "Total number of parameter-set evaluations completed",
		},
	)

	evaluationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "condor_evaluation_duration_seconds",
			Help:    "Distribution of single parameter-set evaluation durations",
			Buckets: prometheus.DefBuckets,
		},
	)

	tradesSimulated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "condor_trades_simulated_total",
			Help: "Total number of condor trades simulated",
		},
	)

	searchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "condor_grid_search_duration_seconds",
			Help:    "Distribution of full grid-search durations",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		},
	)

	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "condor_errors_total",
			Help: "Total number of errors",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(evaluationsTotal)
	prometheus.MustRegister(evaluationDuration)
	prometheus.MustRegister(tradesSimulated)
	prometheus.MustRegister(searchDuration)
	prometheus.MustRegister(errorsTotal)
}

// MetricsHandler handles the Prometheus metrics endpoint.
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint.
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordEvaluation records one completed parameter-set evaluation.
func RecordEvaluation(duration time.Duration, trades int) {
	evaluationsTotal.Inc()
	evaluationDuration.Observe(duration.Seconds())
	tradesSimulated.Add(float64(trades))
}

// ObserveSearchDuration records the duration of a full grid search.
func ObserveSearchDuration(duration time.Duration) {
	searchDuration.Observe(duration.Seconds())
}

// RecordError records an error metric.
func RecordError(errorType string) {
	errorsTotal.WithLabelValues(errorType).Inc()
}
