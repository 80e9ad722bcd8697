package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exports reconciliation outcomes. Gauges carry the latest counts
// per descriptor; counters and the histogram accumulate across runs.
type Metrics struct {
	RunsTotal        *prometheus.CounterVec
	RunDuration      *prometheus.HistogramVec
	ResultsPassed    *prometheus.GaugeVec
	ResultsFailed    *prometheus.GaugeVec
	ResultsXFail     *prometheus.GaugeVec
	StalePurged      prometheus.Counter
	PendingInserted  prometheus.Counter
	PredicateErrors  *prometheus.CounterVec
	AnnotationsTotal prometheus.Counter
}

// New registers every metric with the default Prometheus registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers against reg; tests pass a fresh registry.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	labels := []string{"type", "method"}
	return &Metrics{
		RunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "datatests_runs_total",
			Help: "Reconciliation runs by descriptor and outcome (ok, batch_error, error)",
		}, []string{"type", "method", "outcome"}),
		RunDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "datatests_run_duration_seconds",
			Help:    "Duration of one reconciliation run",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
		}, labels),
		ResultsPassed: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "datatests_results_passed",
			Help: "Passing rows after the last run",
		}, labels),
		ResultsFailed: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "datatests_results_failed",
			Help: "Failing rows after the last run",
		}, labels),
		ResultsXFail: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "datatests_results_failed_xfail",
			Help: "Failing rows marked as expected failures after the last run",
		}, labels),
		StalePurged: f.NewCounter(prometheus.CounterOpts{
			Name: "datatests_stale_results_purged_total",
			Help: "Result rows deleted because their object no longer exists",
		}),
		PendingInserted: f.NewCounter(prometheus.CounterOpts{
			Name: "datatests_pending_results_inserted_total",
			Help: "Result rows created for newly seen objects",
		}),
		PredicateErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "datatests_predicate_errors_total",
			Help: "Predicate evaluations that errored or panicked",
		}, labels),
		AnnotationsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "datatests_annotations_total",
			Help: "xfail/justification edits",
		}),
	}
}

// ObserveRun records the outcome and duration of one run.
func (m *Metrics) ObserveRun(typeName, method, outcome string, start time.Time) {
	m.RunsTotal.WithLabelValues(typeName, method, outcome).Inc()
	m.RunDuration.WithLabelValues(typeName, method).Observe(time.Since(start).Seconds())
}

// SetCounts publishes the post-run summary of one descriptor.
func (m *Metrics) SetCounts(typeName, method string, passed, failed, failedXFail int) {
	m.ResultsPassed.WithLabelValues(typeName, method).Set(float64(passed))
	m.ResultsFailed.WithLabelValues(typeName, method).Set(float64(failed))
	m.ResultsXFail.WithLabelValues(typeName, method).Set(float64(failedXFail))
}

func (m *Metrics) AddPurged(n int) {
	m.StalePurged.Add(float64(n))
}

func (m *Metrics) AddInserted(n int) {
	m.PendingInserted.Add(float64(n))
}

func (m *Metrics) IncrementPredicateError(typeName, method string) {
	m.PredicateErrors.WithLabelValues(typeName, method).Inc()
}

func (m *Metrics) IncrementAnnotation() {
	m.AnnotationsTotal.Inc()
}
