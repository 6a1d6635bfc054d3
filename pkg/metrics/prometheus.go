package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the process-wide metrics container.
type Metrics struct {
	SolveOperationsTotal  *prometheus.CounterVec
	SolveDuration         *prometheus.HistogramVec
	TotalReward           *prometheus.GaugeVec
	RequestsTotal         *prometheus.HistogramVec
	DropsTotal            *prometheus.HistogramVec
	RepairPlacementsTotal *prometheus.CounterVec
	UnassignedTotal       *prometheus.GaugeVec

	ServiceInfo *prometheus.GaugeVec
}

var defaultMetrics *Metrics

// InitMetrics registers and returns the process-wide Metrics container.
func InitMetrics(namespace, subsystem string) *Metrics {
	m := &Metrics{
		SolveOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_operations_total",
				Help:      "Total number of solve operations",
			},
			[]string{"core", "status"},
		),

		SolveDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_duration_seconds",
				Help:      "Duration of solve operations",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"core"},
		),

		TotalReward: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "total_reward",
				Help:      "Last reported total reward of a scheduling solve",
			},
			[]string{"formulation"},
		),

		RequestsTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Number of meeting requests or students processed per solve",
				Buckets:   []float64{1, 5, 10, 25, 50, 100, 500, 1000},
			},
			[]string{"core"},
		),

		DropsTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "drops_total",
				Help:      "Number of requests dropped per scheduling solve",
				Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
			},
			[]string{"formulation"},
		),

		RepairPlacementsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "repair_placements_total",
				Help:      "Number of students placed by the greedy repair step",
			},
			[]string{"reason"},
		),

		UnassignedTotal: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "unassigned_students",
				Help:      "Students left unassigned after repair on the last class-assignment solve",
			},
			[]string{"reason"},
		),

		ServiceInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "service_info",
				Help:      "Service build information",
			},
			[]string{"version", "environment"},
		),
	}

	defaultMetrics = m
	return m
}

// Get returns the process-wide Metrics, initializing it with defaults if needed.
func Get() *Metrics {
	if defaultMetrics == nil {
		return InitMetrics("schedule_engine", "")
	}
	return defaultMetrics
}

// RecordSolve records the outcome of one solve invocation for a core
// ("scheduling" or "class_assign").
func (m *Metrics) RecordSolve(core string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	m.SolveOperationsTotal.WithLabelValues(core, status).Inc()
	m.SolveDuration.WithLabelValues(core).Observe(duration.Seconds())
}

// RecordSchedulingResult records the reward, request count, and drop count of
// one scheduling solve for the given formulation ("gadget" or "aggregator").
func (m *Metrics) RecordSchedulingResult(formulation string, totalReward int64, requests, drops int) {
	m.TotalReward.WithLabelValues(formulation).Set(float64(totalReward))
	m.RequestsTotal.WithLabelValues("scheduling").Observe(float64(requests))
	m.DropsTotal.WithLabelValues(formulation).Observe(float64(drops))
}

// RecordRepairPlacement records one student placed by the greedy repair step.
func (m *Metrics) RecordRepairPlacement(reason string) {
	m.RepairPlacementsTotal.WithLabelValues(reason).Inc()
}

// SetUnassigned records how many students remain unassigned after repair.
func (m *Metrics) SetUnassigned(reason string, count int) {
	m.UnassignedTotal.WithLabelValues(reason).Set(float64(count))
}

// SetServiceInfo sets the build-info gauge.
func (m *Metrics) SetServiceInfo(version, environment string) {
	m.ServiceInfo.WithLabelValues(version, environment).Set(1)
}

// Handler returns the HTTP handler serving /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartMetricsServer runs a minimal HTTP server exposing /metrics and /health.
func StartMetricsServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK")) //nolint:errcheck // health endpoint, write error not actionable
	})

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return server.ListenAndServe()
}
