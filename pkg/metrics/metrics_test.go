package metrics

import (
	"runtime"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freshRegistry() {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
}

func TestInitMetrics(t *testing.T) {
	freshRegistry()

	m := InitMetrics("test", "service")
	require.NotNil(t, m)
	assert.NotNil(t, m.SolveOperationsTotal)
	assert.NotNil(t, m.SolveDuration)
	assert.NotNil(t, m.TotalReward)
	assert.NotNil(t, m.RequestsTotal)
	assert.NotNil(t, m.DropsTotal)
	assert.NotNil(t, m.RepairPlacementsTotal)
	assert.NotNil(t, m.UnassignedTotal)
	assert.NotNil(t, m.ServiceInfo)
}

func TestGet(t *testing.T) {
	freshRegistry()
	defaultMetrics = nil

	m := Get()
	require.NotNil(t, m)

	m2 := Get()
	assert.Same(t, m, m2)
}

func TestRecordSolve(t *testing.T) {
	freshRegistry()
	m := InitMetrics("test", "solve")

	assert.NotPanics(t, func() {
		m.RecordSolve("scheduling", true, 100*time.Millisecond)
		m.RecordSolve("class_assign", false, 1*time.Second)
	})
}

func TestRecordSchedulingResult(t *testing.T) {
	freshRegistry()
	m := InitMetrics("test", "scheduling")

	assert.NotPanics(t, func() {
		m.RecordSchedulingResult("gadget", 1250, 40, 2)
		m.RecordSchedulingResult("aggregator", 900, 40, 5)
	})
}

func TestRecordRepairPlacement(t *testing.T) {
	freshRegistry()
	m := InitMetrics("test", "repair")

	assert.NotPanics(t, func() {
		m.RecordRepairPlacement("capacity_fallback")
	})
}

func TestSetUnassigned(t *testing.T) {
	freshRegistry()
	m := InitMetrics("test", "unassigned")

	assert.NotPanics(t, func() {
		m.SetUnassigned("over_capacity", 3)
	})
}

func TestSetServiceInfo(t *testing.T) {
	freshRegistry()
	m := InitMetrics("test", "info")

	assert.NotPanics(t, func() {
		m.SetServiceInfo("1.0.0", "production")
	})
}

func TestRuntimeCollector(t *testing.T) {
	collector := NewRuntimeCollector("test", "runtime")

	descCh := make(chan *prometheus.Desc, 10)
	collector.Describe(descCh)
	close(descCh)

	descCount := 0
	for range descCh {
		descCount++
	}
	assert.GreaterOrEqual(t, descCount, 5)

	metricCh := make(chan prometheus.Metric, 10)
	collector.Collect(metricCh)
	close(metricCh)

	metricCount := 0
	for range metricCh {
		metricCount++
	}
	assert.GreaterOrEqual(t, metricCount, 5)
}

func TestRuntimeCollectorGCPause(t *testing.T) {
	runtime.GC()

	collector := NewRuntimeCollector("test", "gc")
	metricCh := make(chan prometheus.Metric, 10)
	collector.Collect(metricCh)
	close(metricCh)

	found := false
	for range metricCh {
		found = true
	}
	assert.True(t, found)
}

func TestTimer(t *testing.T) {
	histogram := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "test_duration",
			Buckets: []float64{.01, .1, 1},
		},
		[]string{"core"},
	)

	timer := NewTimer(histogram, "scheduling")
	time.Sleep(10 * time.Millisecond)

	duration := timer.ObserveDuration()
	assert.GreaterOrEqual(t, duration, 10*time.Millisecond)
}

func TestHandler(t *testing.T) {
	assert.NotNil(t, Handler())
}
