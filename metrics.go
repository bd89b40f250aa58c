package lloyd

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordIteration is called after each refinement iteration.
	// changed reports whether any point switched cluster this pass.
	RecordIteration(iteration int, changed bool, duration time.Duration)

	// RecordEmptyCluster is called when an aggregation step retains a
	// centroid because its cluster emptied.
	RecordEmptyCluster(cluster int)

	// RecordRun is called once per clustering run.
	// converged is false when the run stopped at the iteration cap,
	// err is nil if successful.
	RecordRun(iterations int, converged bool, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIteration(int, bool, time.Duration)  {}
func (NoopMetricsCollector) RecordEmptyCluster(int)                     {}
func (NoopMetricsCollector) RecordRun(int, bool, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	IterationCount      atomic.Int64
	IterationTotalNanos atomic.Int64
	EmptyClusterCount   atomic.Int64
	RunCount            atomic.Int64
	RunErrors           atomic.Int64
	ConvergedRuns       atomic.Int64
	CappedRuns          atomic.Int64
	RunTotalNanos       atomic.Int64
}

func (m *BasicMetricsCollector) RecordIteration(_ int, _ bool, duration time.Duration) {
	m.IterationCount.Add(1)
	m.IterationTotalNanos.Add(duration.Nanoseconds())
}

func (m *BasicMetricsCollector) RecordEmptyCluster(int) {
	m.EmptyClusterCount.Add(1)
}

func (m *BasicMetricsCollector) RecordRun(_ int, converged bool, duration time.Duration, err error) {
	m.RunCount.Add(1)
	m.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		m.RunErrors.Add(1)
		return
	}
	if converged {
		m.ConvergedRuns.Add(1)
	} else {
		m.CappedRuns.Add(1)
	}
}
