package goSession

import "sync/atomic"

// MetricID defines a public type used by goSession APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricSessionCreated is an exported constant or variable used by the session engine.
	MetricSessionCreated MetricID = iota
	// MetricSessionCreatedBySignature is an exported constant or variable used by the session engine.
	MetricSessionCreatedBySignature
	// MetricExpiredSessionReplaced is an exported constant or variable used by the session engine.
	MetricExpiredSessionReplaced
	// MetricCreateRejected is an exported constant or variable used by the session engine.
	MetricCreateRejected
	// MetricVerificationFailed is an exported constant or variable used by the session engine.
	MetricVerificationFailed
	// MetricCleanupScheduled is an exported constant or variable used by the session engine.
	MetricCleanupScheduled
	// MetricSchedulingFailed is an exported constant or variable used by the session engine.
	MetricSchedulingFailed
	// MetricSessionDeleted is an exported constant or variable used by the session engine.
	MetricSessionDeleted
	// MetricSessionCancelled is an exported constant or variable used by the session engine.
	MetricSessionCancelled
	// MetricCleanupStale is an exported constant or variable used by the session engine.
	MetricCleanupStale
	// MetricCleanupNoop is an exported constant or variable used by the session engine.
	MetricCleanupNoop
	// MetricNotificationFailed is an exported constant or variable used by the session engine.
	MetricNotificationFailed

	metricCount
)

// Metrics is a fixed-size table of atomic counters. The zero MetricID
// layout is frozen; exporters depend on it through internaldefs.
type Metrics struct {
	counters [metricCount]atomic.Uint64
}

// NewMetrics creates an empty counter table.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Inc increments the counter for id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || id >= metricCount {
		return
	}
	m.counters[id].Add(1)
}

// MetricsSnapshot defines a public type used by goSession APIs.
//
// MetricsSnapshot instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot copies the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snapshot := MetricsSnapshot{
		Counters: make(map[MetricID]uint64, metricCount),
	}
	if m == nil {
		return snapshot
	}
	for id := MetricID(0); id < metricCount; id++ {
		snapshot.Counters[id] = m.counters[id].Load()
	}
	return snapshot
}
