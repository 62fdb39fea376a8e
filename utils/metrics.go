package utils

import (
	"sync"
	"sync/atomic"
	"time"
)

// DeliveryStats is a point-in-time copy of DeliveryMetrics.
type DeliveryStats struct {
	Actions        int64 `json:"actions"`
	NoOps          int64 `json:"no_ops"`
	Edits          int64 `json:"edits"`
	EditFailures   int64 `json:"edit_failures"`
	Deletes        int64 `json:"deletes"`
	DeleteFailures int64 `json:"delete_failures"`
	AverageLatency int64 `json:"average_latency_ms"`
	MaxLatency     int64 `json:"max_latency_ms"`
}

// DeliveryMetrics tracks how inbound actions and outbound renders went.
// Counters are updated atomically; latency under the mutex.
type DeliveryMetrics struct {
	actions        int64
	noOps          int64
	edits          int64
	editFailures   int64
	deletes        int64
	deleteFailures int64

	latencySum   int64
	latencyCount int64
	maxLatency   int64
	mutex        sync.Mutex
}

// NewDeliveryMetrics creates zeroed metrics.
func NewDeliveryMetrics() *DeliveryMetrics {
	return &DeliveryMetrics{}
}

// RecordAction counts one inbound action, and whether it was a no-op.
func (m *DeliveryMetrics) RecordAction(noOp bool) {
	atomic.AddInt64(&m.actions, 1)
	if noOp {
		atomic.AddInt64(&m.noOps, 1)
	}
}

// RecordEdit counts one message edit and its latency.
func (m *DeliveryMetrics) RecordEdit(latency time.Duration, err error) {
	if err != nil {
		atomic.AddInt64(&m.editFailures, 1)
		return
	}
	atomic.AddInt64(&m.edits, 1)
	m.recordLatency(latency.Milliseconds())
}

// RecordDelete counts one scheduled removal.
func (m *DeliveryMetrics) RecordDelete(err error) {
	if err != nil {
		atomic.AddInt64(&m.deleteFailures, 1)
		return
	}
	atomic.AddInt64(&m.deletes, 1)
}

func (m *DeliveryMetrics) recordLatency(latencyMs int64) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if latencyMs > m.maxLatency {
		m.maxLatency = latencyMs
	}
	m.latencySum += latencyMs
	m.latencyCount++
}

// Stats returns the current counters.
func (m *DeliveryMetrics) Stats() DeliveryStats {
	stats := DeliveryStats{
		Actions:        atomic.LoadInt64(&m.actions),
		NoOps:          atomic.LoadInt64(&m.noOps),
		Edits:          atomic.LoadInt64(&m.edits),
		EditFailures:   atomic.LoadInt64(&m.editFailures),
		Deletes:        atomic.LoadInt64(&m.deletes),
		DeleteFailures: atomic.LoadInt64(&m.deleteFailures),
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	stats.MaxLatency = m.maxLatency
	if m.latencyCount > 0 {
		stats.AverageLatency = m.latencySum / m.latencyCount
	}
	return stats
}
