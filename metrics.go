package localauth

import (
	"sync/atomic"
	"time"
)

// MetricID defines a public type used by localauth APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID uint16

const (
	// MetricRegisterSuccess is an exported constant or variable used by the authentication engine.
	MetricRegisterSuccess MetricID = iota
	// MetricRegisterFailure is an exported constant or variable used by the authentication engine.
	MetricRegisterFailure
	// MetricRegisterDuplicate is an exported constant or variable used by the authentication engine.
	MetricRegisterDuplicate
	// MetricLoginSuccess is an exported constant or variable used by the authentication engine.
	MetricLoginSuccess
	// MetricLoginFailure is an exported constant or variable used by the authentication engine.
	MetricLoginFailure
	// MetricLogout is an exported constant or variable used by the authentication engine.
	MetricLogout
	// MetricSessionEstablished is an exported constant or variable used by the authentication engine.
	MetricSessionEstablished
	// MetricWelcomeConsumed is an exported constant or variable used by the authentication engine.
	MetricWelcomeConsumed
	// MetricStorageFailure is an exported constant or variable used by the authentication engine.
	MetricStorageFailure
	// MetricLoginLatency is the single histogram metric: end-to-end login
	// duration including the simulated latency wait.
	MetricLoginLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics defines a public type used by localauth APIs.
//
// Metrics instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot defines a public type used by localauth APIs.
//
// MetricsSnapshot instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// NewMetrics describes the newmetrics operation and its observable behavior.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

// Enabled reports whether counters are being recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc increments a counter. Disabled metrics make this a no-op.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records a latency sample into the login histogram.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id != MetricLoginLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

// Value returns the current counter value.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot returns a point-in-time copy of all counters and histograms.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricLoginLatency].buckets[i])
		}
		s.Histograms[MetricLoginLatency] = buckets
	}

	return s
}

// Buckets sized for the simulated-latency regime: logins normally take the
// configured delay (~1s), so the upper buckets carry the signal.
func bucketIndex(d time.Duration) int {
	ms := d.Milliseconds()

	switch {
	case ms <= 10:
		return 0
	case ms <= 50:
		return 1
	case ms <= 150:
		return 2
	case ms <= 400:
		return 3
	case ms <= 800:
		return 4
	case ms <= 1200:
		return 5
	case ms <= 2000:
		return 6
	default:
		return 7
	}
}
