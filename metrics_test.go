package localauth

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsDisabledNoOp(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})

	m.Inc(MetricLoginSuccess)
	m.Observe(MetricLoginLatency, 500*time.Millisecond)

	if m.Enabled() {
		t.Fatal("expected disabled metrics")
	}
	if got := m.Value(MetricLoginSuccess); got != 0 {
		t.Fatalf("expected no counting while disabled, got %d", got)
	}

	snap := m.Snapshot()
	if len(snap.Counters) != 0 || len(snap.Histograms) != 0 {
		t.Fatalf("expected an empty snapshot, got %+v", snap)
	}
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics

	m.Inc(MetricLogout)
	m.Observe(MetricLoginLatency, time.Second)

	if m.Enabled() {
		t.Fatal("nil metrics must report disabled")
	}
	if got := m.Value(MetricLogout); got != 0 {
		t.Fatalf("expected zero from a nil receiver, got %d", got)
	}
}

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Inc(MetricRegisterSuccess)
	m.Inc(MetricRegisterSuccess)
	m.Inc(MetricLoginFailure)

	if got := m.Value(MetricRegisterSuccess); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := m.Value(MetricLoginFailure); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}

	snap := m.Snapshot()
	if snap.Counters[MetricRegisterSuccess] != 2 || snap.Counters[MetricLogout] != 0 {
		t.Fatalf("snapshot mismatch: %+v", snap.Counters)
	}
}

func TestMetricsConcurrentIncrements(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const workers = 8
	const perWorker = 1000

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				m.Inc(MetricSessionEstablished)
			}
		}()
	}
	wg.Wait()

	if got := m.Value(MetricSessionEstablished); got != workers*perWorker {
		t.Fatalf("expected %d, got %d", workers*perWorker, got)
	}
}

func TestMetricsLatencyHistogram(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true, EnableLatencyHistograms: true})

	samples := []struct {
		d      time.Duration
		bucket int
	}{
		{5 * time.Millisecond, 0},
		{30 * time.Millisecond, 1},
		{100 * time.Millisecond, 2},
		{300 * time.Millisecond, 3},
		{600 * time.Millisecond, 4},
		{time.Second, 5},
		{1500 * time.Millisecond, 6},
		{5 * time.Second, 7},
	}
	for _, s := range samples {
		if got := bucketIndex(s.d); got != s.bucket {
			t.Fatalf("bucketIndex(%v) = %d, want %d", s.d, got, s.bucket)
		}
		m.Observe(MetricLoginLatency, s.d)
	}

	snap := m.Snapshot()
	buckets, ok := snap.Histograms[MetricLoginLatency]
	if !ok {
		t.Fatal("expected the login latency histogram in the snapshot")
	}
	for i, count := range buckets {
		if count != 1 {
			t.Fatalf("bucket %d: expected 1 sample, got %d", i, count)
		}
	}

	// Counter IDs never accept histogram samples.
	m.Observe(MetricLoginSuccess, time.Second)
	if _, ok := m.Snapshot().Histograms[MetricLoginSuccess]; ok {
		t.Fatal("expected no histogram for counter metrics")
	}
}

func TestMetricsHistogramsOffByDefault(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	m.Observe(MetricLoginLatency, time.Second)

	snap := m.Snapshot()
	if len(snap.Histograms) != 0 {
		t.Fatalf("expected no histograms without the latency option, got %+v", snap.Histograms)
	}
}
