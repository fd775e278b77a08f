package localauth

import (
	"context"
	"fmt"
	"time"

	"github.com/futuremakers/localauth/session"
)

// Engine defines a public type used by localauth APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config   Config
	creds    *credentialStore
	sessions *session.Store
	audit    *auditPipeline
	metrics  *Metrics
}

// Close flushes and stops the audit pipeline. The storage media are owned
// by the caller and stay open.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports how many audit events the overflow policy has
// discarded.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// CurrentSession returns the active session record, or nil when the visitor
// is a guest. The record is NOT re-validated against the credential store;
// accounts are never deleted, so a session cannot dangle today. Revisit if
// account deletion is ever added.
func (e *Engine) CurrentSession(ctx context.Context) (*session.Record, error) {
	if e == nil || e.sessions == nil {
		return nil, ErrEngineNotReady
	}

	rec, err := e.sessions.Current(ctx)
	if err != nil {
		e.metricInc(MetricStorageFailure)
		return nil, storageFailure(err)
	}
	return rec, nil
}

// ConsumeWelcome reports whether the one-shot just-logged-in flag was
// pending and clears it. At most one call per page lifetime returns true.
func (e *Engine) ConsumeWelcome(ctx context.Context) (bool, error) {
	if e == nil || e.sessions == nil {
		return false, ErrEngineNotReady
	}

	got, err := e.sessions.ConsumeJustLoggedIn(ctx)
	if err != nil {
		e.metricInc(MetricStorageFailure)
		return false, storageFailure(err)
	}
	if got {
		e.metricInc(MetricWelcomeConsumed)
	}
	return got, nil
}

// wait suspends cooperatively for the configured simulated latency. Control
// returns to the caller's event loop for the duration; cancellation of ctx
// aborts the pending operation before any store mutation happens.
func (e *Engine) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func storageFailure(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}
