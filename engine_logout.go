package localauth

import "context"

// Logout clears the session unconditionally. Logging out with no active
// session is a success, and so is logging out twice; the operation is
// idempotent by contract.
func (e *Engine) Logout(ctx context.Context) error {
	if e == nil || e.sessions == nil {
		return ErrEngineNotReady
	}

	if err := e.sessions.Clear(ctx); err != nil {
		e.metricInc(MetricStorageFailure)
		e.emitAudit(ctx, auditEventStorageFailure, false, "", err, nil)
		return storageFailure(err)
	}

	e.metricInc(MetricLogout)
	e.emitAudit(ctx, auditEventLogout, true, "", nil, nil)
	return nil
}
