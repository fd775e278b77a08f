package localauth

import (
	"context"
	"time"

	"github.com/futuremakers/localauth/digest"
	"github.com/futuremakers/localauth/session"
	"github.com/futuremakers/localauth/validate"
)

// Login describes the login operation and its observable behavior.
//
// Shape violations (email shape, empty password) are reported together as
// [ValidationErrors]. A shape-valid attempt that matches no account OR
// mismatches the stored digest returns the single sentinel
// [ErrInvalidCredentials]; the two cases are intentionally identical so a
// caller cannot probe which addresses are registered.
func (e *Engine) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if e == nil || e.creds == nil || e.sessions == nil {
		return nil, ErrEngineNotReady
	}

	start := time.Now()

	var verrs ValidationErrors
	if !validate.EmailShape(req.Email) {
		verrs = append(verrs, FieldError{Field: "email", Kind: KindInvalidEmail})
	}
	if req.Password == "" {
		verrs = append(verrs, FieldError{Field: "password", Kind: KindMissingPassword})
	}
	if len(verrs) > 0 {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, "", verrs, func() map[string]string {
			return map[string]string{"fields": verrs.Error()}
		})
		return nil, verrs
	}

	if err := e.wait(ctx, e.config.Latency.LoginDelay); err != nil {
		return nil, err
	}

	email := validate.NormalizeEmail(req.Email)

	acct, found, err := e.creds.findByEmail(ctx, email)
	if err != nil {
		e.metricInc(MetricStorageFailure)
		e.emitAudit(ctx, auditEventStorageFailure, false, email, err, nil)
		return nil, storageFailure(err)
	}
	if !found || !digest.Matches(acct.CredentialDigest, req.Password) {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, email, ErrInvalidCredentials, nil)
		return nil, ErrInvalidCredentials
	}

	prevSession, err := e.sessions.Current(ctx)
	if err != nil {
		e.metricInc(MetricStorageFailure)
		e.emitAudit(ctx, auditEventStorageFailure, false, email, err, nil)
		return nil, storageFailure(err)
	}

	if err := e.establishWithFlag(ctx, session.Record{Name: acct.Name, Email: acct.Email}, prevSession); err != nil {
		e.metricInc(MetricStorageFailure)
		e.emitAudit(ctx, auditEventStorageFailure, false, email, err, nil)
		return nil, storageFailure(err)
	}

	e.metricInc(MetricLoginSuccess)
	e.metricInc(MetricSessionEstablished)
	if e.metrics != nil {
		e.metrics.Observe(MetricLoginLatency, time.Since(start))
	}
	e.emitAudit(ctx, auditEventLoginSuccess, true, email, nil, nil)

	return &AuthResult{Name: acct.Name, Email: acct.Email}, nil
}
