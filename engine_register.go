package localauth

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/futuremakers/localauth/digest"
	"github.com/futuremakers/localauth/session"
	"github.com/futuremakers/localauth/validate"
)

// Register describes the register operation and its observable behavior.
//
// All four field validations are evaluated together and reported as one
// [ValidationErrors] value; nothing short-circuits on the first failure.
// Uniqueness is checked only after shape validation passes and surfaces as a
// field-level [KindDuplicateEmail] on the email field. On success the new
// account is persisted, a session is established for it, and the one-shot
// welcome flag is set — as a unit: if any of those writes fails, the earlier
// ones are rolled back and the whole operation reports [ErrStorageUnavailable].
func (e *Engine) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if e == nil || e.creds == nil || e.sessions == nil {
		return nil, ErrEngineNotReady
	}

	var verrs ValidationErrors
	if !validate.NonEmptyTrimmed(req.Name, e.config.Account.MinNameLength) {
		verrs = append(verrs, FieldError{Field: "name", Kind: KindInvalidName})
	}
	if !validate.EmailShape(req.Email) {
		verrs = append(verrs, FieldError{Field: "email", Kind: KindInvalidEmail})
	}
	// Rune count, not bytes: the minimum is a character count, and a
	// password shorter than it must not slip through on byte length.
	if utf8.RuneCountInString(req.Password) < e.config.Password.MinLength {
		verrs = append(verrs, FieldError{Field: "password", Kind: KindWeakPassword})
	}
	if req.Password != req.ConfirmPassword {
		verrs = append(verrs, FieldError{Field: "confirm", Kind: KindPasswordMismatch})
	}
	if len(verrs) > 0 {
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", verrs, func() map[string]string {
			return map[string]string{"fields": verrs.Error()}
		})
		return nil, verrs
	}

	email := validate.NormalizeEmail(req.Email)

	// The duplicate answer shows before the loading state starts, so the
	// check runs ahead of the simulated latency. add re-checks against the
	// snapshot read immediately before insertion.
	if _, exists, err := e.creds.findByEmail(ctx, email); err != nil {
		e.metricInc(MetricStorageFailure)
		e.emitAudit(ctx, auditEventStorageFailure, false, email, err, nil)
		return nil, storageFailure(err)
	} else if exists {
		return nil, e.registerDuplicate(ctx, email)
	}

	if err := e.wait(ctx, e.config.Latency.RegisterDelay); err != nil {
		return nil, err
	}

	prevSession, err := e.sessions.Current(ctx)
	if err != nil {
		e.metricInc(MetricStorageFailure)
		e.emitAudit(ctx, auditEventStorageFailure, false, email, err, nil)
		return nil, storageFailure(err)
	}

	acct := Account{
		Name:             req.Name,
		Email:            email,
		CredentialDigest: digest.Encode(req.Password),
	}

	prevAccounts, err := e.creds.add(ctx, acct)
	if errors.Is(err, ErrDuplicateEmail) {
		return nil, e.registerDuplicate(ctx, email)
	}
	if err != nil {
		e.metricInc(MetricStorageFailure)
		e.emitAudit(ctx, auditEventStorageFailure, false, email, err, nil)
		return nil, storageFailure(err)
	}

	if err := e.establishWithFlag(ctx, session.Record{Name: acct.Name, Email: acct.Email}, prevSession); err != nil {
		// No partial state: put the collection back without the new account.
		_ = e.creds.save(ctx, prevAccounts)
		e.metricInc(MetricStorageFailure)
		e.emitAudit(ctx, auditEventStorageFailure, false, email, err, nil)
		return nil, storageFailure(err)
	}

	e.metricInc(MetricRegisterSuccess)
	e.metricInc(MetricSessionEstablished)
	e.emitAudit(ctx, auditEventRegisterSuccess, true, email, nil, nil)

	return &AuthResult{Name: acct.Name, Email: acct.Email}, nil
}

func (e *Engine) registerDuplicate(ctx context.Context, email string) error {
	verrs := ValidationErrors{{Field: "email", Kind: KindDuplicateEmail}}
	e.metricInc(MetricRegisterDuplicate)
	e.emitAudit(ctx, auditEventRegisterDuplicate, false, email, ErrDuplicateEmail, nil)
	return verrs
}

// establishWithFlag writes the session record and marks the welcome flag,
// undoing the session write if the flag write fails. prev is the session
// that was active before the operation, restored on rollback.
func (e *Engine) establishWithFlag(ctx context.Context, rec session.Record, prev *session.Record) error {
	if err := e.sessions.Establish(ctx, rec); err != nil {
		return err
	}

	if err := e.sessions.MarkJustLoggedIn(ctx); err != nil {
		if prev != nil {
			_ = e.sessions.Establish(ctx, *prev)
		} else {
			_ = e.sessions.Clear(ctx)
		}
		return err
	}
	return nil
}
