package localauth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	auditEventRegisterSuccess   = "register_success"
	auditEventRegisterFailure   = "register_failure"
	auditEventRegisterDuplicate = "register_duplicate"
	auditEventLoginSuccess      = "login_success"
	auditEventLoginFailure      = "login_failure"
	auditEventLogout            = "logout"
	auditEventStorageFailure    = "storage_failure"
)

// AuditErrorCode defines a public type used by localauth APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrValidation         AuditErrorCode = "validation"
	auditErrInvalidCredentials AuditErrorCode = "invalid_credentials"
	auditErrDuplicate          AuditErrorCode = "duplicate"
	auditErrUnavailable        AuditErrorCode = "storage_unavailable"
	auditErrInternal           AuditErrorCode = "internal_error"
)

func auditErrorCode(err error) AuditErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredentials):
		return auditErrInvalidCredentials
	case errors.Is(err, ErrDuplicateEmail):
		return auditErrDuplicate
	case errors.Is(err, ErrStorageUnavailable):
		return auditErrUnavailable
	default:
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			return auditErrValidation
		}
		return auditErrInternal
	}
}

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	email string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Email:     email,
		PageID:    pageIDFromContext(ctx),
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}
