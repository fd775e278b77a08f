package localauth

import (
	"errors"
	"strings"
)

var (
	// ErrEngineNotReady is an exported constant or variable used by the authentication engine.
	ErrEngineNotReady = errors.New("engine not ready")
	// ErrInvalidCredentials is returned for both unknown-account and
	// wrong-password logins; the two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDuplicateEmail is an exported constant or variable used by the authentication engine.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrStorageUnavailable is an exported constant or variable used by the authentication engine.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ErrorKind classifies a single field-level validation failure.
type ErrorKind uint8

const (
	// KindInvalidName is an exported constant or variable used by the authentication engine.
	KindInvalidName ErrorKind = iota
	// KindInvalidEmail is an exported constant or variable used by the authentication engine.
	KindInvalidEmail
	// KindWeakPassword is an exported constant or variable used by the authentication engine.
	KindWeakPassword
	// KindPasswordMismatch is an exported constant or variable used by the authentication engine.
	KindPasswordMismatch
	// KindMissingPassword is an exported constant or variable used by the authentication engine.
	KindMissingPassword
	// KindDuplicateEmail is distinct from KindInvalidEmail: the address is
	// well-formed but already registered.
	KindDuplicateEmail
)

// String returns the snake_case name used in audit metadata and logs.
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidName:
		return "invalid_name"
	case KindInvalidEmail:
		return "invalid_email"
	case KindWeakPassword:
		return "weak_password"
	case KindPasswordMismatch:
		return "password_mismatch"
	case KindMissingPassword:
		return "missing_password"
	case KindDuplicateEmail:
		return "duplicate_email"
	default:
		return "unknown"
	}
}

// Message returns the user-facing text the site has always shown for this
// failure. Kept verbatim; form snapshots assert on these strings.
func (k ErrorKind) Message() string {
	switch k {
	case KindInvalidName:
		return "Enter your full name"
	case KindInvalidEmail:
		return "Enter a valid email"
	case KindWeakPassword:
		return "Password should be at least 8 characters"
	case KindPasswordMismatch:
		return "Passwords do not match"
	case KindMissingPassword:
		return "Enter your password"
	case KindDuplicateEmail:
		return "Email already registered"
	default:
		return "Invalid input"
	}
}

// FieldError marks one offending input field.
type FieldError struct {
	Field string
	Kind  ErrorKind
}

// Error implements the error interface.
func (e FieldError) Error() string {
	return e.Field + ": " + e.Kind.String()
}

// ValidationErrors carries every violated field of one operation together.
// Validation never short-circuits on the first failure.
type ValidationErrors []FieldError

// Error implements the error interface.
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Has reports whether any field failed with the given kind.
func (v ValidationErrors) Has(kind ErrorKind) bool {
	for _, fe := range v {
		if fe.Kind == kind {
			return true
		}
	}
	return false
}

// First returns the first offending field, the one that should receive
// focus. Ordering follows the form's field order.
func (v ValidationErrors) First() (FieldError, bool) {
	if len(v) == 0 {
		return FieldError{}, false
	}
	return v[0], true
}
