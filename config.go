package localauth

import (
	"errors"
	"strings"
	"time"
)

// Config defines a public type used by localauth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Storage  StorageConfig
	Latency  LatencyConfig
	Password PasswordConfig
	Account  AccountConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

/*
====================================
STORAGE CONFIG
====================================
*/

// StorageConfig names the keys the engine owns in the two media. Full keys
// are Prefix + logical name, so several deployments can share one medium.
type StorageConfig struct {
	Prefix     string
	UsersKey   string
	SessionKey string
	FlagKey    string
}

/*
====================================
LATENCY CONFIG
====================================
*/

// LatencyConfig parameterizes the cooperative delay that stands in for
// network latency before a register or login completes. Zero disables the
// wait; tests run with zero.
type LatencyConfig struct {
	RegisterDelay time.Duration
	LoginDelay    time.Duration
}

/*
====================================
VALIDATION CONFIG
====================================
*/

// PasswordConfig defines a public type used by localauth APIs.
//
// PasswordConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordConfig struct {
	MinLength int
}

// AccountConfig defines a public type used by localauth APIs.
//
// AccountConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AccountConfig struct {
	MinNameLength int
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditOverflow selects what happens to an audit event when the pipeline
// buffer is full.
type AuditOverflow uint8

const (
	// OverflowDropNewest discards the incoming event and counts the loss.
	// The default: a burst of page activity must never stall a login.
	OverflowDropNewest AuditOverflow = iota
	// OverflowBlock applies backpressure to the emitting operation until
	// buffer space frees up or its context is cancelled.
	OverflowBlock
)

// AuditConfig defines a public type used by localauth APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	Overflow   AuditOverflow
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by localauth APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the configuration matching the academy site's
// conventional storage keys and simulated latency.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Prefix:     "fma_",
			UsersKey:   "users",
			SessionKey: "current_user",
			FlagKey:    "just_logged_in",
		},
		Latency: LatencyConfig{
			RegisterDelay: 1200 * time.Millisecond,
			LoginDelay:    1000 * time.Millisecond,
		},
		Password: PasswordConfig{MinLength: 8},
		Account:  AccountConfig{MinNameLength: 2},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 64,
			Overflow:   OverflowDropNewest,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// Value copy is a full clone: Config holds no reference types.
	return cfg
}

func (c StorageConfig) usersKey() string   { return c.Prefix + c.UsersKey }
func (c StorageConfig) sessionKey() string { return c.Prefix + c.SessionKey }
func (c StorageConfig) flagKey() string    { return c.Prefix + c.FlagKey }

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	for _, key := range []string{c.Storage.UsersKey, c.Storage.SessionKey, c.Storage.FlagKey} {
		if key == "" {
			return errors.New("storage key names must not be empty")
		}
		if strings.ContainsAny(key, " \t\n") {
			return errors.New("storage key names must not contain whitespace")
		}
	}
	if strings.ContainsAny(c.Storage.Prefix, " \t\n") {
		return errors.New("storage prefix must not contain whitespace")
	}

	keys := map[string]struct{}{}
	for _, key := range []string{c.Storage.usersKey(), c.Storage.sessionKey(), c.Storage.flagKey()} {
		if _, dup := keys[key]; dup {
			return errors.New("storage key names must be distinct")
		}
		keys[key] = struct{}{}
	}

	if c.Latency.RegisterDelay < 0 || c.Latency.LoginDelay < 0 {
		return errors.New("latency delays must not be negative")
	}
	if c.Password.MinLength < 1 {
		return errors.New("password minimum length must be at least 1")
	}
	if c.Account.MinNameLength < 1 {
		return errors.New("name minimum length must be at least 1")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 1 {
		return errors.New("audit buffer size must be at least 1 when audit is enabled")
	}
	if c.Audit.Overflow > OverflowBlock {
		return errors.New("unknown audit overflow policy")
	}

	return nil
}
