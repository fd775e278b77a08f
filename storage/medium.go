package storage

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the backing medium cannot be reached or
// rejects a write (the quota-exceeded analog). Callers treat the operation
// as not applied.
var ErrUnavailable = errors.New("storage medium unavailable")

// Medium is a flat string key/value space with explicit absence reporting.
//
// Get returns the stored value and true when the key exists. Set overwrites
// unconditionally. Delete of an absent key is not an error.
type Medium interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
