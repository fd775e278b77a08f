package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis is a durable [Medium] backed by a Redis string keyspace. Each logical
// key maps to one Redis key holding the full serialized blob, preserving the
// whole-unit read/write contract of the credential and session stores.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an initialized client. The client's lifecycle stays with the
// caller; Close is never called here.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Get implements [Medium]. A missing key is reported as absent, not an error.
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	if r == nil || r.client == nil {
		return "", false, ErrUnavailable
	}

	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return val, true, nil
}

// Set implements [Medium].
func (r *Redis) Set(ctx context.Context, key, value string) error {
	if r == nil || r.client == nil {
		return ErrUnavailable
	}

	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Delete implements [Medium]. Deleting an absent key succeeds.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if r == nil || r.client == nil {
		return ErrUnavailable
	}

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
