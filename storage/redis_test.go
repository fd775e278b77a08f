package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedis(client), mr
}

func TestRedisRoundTrip(t *testing.T) {
	ctx := context.Background()
	r, _ := newTestRedis(t)

	if _, ok, err := r.Get(ctx, "fma_users"); err != nil || ok {
		t.Fatalf("expected absent key: ok=%v err=%v", ok, err)
	}

	if err := r.Set(ctx, "fma_users", `[{"email":"a@b.c"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, ok, err := r.Get(ctx, "fma_users")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if val != `[{"email":"a@b.c"}]` {
		t.Fatalf("unexpected value %q", val)
	}

	if err := r.Delete(ctx, "fma_users"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := r.Get(ctx, "fma_users"); ok {
		t.Fatal("expected key gone after delete")
	}
}

func TestRedisUnavailableWrapped(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)

	mr.Close()

	if _, _, err := r.Get(ctx, "k"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable from Get, got %v", err)
	}
	if err := r.Set(ctx, "k", "v"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable from Set, got %v", err)
	}
	if err := r.Delete(ctx, "k"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable from Delete, got %v", err)
	}
}

func TestRedisNilClient(t *testing.T) {
	var r *Redis

	if _, _, err := r.Get(context.Background(), "k"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
