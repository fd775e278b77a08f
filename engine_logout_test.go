package localauth

import (
	"context"
	"testing"
)

func TestLogoutIdempotent(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine(t)

	// No session at all: still a success.
	if err := engine.Logout(ctx); err != nil {
		t.Fatalf("Logout with no session failed: %v", err)
	}

	mustRegister(t, engine, "Ada Lovelace", "ada@example.com", "longenough1")

	if err := engine.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if err := engine.Logout(ctx); err != nil {
		t.Fatalf("second Logout failed: %v", err)
	}

	sess, err := engine.CurrentSession(ctx)
	if err != nil {
		t.Fatalf("CurrentSession failed: %v", err)
	}
	if sess != nil {
		t.Fatalf("expected empty session store, got %+v", sess)
	}
}

func TestLogoutClearsPendingWelcome(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine(t)

	mustRegister(t, engine, "Ada Lovelace", "ada@example.com", "longenough1")
	if err := engine.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	welcome, err := engine.ConsumeWelcome(ctx)
	if err != nil {
		t.Fatalf("ConsumeWelcome failed: %v", err)
	}
	if welcome {
		t.Fatal("logout must discard the pending welcome flag")
	}
}

func TestLogoutLeavesAccountsIntact(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine(t)

	mustRegister(t, engine, "Ada Lovelace", "ada@example.com", "longenough1")
	if err := engine.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if _, found, err := engine.creds.findByEmail(ctx, "ada@example.com"); err != nil || !found {
		t.Fatalf("expected account to survive logout: found=%v err=%v", found, err)
	}
}
