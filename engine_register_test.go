package localauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/futuremakers/localauth/digest"
	"github.com/futuremakers/localauth/storage"
)

func TestRegisterSuccessRoundTrip(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine(t)

	res, err := engine.Register(ctx, RegisterRequest{
		Name:            "Ada Lovelace",
		Email:           "ADA@Example.COM",
		Password:        "longenough1",
		ConfirmPassword: "longenough1",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if res.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", res.Email)
	}
	if res.Name != "Ada Lovelace" {
		t.Fatalf("unexpected name %q", res.Name)
	}

	acct, found, err := engine.creds.findByEmail(ctx, "ada@example.com")
	if err != nil || !found {
		t.Fatalf("findByEmail failed: found=%v err=%v", found, err)
	}
	if acct.Email != "ada@example.com" {
		t.Fatalf("stored email not normalized: %q", acct.Email)
	}
	if acct.CredentialDigest != digest.Encode("longenough1") {
		t.Fatalf("unexpected digest %q", acct.CredentialDigest)
	}

	sess, err := engine.CurrentSession(ctx)
	if err != nil {
		t.Fatalf("CurrentSession failed: %v", err)
	}
	if sess == nil || sess.Email != "ada@example.com" || sess.Name != "Ada Lovelace" {
		t.Fatalf("expected established session, got %+v", sess)
	}

	welcome, err := engine.ConsumeWelcome(ctx)
	if err != nil || !welcome {
		t.Fatalf("expected pending welcome flag: got=%v err=%v", welcome, err)
	}
}

func TestRegisterAllViolationsReportedTogether(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	_, err := engine.Register(context.Background(), RegisterRequest{
		Name:            "",
		Email:           "bad",
		Password:        "short",
		ConfirmPassword: "different",
	})

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(verrs) != 4 {
		t.Fatalf("expected 4 field errors, got %d: %v", len(verrs), verrs)
	}
	for _, kind := range []ErrorKind{KindInvalidName, KindInvalidEmail, KindWeakPassword, KindPasswordMismatch} {
		if !verrs.Has(kind) {
			t.Errorf("expected kind %s to be reported", kind)
		}
	}

	first, ok := verrs.First()
	if !ok || first.Field != "name" {
		t.Fatalf("expected focus on the name field, got %+v", first)
	}

	if sess, _ := engine.CurrentSession(context.Background()); sess != nil {
		t.Fatal("validation failure must not establish a session")
	}
}

func TestRegisterNameRequiresTwoNonWhitespaceChars(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	_, err := engine.Register(context.Background(), RegisterRequest{
		Name:            " A ",
		Email:           "a@example.com",
		Password:        "longenough1",
		ConfirmPassword: "longenough1",
	})

	var verrs ValidationErrors
	if !errors.As(err, &verrs) || !verrs.Has(KindInvalidName) {
		t.Fatalf("expected KindInvalidName, got %v", err)
	}
}

func TestRegisterLengthRulesCountCharactersNotBytes(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine(t)

	// One Greek letter is 2 bytes and seven are 14; both inputs are short
	// in characters and must be rejected regardless of byte length.
	_, err := engine.Register(ctx, RegisterRequest{
		Name:            "Ω",
		Email:           "omega@example.com",
		Password:        "πβγδεζη",
		ConfirmPassword: "πβγδεζη",
	})

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if !verrs.Has(KindInvalidName) {
		t.Errorf("expected KindInvalidName for a 1-character name, got %v", verrs)
	}
	if !verrs.Has(KindWeakPassword) {
		t.Errorf("expected KindWeakPassword for a 7-character password, got %v", verrs)
	}

	if _, found, _ := engine.creds.findByEmail(ctx, "omega@example.com"); found {
		t.Fatal("rejected registration must not create an account")
	}

	// Multibyte inputs of sufficient character length still pass.
	if _, err := engine.Register(ctx, RegisterRequest{
		Name:            "Ωμ",
		Email:           "omega@example.com",
		Password:        "πβγδεζηθ",
		ConfirmPassword: "πβγδεζηθ",
	}); err != nil {
		t.Fatalf("expected 2-char name and 8-char password to register: %v", err)
	}
}

func TestRegisterDuplicateEmailDistinctFromShapeError(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine(t)

	mustRegister(t, engine, "Ada Lovelace", "ada@example.com", "longenough1")

	// Case and surrounding whitespace must not defeat uniqueness.
	_, err := engine.Register(ctx, RegisterRequest{
		Name:            "Other Person",
		Email:           "  ADA@EXAMPLE.COM ",
		Password:        "otherpassword",
		ConfirmPassword: "otherpassword",
	})

	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(verrs) != 1 || verrs[0].Field != "email" || verrs[0].Kind != KindDuplicateEmail {
		t.Fatalf("expected a single duplicate_email field error, got %v", verrs)
	}
	if verrs.Has(KindInvalidEmail) {
		t.Fatal("duplicate must not be reported as a shape error")
	}
}

func TestRegisterUniquenessInvariant(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine(t)

	inputs := []string{"a@x.io", "A@x.io", " a@x.io ", "b@x.io", "B@X.IO"}
	for _, email := range inputs {
		_, _ = engine.Register(ctx, RegisterRequest{
			Name:            "Some Body",
			Email:           email,
			Password:        "longenough1",
			ConfirmPassword: "longenough1",
		})
	}

	accounts, err := engine.creds.load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	seen := map[string]bool{}
	for _, acct := range accounts {
		if seen[acct.Email] {
			t.Fatalf("duplicate normalized email stored: %q", acct.Email)
		}
		seen[acct.Email] = true
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 unique accounts, got %d", len(accounts))
	}
}

func TestRegisterStorageFailureLeavesNoPartialState(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	inner := storage.NewMemory()
	durable := newFlakyMedium(inner)
	transient := storage.NewMemory()

	engine, err := New().
		WithConfig(cfg).
		WithDurableStorage(durable).
		WithTransientStorage(transient).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	// The session write fails after the account write succeeded; the account
	// write must be rolled back.
	durable.failSets[cfg.Storage.sessionKey()] = true

	_, err = engine.Register(ctx, RegisterRequest{
		Name:            "Ada Lovelace",
		Email:           "ada@example.com",
		Password:        "longenough1",
		ConfirmPassword: "longenough1",
	})
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}

	accounts, err := engine.creds.load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(accounts) != 0 {
		t.Fatalf("expected account write rolled back, found %d accounts", len(accounts))
	}
	if sess, _ := engine.CurrentSession(ctx); sess != nil {
		t.Fatalf("expected no session, got %+v", sess)
	}
}

func TestRegisterFlagFailureRollsBackSessionAndAccount(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	durable := storage.NewMemory()
	transientInner := storage.NewMemory()
	transient := newFlakyMedium(transientInner)
	transient.failSets[cfg.Storage.flagKey()] = true

	engine, err := New().
		WithConfig(cfg).
		WithDurableStorage(durable).
		WithTransientStorage(transient).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	_, err = engine.Register(ctx, RegisterRequest{
		Name:            "Ada Lovelace",
		Email:           "ada@example.com",
		Password:        "longenough1",
		ConfirmPassword: "longenough1",
	})
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}

	if sess, _ := engine.CurrentSession(ctx); sess != nil {
		t.Fatalf("expected session rolled back, got %+v", sess)
	}
	accounts, _ := engine.creds.load(ctx)
	if len(accounts) != 0 {
		t.Fatalf("expected account rolled back, found %d", len(accounts))
	}
}

func TestRegisterCancelledDuringLatencyWait(t *testing.T) {
	cfg := testConfig()
	cfg.Latency.RegisterDelay = 50 * time.Millisecond

	durable := storage.NewMemory()
	engine, err := New().
		WithConfig(cfg).
		WithDurableStorage(durable).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = engine.Register(ctx, RegisterRequest{
		Name:            "Ada Lovelace",
		Email:           "ada@example.com",
		Password:        "longenough1",
		ConfirmPassword: "longenough1",
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if accounts, _ := engine.creds.load(context.Background()); len(accounts) != 0 {
		t.Fatal("cancelled registration must not write an account")
	}
}

func TestRegisterAgainstRedisBackedStore(t *testing.T) {
	ctx := context.Background()
	engine, rdb := newRedisEngine(t)

	mustRegister(t, engine, "Grace Hopper", "grace@example.com", "longenough1")

	raw, err := rdb.Get(ctx, "fma_users").Result()
	if err != nil {
		t.Fatalf("reading users blob failed: %v", err)
	}
	if raw == "" || raw[0] != '[' {
		t.Fatalf("expected a JSON array blob, got %q", raw)
	}

	sess, err := engine.CurrentSession(ctx)
	if err != nil || sess == nil || sess.Email != "grace@example.com" {
		t.Fatalf("expected session in redis-backed store, got %+v err=%v", sess, err)
	}
}
