package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/futuremakers/localauth/storage"
)

// Store reads and writes the session record and the just-logged-in flag.
//
// One Store corresponds to one page lifetime: the flag consumption latch is
// in-process state, so constructing a new Store models a fresh page load.
type Store struct {
	durable    storage.Medium
	transient  storage.Medium
	sessionKey string
	flagKey    string

	mu       sync.Mutex
	consumed bool
}

const flagValue = "1"

// NewStore wires the two media and the fully-prefixed key names.
func NewStore(durable, transient storage.Medium, sessionKey, flagKey string) *Store {
	return &Store{
		durable:    durable,
		transient:  transient,
		sessionKey: sessionKey,
		flagKey:    flagKey,
	}
}

// Current returns the active session, or nil when none exists. A corrupt
// stored blob reads as no session rather than an error; the record is
// rewritten wholesale on the next login anyway.
func (s *Store) Current(ctx context.Context) (*Record, error) {
	raw, ok, err := s.durable.Get(ctx, s.sessionKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, nil
	}
	if rec.Email == "" {
		return nil, nil
	}
	return &rec, nil
}

// Establish overwrites any existing session unconditionally. Last writer
// wins; there is no coordination between tabs sharing the medium.
func (s *Store) Establish(ctx context.Context, rec Record) error {
	blob, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.durable.Set(ctx, s.sessionKey, string(blob))
}

// Clear removes the session record and the pending flag. Clearing an absent
// session succeeds.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.durable.Delete(ctx, s.sessionKey); err != nil {
		return err
	}
	return s.transient.Delete(ctx, s.flagKey)
}

// MarkJustLoggedIn sets the one-shot flag and re-arms consumption, so a
// login later in the same page lifetime produces a fresh welcome.
func (s *Store) MarkJustLoggedIn(ctx context.Context) error {
	s.mu.Lock()
	s.consumed = false
	s.mu.Unlock()

	return s.transient.Set(ctx, s.flagKey, flagValue)
}

// ConsumeJustLoggedIn reports whether the flag was pending and clears it.
// At most one call per page lifetime returns true: the latch holds even if
// the transient delete fails, and a second call returns false regardless of
// what other code did to the medium in between.
func (s *Store) ConsumeJustLoggedIn(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.consumed {
		return false, nil
	}

	_, ok, err := s.transient.Get(ctx, s.flagKey)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	s.consumed = true
	_ = s.transient.Delete(ctx, s.flagKey)
	return true, nil
}
