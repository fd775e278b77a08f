package localauth

import (
	"context"
	"encoding/json"

	"github.com/futuremakers/localauth/storage"
)

// credentialStore persists the registered accounts as ONE JSON array blob
// under a single durable key. Every read deserializes the whole collection
// and every write replaces it, mirroring the storage contract of the site
// this engine stands in for. An absent or corrupt blob reads as an empty
// collection, never as a fatal error.
type credentialStore struct {
	medium storage.Medium
	key    string
}

func newCredentialStore(medium storage.Medium, key string) *credentialStore {
	return &credentialStore{medium: medium, key: key}
}

// load returns all accounts in insertion order.
func (s *credentialStore) load(ctx context.Context) ([]Account, error) {
	raw, ok, err := s.medium.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var accounts []Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil, nil
	}
	return accounts, nil
}

// save replaces the whole collection.
func (s *credentialStore) save(ctx context.Context, accounts []Account) error {
	if accounts == nil {
		accounts = []Account{}
	}
	blob, err := json.Marshal(accounts)
	if err != nil {
		return err
	}
	return s.medium.Set(ctx, s.key, string(blob))
}

// findByEmail scans for the account with the given normalized email. Linear
// scan; the collection is one browser profile's worth of accounts.
func (s *credentialStore) findByEmail(ctx context.Context, email string) (Account, bool, error) {
	accounts, err := s.load(ctx)
	if err != nil {
		return Account{}, false, err
	}
	for _, acct := range accounts {
		if acct.Email == email {
			return acct, true, nil
		}
	}
	return Account{}, false, nil
}

// add appends acct after re-checking uniqueness against the snapshot read
// immediately before insertion. It returns the prior collection so the
// caller can put it back if a later write in the same operation fails.
func (s *credentialStore) add(ctx context.Context, acct Account) ([]Account, error) {
	accounts, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, existing := range accounts {
		if existing.Email == acct.Email {
			return nil, ErrDuplicateEmail
		}
	}

	if err := s.save(ctx, append(append([]Account(nil), accounts...), acct)); err != nil {
		return nil, err
	}
	return accounts, nil
}
