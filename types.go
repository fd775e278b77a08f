package localauth

// Account is a registered identity as persisted in the users blob.
//
// Email is the unique key, already normalized (trimmed, lowercased) before
// the record is created. CredentialDigest holds the encoded password — see
// the digest package for why that encoding must not be mistaken for a hash.
// Accounts are never mutated or deleted by this core; they persist until the
// durable medium is cleared externally.
type Account struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	CredentialDigest string `json:"credentialDigest"`
}

// RegisterRequest defines a public type used by localauth APIs.
//
// RegisterRequest instances are intended to be filled from form input and passed to [Engine.Register] unchanged; normalization happens inside.
type RegisterRequest struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginRequest defines a public type used by localauth APIs.
//
// LoginRequest instances are intended to be filled from form input and passed to [Engine.Login] unchanged; normalization happens inside.
type LoginRequest struct {
	Email    string
	Password string
}

// AuthResult carries the identity whose session was just established. It
// never contains credential material.
type AuthResult struct {
	Name  string
	Email string
}
