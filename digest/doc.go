// Package digest implements the stored credential encoding and its
// verification.
//
// # Compatibility warning
//
// The encoding is plain base64 of the password bytes — reversible, not a
// hash. It is kept bit-for-bit so that accounts written by earlier builds of
// the site keep verifying. A real deployment must replace this with a salted
// one-way KDF (argon2id or similar) and migrate stored records; nothing in
// this package is a security boundary.
//
// # Architecture boundaries
//
// This package owns encoding and comparison only. It does NOT read storage,
// enforce password policy, or decide login outcomes — those responsibilities
// belong to the engine.
package digest
