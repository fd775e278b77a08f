package digest

import (
	"crypto/subtle"
	"encoding/base64"
)

// Encode returns the stored form of a plaintext password: standard base64,
// matching what the legacy site wrote into its user records.
func Encode(password string) string {
	return base64.StdEncoding.EncodeToString([]byte(password))
}

// Matches reports whether stored is the encoding of password. The compare is
// constant-time; with a reversible encoding that is a small courtesy rather
// than real protection, but it keeps the call site honest if the encoding is
// ever replaced.
func Matches(stored, password string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(Encode(password))) == 1
}
