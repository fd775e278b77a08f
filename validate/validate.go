package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// emailShape is deliberately loose: one or more non-space/non-@ characters,
// an @, the same for the domain, a dot, the same for the TLD. Stored accounts
// were keyed with this exact rule, so tightening it would strand existing
// registrations.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EmailShape reports whether s looks like local@domain.tld.
func EmailShape(s string) bool {
	return emailShape.MatchString(s)
}

// NonEmptyTrimmed reports whether s has at least minLen characters after
// trimming surrounding whitespace. Characters are counted as runes, so a
// multibyte name like "Ωμ" is two characters, not four.
func NonEmptyTrimmed(s string, minLen int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= minLen
}

// NormalizeEmail lowercases s and strips surrounding whitespace. All account
// keys and lookups go through this before touching storage.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
