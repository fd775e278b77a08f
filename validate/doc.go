// Package validate provides the stateless field-level checks shared by the
// authentication engine and unrelated form code (contact forms use the same
// rules for name and message fields).
//
// # Architecture boundaries
//
// Functions here are pure: no storage, no notification, no navigation. The
// engine composes them into per-operation validation policy; this package
// never decides which fields an operation requires.
//
// # What this package must NOT do
//
//   - Import localauth or any sibling package.
//   - Produce user-facing messages; callers own presentation.
package validate
