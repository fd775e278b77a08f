// Package localauth implements the pseudo-authentication core of a
// browser-local course site: account registration, credential verification,
// session establishment, and the one-shot welcome flag — all against injected
// key/value storage media, with no server.
//
// The package is the public surface. It exposes [Engine], [Builder], [Config],
// value types (Account, AuthResult, session records via the session
// subpackage), and the sentinel error taxonomy. Field validation lives in
// validate, credential encoding in digest, storage media in storage, and the
// session-gated page logic in view.
//
// # Execution model
//
// The modeled environment is single-threaded and event-driven: one operation
// per user gesture, run to completion, with an optional cooperative delay
// standing in for network latency. Engine methods are nevertheless safe for
// concurrent callers over a concurrency-safe [storage.Medium]; concurrent
// writers follow the same last-writer-wins rules as two browser tabs sharing
// one storage scope.
//
// # What this package must NOT do
//
//   - Perform network I/O; every effect lands in the two injected media.
//   - Treat the stored credential digest as a secure hash. It is a reversible
//     encoding kept for compatibility; see the digest package.
//   - Render UI or navigate; those belong to the view package's collaborators.
package localauth
