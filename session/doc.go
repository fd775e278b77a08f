// Package session persists the single currently-authenticated identity and
// the one-shot just-logged-in marker.
//
// # Storage layout
//
// The [Record] serializes as one JSON object under a durable key
// (current_user analog). The just-logged-in flag lives under a key in the
// TRANSIENT medium, so it survives navigation but not browser-session end.
// Establish is last-writer-wins; there is no merge and no expiry.
//
// # Architecture boundaries
//
// This package owns session persistence and flag consumption semantics. It
// does NOT verify that the identity corresponds to a stored account, render
// anything, or decide redirects — those responsibilities belong to the
// Engine and the view controller.
//
// # What this package must NOT do
//
//   - Import localauth (no upward imports).
//   - Store credential material in [Record] fields.
package session
