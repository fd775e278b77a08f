// Package view implements the session-gated page logic: deciding per page
// load what to render for a guest versus an authenticated visitor, redirecting
// away from protected pages, and driving the login/register/logout
// affordances.
//
// # Collaborators
//
// The controller requires a [Notifier] (toasts and modals, returning the
// user's chosen action) and a [Navigator] (full-page navigation). Both are
// mandatory at construction — there is no runtime presence probing and no
// silent fallback.
//
// # State model
//
// Two states per page load, Guest and Authenticated, recomputed fresh every
// load. There is no client-side routing and no persisted UI state machine;
// the only terminal transition is the redirect-to-login navigation on a
// protected page.
//
// # What this package must NOT do
//
//   - Touch storage media directly; all state flows through the Engine.
//   - Retry failed submissions; the user resubmits.
package view
