// Package storage abstracts the persisted key/value media the engine writes to:
// a durable medium (the localStorage analog, survives restarts) and a transient
// medium (the sessionStorage analog, cleared at browser-session end).
//
// # Design
//
// A [Medium] is a flat string key/value space with explicit absence. The engine
// never reaches for ambient storage; both media are injected at construction so
// tests can substitute [Memory] and deployments can back the durable medium
// with Redis through [Redis].
//
// # Architecture boundaries
//
// This package owns byte-level persistence only. It does NOT interpret account
// or session records, normalize keys, or make authentication decisions — those
// responsibilities belong to the engine and the session store.
//
// # What this package must NOT do
//
//   - Import localauth or any sibling package (no upward imports).
//   - Retry failed operations; availability errors surface to the caller.
package storage
