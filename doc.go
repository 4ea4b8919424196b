// Package goSession provides a delegated-authorization engine for
// actor-style on-chain programs: an owner account grants a separate
// delegate key the right to perform a restricted set of actions on its
// behalf for a bounded duration, either by calling in directly or by
// presenting a detached sr25519 signature over a canonical payload.
//
// The package is the public surface. It exposes [Engine], [Builder],
// [Config], the error taxonomy, event and audit sinks, and metrics.
// Data model and stores live in the session subpackage, signature
// verification in sign, and the host clock/scheduler capabilities in
// chain.
//
// # Execution model
//
// The engine assumes the host dispatches one request to completion
// before the next begins, so no operation suspends and no locking
// guards engine state. The only cross-request ordering concern is a
// cleanup callback firing after the same owner's session has been
// replaced; [Engine.DeleteSessionFromProgram] re-checks expiry to keep
// a stale callback from destroying the replacement.
//
// # What this package must NOT do
//
//   - Interpret action tags. They are an opaque allow-list owned by the
//     hosting program.
//   - Retry collaborator failures. Scheduling failure rolls the insert
//     back; everything else is reported to the caller and nothing is
//     retried internally.
//   - Cancel scheduled cleanups. The scheduler has no cancellation
//     primitive; idempotent delete plus the expiry re-check stand in
//     for it.
package goSession
