// Package session holds the session data model, the canonical signing
// payload encoder, and the Store implementations (in-memory and Redis).
//
// The package is deliberately dumb: it enforces key uniqueness by
// construction and nothing else. All validation, expiry, and signature
// logic lives in the root goSession package.
package session
