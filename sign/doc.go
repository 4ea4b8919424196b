// Package sign verifies detached signatures presented as off-chain
// proof of an owner's consent to a session grant.
//
// The production scheme is sr25519 (Schnorr over ristretto255) under
// the fixed "substrate" signing context, matching what wallet tooling
// produces when asked to sign raw bytes.
package sign
