package sign

import (
	"errors"

	schnorrkel "github.com/ChainSafe/go-schnorrkel"
)

// ErrBadSignature is returned when signature bytes are not a well-formed sr25519 signature.
var ErrBadSignature = errors.New("malformed signature")

// ErrBadPublicKey is returned when public key bytes do not decode to a valid sr25519 public key.
var ErrBadPublicKey = errors.New("malformed public key")

// ErrVerificationFailed is returned when a well-formed signature does not verify against the key and message.
var ErrVerificationFailed = errors.New("signature verification failed")

// signingContext is the domain-separation label; every signature is
// bound to it so session proofs cannot be replayed in other protocols.
var signingContext = []byte("substrate")

const signatureLength = 64

// Verifier checks a detached signature of one known scheme against a
// 32-byte public key and a message.
type Verifier interface {
	Verify(pub [32]byte, message, signature []byte) error
}

// SR25519 is the production Verifier.
type SR25519 struct{}

// Verify checks an sr25519 signature over message under the fixed
// signing context. The three failure modes are distinguished so callers
// can report malformed input separately from a genuine mismatch.
func (SR25519) Verify(pub [32]byte, message, signature []byte) error {
	if len(signature) != signatureLength {
		return ErrBadSignature
	}
	var sigBytes [signatureLength]byte
	copy(sigBytes[:], signature)

	sig := new(schnorrkel.Signature)
	if err := sig.Decode(sigBytes); err != nil {
		return ErrBadSignature
	}
	key := new(schnorrkel.PublicKey)
	if err := key.Decode(pub); err != nil {
		return ErrBadPublicKey
	}
	ok, err := key.Verify(sig, schnorrkel.NewSigningContext(signingContext, message))
	if err != nil || !ok {
		return ErrVerificationFailed
	}
	return nil
}

// Sign produces a signature CreateSession would accept for message under
// the given secret key. Intended for tests and tooling; real owners sign
// with their wallet.
func Sign(secret *schnorrkel.SecretKey, message []byte) ([]byte, error) {
	sig, err := secret.Sign(schnorrkel.NewSigningContext(signingContext, message))
	if err != nil {
		return nil, err
	}
	out := sig.Encode()
	return out[:], nil
}
