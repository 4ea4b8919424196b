package session

import (
	"encoding/hex"
	"errors"
	"time"
)

// ErrBadAccountID is returned when account identifier bytes are not exactly 32 bytes long.
var ErrBadAccountID = errors.New("account id must be 32 bytes")

// AccountID identifies an on-chain account. For accounts that authorize
// sessions by signature, the identifier doubles as the account's sr25519
// public key bytes.
type AccountID [32]byte

// AccountIDFromBytes copies b into an AccountID. It fails unless b is
// exactly 32 bytes.
func AccountIDFromBytes(b []byte) (AccountID, error) {
	var id AccountID
	if len(b) != len(id) {
		return AccountID{}, ErrBadAccountID
	}
	copy(id[:], b)
	return id, nil
}

// Bytes returns the raw identifier bytes.
func (id AccountID) Bytes() []byte {
	return id[:]
}

// IsZero reports whether the identifier is the all-zero account.
func (id AccountID) IsZero() bool {
	return id == AccountID{}
}

// String renders the identifier as lowercase hex.
func (id AccountID) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText renders the identifier as hex for JSON and log output.
func (id AccountID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses a hex identifier.
func (id *AccountID) UnmarshalText(text []byte) error {
	parsed, err := parseAccountHex(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func parseAccountHex(s string) (AccountID, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return AccountID{}, err
	}
	return AccountIDFromBytes(b)
}

// ActionTag names one action a delegate is allowed to invoke on the
// owner's behalf. The engine treats tags as opaque tokens; the hosting
// program decides what they mean.
type ActionTag string

// Session defines a public type used by goSession APIs.
//
// Session instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Session struct {
	// Delegate is the account/key authorized to act for the owner.
	Delegate AccountID
	// ExpiresAt is the wall-clock deadline. Advisory only: external
	// observers may display it, but cleanup never gates on it.
	ExpiresAt time.Time
	// ExpiresAtTick is the authoritative expiry on the monotonic tick
	// axis (block height).
	ExpiresAtTick uint32
	// AllowedActions lists what the delegate may invoke. Never empty
	// for a stored session; duplicates are permitted.
	AllowedActions []ActionTag
}

// ActiveAt reports whether the session is still active at the given tick.
func (s *Session) ActiveAt(tick uint32) bool {
	return s != nil && s.ExpiresAtTick > tick
}

// clone returns an independent copy so stored sessions never share the
// AllowedActions backing array with callers.
func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	dup := *s
	dup.AllowedActions = append([]ActionTag(nil), s.AllowedActions...)
	return &dup
}

// Request defines a public type used by goSession APIs.
//
// Request instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Request struct {
	// Delegate is the counterparty account: the delegate key on a
	// direct grant, or the granting owner when the request travels
	// with a detached signature.
	Delegate AccountID
	// Duration is how long the grant should stay valid.
	Duration time.Duration
	// AllowedActions lists the actions the grant covers.
	AllowedActions []ActionTag
}

// Entry pairs a stored session with the owner account it is keyed by.
type Entry struct {
	Account AccountID
	Session Session
}
