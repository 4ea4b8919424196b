package goSession

import (
	"errors"

	"github.com/MrEthical07/goSession/sign"
)

// Cryptographic failures keep the sign package's identities so callers
// can match either surface with errors.Is.
var (
	// ErrBadSignature is an exported constant or variable used by the session engine.
	ErrBadSignature = sign.ErrBadSignature
	// ErrBadPublicKey is an exported constant or variable used by the session engine.
	ErrBadPublicKey = sign.ErrBadPublicKey
	// ErrVerificationFailed is an exported constant or variable used by the session engine.
	ErrVerificationFailed = sign.ErrVerificationFailed
)

var (
	// ErrDurationTooSmall is an exported constant or variable used by the session engine.
	ErrDurationTooSmall = errors.New("session duration below configured minimum")
	// ErrDurationTooLarge is an exported constant or variable used by the session engine.
	ErrDurationTooLarge = errors.New("session duration exceeds tick counter range")
	// ErrNoAllowedActions is an exported constant or variable used by the session engine.
	ErrNoAllowedActions = errors.New("session request allows no actions")
	// ErrAlreadyHasActiveSession is an exported constant or variable used by the session engine.
	ErrAlreadyHasActiveSession = errors.New("account already has an active session")
	// ErrNoSession is an exported constant or variable used by the session engine.
	ErrNoSession = errors.New("no session for account")
	// ErrTooEarlyToDelete is returned when a cleanup callback finds a session whose
	// expiry is still in the future, i.e. the owner created a replacement after the
	// callback was scheduled.
	ErrTooEarlyToDelete = errors.New("session not yet expired")
	// ErrNotSelfInvoked is returned when anyone but the program itself calls the
	// scheduled-cleanup entry point.
	ErrNotSelfInvoked = errors.New("cleanup entry point reserved for the program itself")
	// ErrSchedulingFailed is an exported constant or variable used by the session engine.
	ErrSchedulingFailed = errors.New("scheduling session cleanup failed")
	// ErrNotificationFailed is returned after a committed state change whose event
	// could not be published. The state change stands.
	ErrNotificationFailed = errors.New("event notification failed")
	// ErrStoreUnavailable is an exported constant or variable used by the session engine.
	ErrStoreUnavailable = errors.New("session store unavailable")
	// ErrEngineNotReady is an exported constant or variable used by the session engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
