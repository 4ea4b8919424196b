package session

import (
	"errors"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// blobVersion is bumped whenever the stored layout changes. Decoders
// reject versions they do not know instead of guessing.
const blobVersion = 1

// ErrBlobTruncated is returned when a stored session blob is too short to carry a version byte.
var ErrBlobTruncated = errors.New("session blob truncated")

// ErrBlobVersion is returned when a stored session blob carries an unknown format version.
var ErrBlobVersion = errors.New("unsupported session blob version")

// ErrBlobCorrupt is returned when a stored session blob fails to decode.
var ErrBlobCorrupt = errors.New("session blob corrupt")

// encMode uses Core Deterministic Encoding so the same session always
// produces identical bytes regardless of the writing process.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("session: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("session: CBOR decoder initialization failed: " + err.Error())
	}
}

type sessionBlob struct {
	Delegate      [32]byte `cbor:"1,keyasint"`
	ExpiresAtUnix int64    `cbor:"2,keyasint"`
	ExpiresAtTick uint32   `cbor:"3,keyasint"`
	Actions       []string `cbor:"4,keyasint"`
}

// Encode serializes a session to its versioned storage blob.
func Encode(s *Session) ([]byte, error) {
	if s == nil {
		return nil, ErrBlobCorrupt
	}
	blob := sessionBlob{
		Delegate:      s.Delegate,
		ExpiresAtUnix: s.ExpiresAt.UnixMilli(),
		ExpiresAtTick: s.ExpiresAtTick,
		Actions:       make([]string, 0, len(s.AllowedActions)),
	}
	for _, tag := range s.AllowedActions {
		blob.Actions = append(blob.Actions, string(tag))
	}
	body, err := encMode.Marshal(blob)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 1+len(body))
	out = append(out, blobVersion)
	return append(out, body...), nil
}

// Decode parses a versioned storage blob back into a session.
func Decode(data []byte) (*Session, error) {
	if len(data) < 2 {
		return nil, ErrBlobTruncated
	}
	if data[0] != blobVersion {
		return nil, ErrBlobVersion
	}
	var blob sessionBlob
	if err := decMode.Unmarshal(data[1:], &blob); err != nil {
		return nil, ErrBlobCorrupt
	}
	s := &Session{
		Delegate:       blob.Delegate,
		ExpiresAt:      time.UnixMilli(blob.ExpiresAtUnix).UTC(),
		ExpiresAtTick:  blob.ExpiresAtTick,
		AllowedActions: make([]ActionTag, 0, len(blob.Actions)),
	}
	for _, tag := range blob.Actions {
		s.AllowedActions = append(s.AllowedActions, ActionTag(tag))
	}
	return s, nil
}
