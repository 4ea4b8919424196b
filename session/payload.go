package session

import "encoding/binary"

// Off-chain signing tools wrap raw payloads in these markers before
// signing, so verification must reproduce them byte for byte.
var (
	payloadPrefix = []byte("<Bytes>")
	payloadSuffix = []byte("</Bytes>")
)

// SigningPayload builds the canonical byte sequence an owner signs to
// authorize a session without sending a transaction itself. The caller
// is expected to pass a Request whose Delegate field is the account
// being authorized (the transaction sender), so the signature reads as
// "I authorize Delegate for Duration with these actions".
//
// Layout between the markers, fixed by the wire format:
//
//	delegate   32 raw bytes
//	duration   u64 little-endian milliseconds
//	actions    compact-length vector of compact-length UTF-8 tags
func SigningPayload(req Request) []byte {
	body := encodeRequest(req)
	out := make([]byte, 0, len(payloadPrefix)+len(body)+len(payloadSuffix))
	out = append(out, payloadPrefix...)
	out = append(out, body...)
	out = append(out, payloadSuffix...)
	return out
}

func encodeRequest(req Request) []byte {
	var out []byte
	out = append(out, req.Delegate[:]...)
	out = binary.LittleEndian.AppendUint64(out, uint64(req.Duration.Milliseconds()))
	out = appendCompact(out, uint64(len(req.AllowedActions)))
	for _, tag := range req.AllowedActions {
		out = appendCompact(out, uint64(len(tag)))
		out = append(out, tag...)
	}
	return out
}

// appendCompact appends n in SCALE compact integer form: two low bits
// select the mode, the value occupies the remaining bits little-endian.
func appendCompact(out []byte, n uint64) []byte {
	switch {
	case n < 1<<6:
		return append(out, byte(n<<2))
	case n < 1<<14:
		return binary.LittleEndian.AppendUint16(out, uint16(n<<2)|0b01)
	case n < 1<<30:
		return binary.LittleEndian.AppendUint32(out, uint32(n<<2)|0b10)
	default:
		// Big-integer mode: length nibble then minimal little-endian bytes.
		var le [8]byte
		binary.LittleEndian.PutUint64(le[:], n)
		width := len(le)
		for width > 4 && le[width-1] == 0 {
			width--
		}
		out = append(out, byte(width-4)<<2|0b11)
		return append(out, le[:width]...)
	}
}
