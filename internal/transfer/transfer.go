// Package transfer dispatches Content-Transfer-Encoding payloads to the
// right decoder and reports how many input bytes were consumed, the way
// the teacher's envelope.go dispatches on encodingType in
// MailTransportDecode — except here the payload is read straight off the
// input slice up to a multipart boundary instead of being handed in
// pre-extracted.
package transfer

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime/quotedprintable"

	qprintable "github.com/sloonz/go-qprintable"

	"github.com/mailchannels/mimewalk/internal/cursor"
)

// DecodeFunc matches the signature the core engine dispatches through:
// (cursor, start, boundary) -> (bytes consumed from the input stream, result).
type DecodeFunc func(c *cursor.Cursor, start int, boundary []byte) (int, cursor.DecodeResult)

// Select returns whether the named encoding is treated as binary-opaque
// (raw, copy-through) and the decoder to run for it. An empty or unknown
// encoding name is treated as raw.
func Select(encoding string) (isBinary bool, fn DecodeFunc) {
	switch asciiLower(encoding) {
	case "base64":
		return false, Base64Decode
	case "quoted-printable":
		return false, QuotedPrintableDecode
	default:
		return true, cursor.GetBytesToBoundary
	}
}

// Base64Decode decodes a base64 payload running from start up to boundary
// (or to end of input when boundary is empty).
func Base64Decode(c *cursor.Cursor, start int, boundary []byte) (int, cursor.DecodeResult) {
	consumed, raw := sliceToBoundary(c, start, boundary)
	if consumed == 0 {
		return 0, cursor.EmptyResult
	}
	// Fold/whitespace noise is dropped before decoding, so folded payloads
	// decode in a single pass. Whatever still fails to decode (e.g. prose in
	// a body that merely declared base64) yields Empty, leaving the caller
	// to fall back to the raw bytes.
	filtered := stripBase64Noise(raw)
	decoded := make([]byte, base64.StdEncoding.DecodedLen(len(filtered)))
	n, err := base64.StdEncoding.Decode(decoded, filtered)
	if err != nil {
		return 0, cursor.EmptyResult
	}
	if n == 0 {
		return 0, cursor.EmptyResult
	}
	return consumed, cursor.OwnedResult(decoded[:n])
}

// QuotedPrintableDecode decodes a quoted-printable payload running from
// start up to boundary. It tries the standard library decoder first and
// falls back to a more permissive decoder for payloads the standard
// library rejects outright (stray '=' not followed by a hex pair, bare
// high bytes), matching the leniency the corpus's hand-rolled QP decoders
// apply.
func QuotedPrintableDecode(c *cursor.Cursor, start int, boundary []byte) (int, cursor.DecodeResult) {
	consumed, raw := sliceToBoundary(c, start, boundary)
	if consumed == 0 {
		return 0, cursor.EmptyResult
	}
	decoded, err := io.ReadAll(quotedprintable.NewReader(bytes.NewReader(raw)))
	if err != nil || len(decoded) == 0 {
		if fallback, fbErr := io.ReadAll(qprintable.NewDecoder(qprintable.BinaryEncoding, bytes.NewReader(raw))); fbErr == nil && len(fallback) > 0 {
			return consumed, cursor.OwnedResult(fallback)
		}
		if len(decoded) == 0 {
			return 0, cursor.EmptyResult
		}
	}
	return consumed, cursor.OwnedResult(decoded)
}

func sliceToBoundary(c *cursor.Cursor, start int, boundary []byte) (int, []byte) {
	if start >= len(c.Data) {
		return 0, nil
	}
	if len(boundary) == 0 {
		return len(c.Data) - start, c.Data[start:]
	}
	contentEnd, consumed, found := cursor.FindBoundary(c.Data, start, boundary)
	if !found {
		return 0, nil
	}
	return consumed, c.Data[start:contentEnd]
}

// stripBase64Noise drops bytes outside the base64 alphabet (and padding)
// so a decoder doesn't choke on embedded CRLFs or stray whitespace.
func stripBase64Noise(raw []byte) []byte {
	out := make([]byte, 0, len(raw))
	for _, b := range raw {
		switch {
		case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9', b == '+', b == '/', b == '=':
			out = append(out, b)
		}
	}
	return out
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 32
		}
	}
	return string(b)
}
