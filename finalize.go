package mimewalk

import (
	"unicode/utf8"

	"github.com/mailchannels/mimewalk/internal/charset"
	"github.com/mailchannels/mimewalk/internal/cursor"
	"github.com/mailchannels/mimewalk/internal/headers"
)

// finalizeText turns a decoded leaf's DecodeResult into a string per §4.3:
// an Owned payload goes through the declared charset decoder when one is
// registered, otherwise it's treated as UTF-8 (lossy on invalid bytes); a
// Borrowed range gets the same treatment but stays zero-copy whenever no
// decoder applies and the range is already valid UTF-8; Empty becomes "\n".
func finalizeText(dr cursor.DecodeResult, input []byte, ct *headers.ContentType) string {
	dec, hasDecoder := charsetDecoderFor(ct)

	switch dr.Kind {
	case cursor.Owned:
		if hasDecoder {
			return dec(dr.Bytes)
		}
		return lossyUTF8(dr.Bytes)
	case cursor.Borrowed:
		raw := input[dr.Start:dr.End]
		if hasDecoder {
			return dec(raw)
		}
		if utf8.Valid(raw) {
			return string(raw)
		}
		return lossyUTF8(raw)
	default:
		return "\n"
	}
}

// finalizeBinary turns a decoded leaf's DecodeResult into bytes; Empty
// becomes the single byte '?'.
func finalizeBinary(dr cursor.DecodeResult, input []byte) []byte {
	switch dr.Kind {
	case cursor.Owned:
		return dr.Bytes
	case cursor.Borrowed:
		return input[dr.Start:dr.End]
	default:
		return []byte{'?'}
	}
}

func charsetDecoderFor(ct *headers.ContentType) (charset.Decoder, bool) {
	name, ok := ct.GetAttribute("charset")
	if !ok || name == "" {
		return nil, false
	}
	return charset.Lookup(name)
}

// lossyUTF8 behaves like string(b) but replaces invalid sequences with the
// Unicode replacement character instead of producing an invalid string,
// the same recovery the teacher applies when a declared charset turns out
// not to describe the bytes it's handed.
func lossyUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out := make([]rune, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		out = append(out, r)
		b = b[size:]
	}
	return string(out)
}
