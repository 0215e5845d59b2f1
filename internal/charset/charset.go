// Package charset is the charset registry the Part Finalizer consults to
// turn a decoded byte payload into UTF-8. The default registry is backed by
// golang.org/x/net/html/charset, the same library the teacher wires in
// mail/encoding/encoding.go; a broader-coverage registry backed by cgo
// iconv bindings (mail/iconv/iconv.go in the teacher) self-registers via
// an init() in iconv_cgo.go, live automatically on any build with the
// "cgo" tag.
package charset

import (
	"io"
	"strings"

	htmlcharset "golang.org/x/net/html/charset"
)

// Decoder converts a byte payload in some named charset to a UTF-8 string.
type Decoder func([]byte) string

// Lookup returns a Decoder for name (ASCII case-insensitive, e.g.
// "iso-8859-1", "windows-1252", "shift_jis"). It reports false when no
// decoder is available, in which case callers fall back to lossy UTF-8.
func Lookup(name string) (Decoder, bool) {
	if name == "" {
		return nil, false
	}
	if d, ok := overrides[normalize(name)]; ok {
		return d, true
	}
	enc, canonical := htmlcharset.Lookup(name)
	if enc == nil && !strings.EqualFold(canonical, "utf-8") {
		return nil, false
	}
	return func(b []byte) string {
		r, err := htmlcharset.NewReaderLabel(name, strings.NewReader(string(b)))
		if err != nil {
			return string(b)
		}
		out, err := io.ReadAll(r)
		if err != nil && len(out) == 0 {
			return string(b)
		}
		return string(out)
	}, true
}

// overrides lets an alternate registry (e.g. the cgo iconv build) register
// decoders for charsets golang.org/x/net/html/charset doesn't know, without
// either package depending on the other.
var overrides = map[string]Decoder{}

// Register installs or replaces the decoder used for name.
func Register(name string, d Decoder) {
	overrides[normalize(name)] = d
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
