package headers

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/quotedprintable"
	"regexp"
	"strings"

	"github.com/mailchannels/mimewalk/internal/charset"
)

// wordDecoder is the standard library's RFC 2047 decoder, given a
// CharsetReader that defers to our own charset registry — the same
// integration point the teacher wires golang.org/x/net/html/charset or
// iconv into (mail/encoding/encoding.go, mail/iconv/iconv.go), just reused
// here instead of duplicated.
var wordDecoder = &mime.WordDecoder{
	CharsetReader: func(cs string, input io.Reader) (io.Reader, error) {
		dec, ok := charset.Lookup(cs)
		if !ok {
			return input, nil
		}
		raw, err := io.ReadAll(input)
		if err != nil {
			return input, nil
		}
		return strings.NewReader(dec(raw)), nil
	},
}

// DecodeWords decodes RFC 2047 encoded words ("=?charset?Q/B?payload?=")
// anywhere in a header value. It never errors: a header with no encoded
// words, or one the standard decoder rejects, passes through (falling back
// to a permissive regex-driven decode ported from the teacher's
// MimeHeaderDecode, which tolerates encodings net/mime considers invalid).
func DecodeWords(s string) string {
	if !strings.Contains(s, "=?") {
		return s
	}
	if decoded, err := wordDecoder.DecodeHeader(s); err == nil {
		return decoded
	}
	return decodeWordsFallback(s)
}

var encodedWordRegex = regexp.MustCompile(`=\?(\S+?)\?([QqBb])\?(.*?)\?=`)

// decodeWordsFallback mirrors envelope.go's MimeHeaderDecode: it finds each
// encoded word and replaces it with its decoded payload, tolerating
// malformed words by leaving them untouched.
func decodeWordsFallback(s string) string {
	matches := encodedWordRegex.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m[0]])
		cs := s[m[2]:m[3]]
		enc := s[m[4]:m[5]]
		payload := s[m[6]:m[7]]
		b.WriteString(decodeEncodedWord(cs, enc, payload))
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func decodeEncodedWord(charsetName, encoding, payload string) string {
	original := "=?" + charsetName + "?" + encoding + "?" + payload + "?="
	var raw []byte
	switch strings.ToUpper(encoding) {
	case "B":
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return original
		}
		raw = decoded
	case "Q":
		unq := strings.ReplaceAll(payload, "_", " ")
		decoded, err := io.ReadAll(quotedprintable.NewReader(bytes.NewReader([]byte(unq))))
		if err != nil && len(decoded) == 0 {
			return original
		}
		raw = decoded
	default:
		return original
	}
	if dec, ok := charset.Lookup(charsetName); ok {
		return dec(raw)
	}
	return string(raw)
}
