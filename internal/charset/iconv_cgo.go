//go:build cgo

package charset

import (
	"bytes"
	"regexp"
	"strings"

	ico "gopkg.in/iconv.v1"
)

// fixupRegex normalizes the handful of vendor-specific charset aliases GNU
// iconv doesn't recognize directly, the same table the teacher keeps in
// envelope.go's fixCharset.
var fixupRegex = regexp.MustCompile(`[_:.\\/]`)

func fixupCharset(name string) string {
	fixed := fixupRegex.ReplaceAllString(name, "-")
	replacements := [...][2]string{
		{"ks-c-5601-1987", "cp949"},
		{"x-euc", "euc"},
		{"x-windows_", "cp"},
		{"windows-", "cp"},
		{"ibm", "cp"},
		{"iso-8859-8-i", "iso-8859-8"},
	}
	for _, r := range replacements {
		fixed = strings.Replace(fixed, r[0], r[1], -1)
	}
	return fixed
}

// iconvDecoder opens an iconv conversion descriptor for name -> UTF-8 and
// converts b. It returns b verbatim (as a string) if iconv can't open the
// requested charset or the conversion panics partway through, the same
// best-effort fallback MailTransportDecode used.
func iconvDecoder(name string, b []byte) (out string) {
	cd, err := ico.Open("UTF-8", fixupCharset(strings.ToLower(name)))
	if err != nil {
		return string(b)
	}
	defer func() {
		cd.Close()
		if recover() != nil {
			out = string(b)
		}
	}()
	var buf bytes.Buffer
	buf.WriteString(cd.ConvString(string(b)))
	return buf.String()
}

// RegisterIconv installs iconv-backed decoders for the given charset names,
// overriding (or supplementing) the golang.org/x/net/html/charset registry.
func RegisterIconv(names ...string) {
	for _, n := range names {
		name := n
		Register(name, func(b []byte) string {
			return iconvDecoder(name, b)
		})
	}
}

// init wires iconv in automatically on any cgo build, the same way the
// teacher's mail/iconv/iconv.go self-registers via a blank-import init()
// instead of requiring callers to opt in by hand. The charset list covers
// the CJK and legacy 8-bit encodings iconv handles that
// golang.org/x/net/html/charset doesn't recognize on its own, plus the
// vendor aliases fixupCharset above normalizes.
func init() {
	RegisterIconv(
		"gb2312", "gb18030", "big5", "shift_jis",
		"euc-jp", "euc-kr", "ks_c_5601-1987",
		"iso-8859-1", "iso-8859-2", "iso-8859-8-i", "iso-8859-15",
		"windows-1250", "windows-1251", "windows-1252", "windows-1256",
		"koi8-r", "tis-620",
	)
}
