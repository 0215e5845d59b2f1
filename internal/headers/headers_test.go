package headers

import (
	"testing"

	"github.com/mailchannels/mimewalk/internal/cursor"
)

func TestParseBlockFoldsContinuations(t *testing.T) {
	raw := "Subject: hello\r\n world\r\nFrom: a@b.com\r\n\r\nbody follows"
	c := cursor.New([]byte(raw))
	h, ok := ParseBlock(c)
	if !ok {
		t.Fatal("expected header fields to be parsed")
	}
	if got := h.Get("Subject"); got != "hello world" {
		t.Errorf("Subject = %q, want %q", got, "hello world")
	}
	if got := h.Get("From"); got != "a@b.com" {
		t.Errorf("From = %q, want %q", got, "a@b.com")
	}
	// The blank line's own CRLF is left in the stream for a boundary
	// search to see; callers consume it with SkipCRLF.
	if got := string(c.Data[c.Pos:]); got != "\r\nbody follows" {
		t.Errorf("cursor left at %q, want %q", got, "\r\nbody follows")
	}
	c.SkipCRLF()
	if got := string(c.Data[c.Pos:]); got != "body follows" {
		t.Errorf("after SkipCRLF, cursor left at %q, want %q", got, "body follows")
	}
}

func TestParseBlockDiscardsMalformedLines(t *testing.T) {
	raw := "not a header line\r\nSubject: ok\r\n\r\n"
	c := cursor.New([]byte(raw))
	h, ok := ParseBlock(c)
	if !ok {
		t.Fatal("expected progress from the one valid field")
	}
	if got := h.Get("Subject"); got != "ok" {
		t.Errorf("Subject = %q, want %q", got, "ok")
	}
}

func TestParseBlockNoFields(t *testing.T) {
	c := cursor.New([]byte("\r\nbody"))
	_, ok := ParseBlock(c)
	if ok {
		t.Error("expected no progress on an immediate blank line")
	}
}

func TestParseContentType(t *testing.T) {
	ct := ParseContentType(`multipart/mixed; boundary="abc123"; charset=utf-8`)
	if ct == nil {
		t.Fatal("expected a parsed ContentType")
	}
	if ct.Type != "multipart" || ct.Subtype != "mixed" {
		t.Errorf("type/subtype = %s/%s", ct.Type, ct.Subtype)
	}
	if v, ok := ct.GetAttribute("boundary"); !ok || v != "abc123" {
		t.Errorf("boundary = %q, %v", v, ok)
	}
	if v, ok := ct.GetAttribute("charset"); !ok || v != "utf-8" {
		t.Errorf("charset = %q, %v", v, ok)
	}
	if ct.HasAttribute("missing") {
		t.Error("unexpected attribute present")
	}
}

func TestParseContentTypeNoTypePair(t *testing.T) {
	if ParseContentType("garbage;;;") != nil {
		t.Error("expected nil for a value with no type/subtype")
	}
}

func TestParseContentTypeNilSafe(t *testing.T) {
	var ct *ContentType
	if ct.HasAttribute("x") {
		t.Error("nil ContentType should report no attributes")
	}
	if _, ok := ct.GetAttribute("x"); ok {
		t.Error("nil ContentType should report no attributes")
	}
}

func TestDecodeWordsPassthrough(t *testing.T) {
	if got := DecodeWords("plain subject"); got != "plain subject" {
		t.Errorf("DecodeWords passthrough = %q", got)
	}
}

func TestDecodeWordsBase64(t *testing.T) {
	// "Héllo" in UTF-8, base64-encoded.
	got := DecodeWords("=?UTF-8?B?SMOpbGxv?=")
	if got != "Héllo" {
		t.Errorf("DecodeWords = %q, want %q", got, "Héllo")
	}
}

func TestGetContentType(t *testing.T) {
	h := Headers{"Content-Type": []string{"text/html; charset=us-ascii"}}
	ct := GetContentType(h)
	if ct == nil || ct.Type != "text" || ct.Subtype != "html" {
		t.Errorf("GetContentType = %+v", ct)
	}

	if GetContentType(Headers{}) != nil {
		t.Error("expected nil when Content-Type absent")
	}
}

func TestParseContentDisposition(t *testing.T) {
	d := ParseContentDisposition(`attachment; filename="report.pdf"; size=1024`)
	if d == nil {
		t.Fatal("expected a parsed ContentDisposition")
	}
	if !d.IsAttachment() {
		t.Error("expected IsAttachment() true")
	}
	if v, ok := d.GetAttribute("filename"); !ok || v != "report.pdf" {
		t.Errorf("filename = %q, %v", v, ok)
	}
	if v, ok := d.GetAttribute("size"); !ok || v != "1024" {
		t.Errorf("size = %q, %v", v, ok)
	}
	if d.HasAttribute("missing") {
		t.Error("unexpected attribute present")
	}
}

func TestParseContentDispositionInline(t *testing.T) {
	d := ParseContentDisposition("inline")
	if d == nil || d.IsAttachment() {
		t.Errorf("expected a non-attachment disposition, got %+v", d)
	}
}

func TestParseContentDispositionEncodedFilename(t *testing.T) {
	// "Héllo.pdf" in UTF-8, base64-encoded, the same RFC 2047 shape a
	// Subject header would use.
	d := ParseContentDisposition(`attachment; filename="=?UTF-8?B?SMOpbGxvLnBkZg==?="`)
	if d == nil {
		t.Fatal("expected a parsed ContentDisposition")
	}
	if v, ok := d.GetAttribute("filename"); !ok || v != "Héllo.pdf" {
		t.Errorf("filename = %q, %v, want decoded %q", v, ok, "Héllo.pdf")
	}
}

func TestGetFilenamePrefersContentDisposition(t *testing.T) {
	h := Headers{
		"Content-Type":        []string{`image/png; name="fallback.png"`},
		"Content-Disposition": []string{`attachment; filename="real.png"`},
	}
	ct := GetContentType(h)
	if v, ok := GetFilename(h, ct); !ok || v != "real.png" {
		t.Errorf("GetFilename = %q, %v, want %q", v, ok, "real.png")
	}
}

func TestGetFilenameFallsBackToContentTypeName(t *testing.T) {
	h := Headers{"Content-Type": []string{`image/png; name="fallback.png"`}}
	ct := GetContentType(h)
	if v, ok := GetFilename(h, ct); !ok || v != "fallback.png" {
		t.Errorf("GetFilename = %q, %v, want %q", v, ok, "fallback.png")
	}
}

func TestGetFilenameAbsent(t *testing.T) {
	if _, ok := GetFilename(Headers{}, nil); ok {
		t.Error("expected no filename when neither header is present")
	}
}

func TestIsAttachment(t *testing.T) {
	tests := []struct {
		disposition string
		want        bool
	}{
		{"attachment; filename=\"x.pdf\"", true},
		{"ATTACHMENT", true},
		{"inline", false},
		{"", false},
	}
	for _, tt := range tests {
		h := Headers{}
		if tt.disposition != "" {
			h["Content-Disposition"] = []string{tt.disposition}
		}
		if got := IsAttachment(h); got != tt.want {
			t.Errorf("IsAttachment(%q) = %v, want %v", tt.disposition, got, tt.want)
		}
	}
}
