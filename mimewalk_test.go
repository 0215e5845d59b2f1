package mimewalk

import (
	"strings"
	"testing"
)

func joinCRLF(lines ...string) []byte {
	return []byte(strings.Join(lines, "\r\n"))
}

func TestParsePlainTextNoMime(t *testing.T) {
	raw := joinCRLF(
		"From: a@example.com",
		"To: b@example.com",
		"Subject: hello",
		"",
		"just a plain body",
	)
	msg := Parse(raw)
	if msg == nil {
		t.Fatal("expected a parsed message")
	}
	if got := msg.Headers.Get("Subject"); got != "hello" {
		t.Errorf("Subject = %q, want %q", got, "hello")
	}
	if len(msg.TextBody) != 1 || msg.TextBody[0].Kind != InlineText {
		t.Fatalf("expected one inline text body part, got %+v", msg.TextBody)
	}
	if got := msg.TextBody[0].Text.Contents; got != "just a plain body" {
		t.Errorf("body = %q", got)
	}
	// The only body part found satisfies both need_html_body and
	// need_text_body, so an HTML rendition is synthesized alongside it.
	if len(msg.HTMLBody) != 1 {
		t.Fatalf("expected a synthesized html body part, got %d", len(msg.HTMLBody))
	}
	if got := msg.HTMLBody[0].Text.Contents; !strings.Contains(got, "just a plain body") {
		t.Errorf("synthesized html = %q", got)
	}
}

func TestParseNoHeadersReturnsNil(t *testing.T) {
	if msg := Parse([]byte("not a message at all, no colon anywhere")); msg != nil {
		t.Errorf("expected nil, got %+v", msg)
	}
}

func TestParseMultipartAlternativeHTMLOnlySynthesizesText(t *testing.T) {
	raw := joinCRLF(
		"From: a@example.com",
		"Subject: alt",
		`Content-Type: multipart/alternative; boundary="b1"`,
		"",
		"--b1",
		"Content-Type: text/html",
		"",
		"<p>hello <b>world</b></p>",
		"--b1--",
		"",
	)
	msg := Parse(raw)
	if msg == nil {
		t.Fatal("expected a parsed message")
	}
	if len(msg.HTMLBody) != 1 {
		t.Fatalf("expected one html body part, got %d", len(msg.HTMLBody))
	}
	if len(msg.TextBody) != 1 {
		t.Fatalf("expected a synthesized text body part, got %d", len(msg.TextBody))
	}
	text := msg.TextBody[0].Text.Contents
	if !strings.Contains(text, "hello") || !strings.Contains(text, "world") {
		t.Errorf("synthesized text = %q", text)
	}
	if strings.Contains(text, "<p>") {
		t.Errorf("synthesized text still has markup: %q", text)
	}
}

func TestParseMultipartMixedWithInlineImage(t *testing.T) {
	raw := joinCRLF(
		"From: a@example.com",
		"Subject: pic",
		`Content-Type: multipart/mixed; boundary="b1"`,
		"",
		"--b1",
		"Content-Type: text/plain",
		"",
		"see attached",
		"--b1",
		"Content-Type: image/png",
		"Content-Transfer-Encoding: base64",
		"",
		"aGVsbG8=",
		"--b1--",
		"",
	)
	msg := Parse(raw)
	if msg == nil {
		t.Fatal("expected a parsed message")
	}
	// "see attached" is the first part of the level: it is inline and, with
	// need_html_body/need_text_body both still set, lands in both body
	// lists (one native, one synthesized).
	if len(msg.TextBody) != 2 || msg.TextBody[0].Text.Contents != "see attached" {
		t.Fatalf("unexpected text body: %+v", msg.TextBody)
	}
	if len(msg.HTMLBody) != 2 {
		t.Fatalf("unexpected html body: %+v", msg.HTMLBody)
	}
	if msg.TextBody[1].Kind != InlineBinaryRef || msg.HTMLBody[1].Kind != InlineBinaryRef {
		t.Fatalf("expected the inline image referenced from both bodies: text=%+v html=%+v",
			msg.TextBody[1], msg.HTMLBody[1])
	}

	var foundBinary bool
	for _, att := range msg.Attachments {
		if att.Kind == PartInlineBinary {
			foundBinary = true
			if got := string(att.Binary.Contents); got != "hello" {
				t.Errorf("decoded attachment = %q, want %q", got, "hello")
			}
		}
	}
	if !foundBinary {
		t.Errorf("expected an inline-binary attachment, got %+v", msg.Attachments)
	}
}

func TestParseNestedMessageRFC822(t *testing.T) {
	raw := joinCRLF(
		"From: a@example.com",
		"Subject: wrapper",
		`Content-Type: multipart/mixed; boundary="b1"`,
		"",
		"--b1",
		"Content-Type: text/plain",
		"",
		"outer body",
		"--b1",
		"Content-Type: message/rfc822",
		"",
		"From: nested@example.com",
		"Subject: inner",
		"",
		"inner body",
		"--b1--",
		"",
	)
	msg := Parse(raw)
	if msg == nil {
		t.Fatal("expected a parsed message")
	}
	var nested *Message
	for _, att := range msg.Attachments {
		if att.Kind == PartMessage {
			nested = att.Message
		}
	}
	if nested == nil {
		t.Fatal("expected a nested message attachment")
	}
	if got := nested.Headers.Get("Subject"); got != "inner" {
		t.Errorf("nested subject = %q, want %q", got, "inner")
	}
	if len(nested.TextBody) != 1 || nested.TextBody[0].Text.Contents != "inner body" {
		t.Errorf("nested body = %+v", nested.TextBody)
	}
}

func TestParseMalformedBase64Recovers(t *testing.T) {
	raw := joinCRLF(
		"From: a@example.com",
		"Subject: broken",
		"Content-Type: text/plain",
		"Content-Transfer-Encoding: base64",
		"",
		"this is not valid base64 content!!",
	)
	msg := Parse(raw)
	if msg == nil {
		t.Fatal("expected a parsed message even with undecodable body")
	}
	// Recovery re-reads the body raw and demotes it to a non-inline generic
	// text part, so it is kept verbatim among the attachments.
	if len(msg.Attachments) != 1 || msg.Attachments[0].Kind != PartText ||
		msg.Attachments[0].Text.Contents != "this is not valid base64 content!!" {
		t.Fatalf("expected recovery to keep the raw payload as a text part, got %+v", msg.Attachments)
	}
}

func TestParseAttachmentFilenameDecoded(t *testing.T) {
	raw := joinCRLF(
		"From: a@example.com",
		"Subject: attachment",
		`Content-Type: multipart/mixed; boundary="b1"`,
		"",
		"--b1",
		"Content-Type: text/plain",
		"",
		"see attached",
		"--b1",
		"Content-Type: application/pdf",
		`Content-Disposition: attachment; filename="=?UTF-8?B?SMOpbGxvLnBkZg==?="`,
		"Content-Transfer-Encoding: base64",
		"",
		"aGVsbG8=",
		"--b1--",
		"",
	)
	msg := Parse(raw)
	if msg == nil {
		t.Fatal("expected a parsed message")
	}
	var found bool
	for _, att := range msg.Attachments {
		if att.Kind == PartBinary {
			found = true
			if got := att.Binary.Filename; got != "Héllo.pdf" {
				t.Errorf("Filename = %q, want decoded %q", got, "Héllo.pdf")
			}
		}
	}
	if !found {
		t.Fatalf("expected an attachment part, got %+v", msg.Attachments)
	}
}

func TestParseMultipartDigestDefaultsChildToMessage(t *testing.T) {
	raw := joinCRLF(
		"From: a@example.com",
		"Subject: digest",
		`Content-Type: multipart/digest; boundary="b1"`,
		"",
		"--b1",
		"MIME-Version: 1.0",
		"",
		"From: one@example.com",
		"Subject: first digested message",
		"",
		"first body",
		"--b1--",
		"",
	)
	msg := Parse(raw)
	if msg == nil {
		t.Fatal("expected a parsed message")
	}
	var nested *Message
	for _, att := range msg.Attachments {
		if att.Kind == PartMessage {
			nested = att.Message
		}
	}
	if nested == nil {
		t.Fatalf("expected a digested child treated as message/rfc822, got %+v", msg.Attachments)
	}
	if got := nested.Headers.Get("Subject"); got != "first digested message" {
		t.Errorf("digested subject = %q", got)
	}
}
