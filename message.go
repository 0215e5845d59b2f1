// Package mimewalk implements a zero-copy, best-effort, streaming parser
// for RFC 5322 / MIME email messages. It descends multipart and nested
// message/rfc822 structure, classifies each leaf part as an HTML body, a
// text body, an inline attachment, or a regular attachment, and synthesizes
// whichever body flavor a multipart/alternative block didn't supply.
//
// Parse never panics and never returns an error: a malformed message
// degrades to the most structured result the input supports, the same
// best-effort posture the teacher's mail/mime.Parser takes toward
// truncated or misdeclared MIME.
package mimewalk

import "github.com/mailchannels/mimewalk/internal/headers"

// Headers is a message or part's header map (repeated fields preserved).
type Headers = headers.Headers

// MimeKind classifies a part by its Content-Type and its parent's kind.
type MimeKind int

const (
	MimeMultipartMixed MimeKind = iota
	MimeMultipartAlternative
	MimeMultipartRelated
	MimeMultipartDigest
	MimeTextPlain
	MimeTextHtml
	MimeTextOther
	MimeInline
	MimeMessage
	MimeOther
)

var mimeKindNames = [...]string{
	"multipart/mixed", "multipart/alternative", "multipart/related", "multipart/digest",
	"text/plain", "text/html", "text/other", "inline", "message/rfc822", "other",
}

func (k MimeKind) String() string {
	if int(k) < len(mimeKindNames) {
		return mimeKindNames[k]
	}
	return "unknown"
}

// TextPart is a decoded textual leaf: its own MIME headers (nil if it had
// none of its own, e.g. the root body with no part headers) and its
// contents, borrowed from the input where decoding allowed it.
type TextPart struct {
	Headers  Headers
	Contents string
}

// BinaryPart is a decoded binary leaf. Filename is the part's suggested
// name, preferring Content-Disposition's filename over Content-Type's name
// (empty if neither was present).
type BinaryPart struct {
	Headers  Headers
	Filename string
	Contents []byte
}

// InlinePartKind tags an InlinePart's variant.
type InlinePartKind int

const (
	InlineText InlinePartKind = iota
	InlineBinaryRef
)

func (k InlinePartKind) String() string {
	if k == InlineBinaryRef {
		return "inline-binary-ref"
	}
	return "text"
}

// InlinePart is one entry of a Message's HTMLBody or TextBody list: either
// an inline TextPart, or a back-reference (BinaryIndex) into the owning
// Message's Attachments list.
type InlinePart struct {
	Kind        InlinePartKind
	Text        *TextPart
	BinaryIndex int
}

// MessagePartKind tags a MessagePart's variant.
type MessagePartKind int

const (
	PartText MessagePartKind = iota
	PartBinary
	PartInlineBinary
	PartMessage
)

var messagePartKindNames = [...]string{"text", "binary", "inline-binary", "message"}

func (k MessagePartKind) String() string {
	if int(k) < len(messagePartKindNames) {
		return messagePartKindNames[k]
	}
	return "unknown"
}

// MessagePart is one entry of a Message's Attachments list.
type MessagePart struct {
	Kind    MessagePartKind
	Text    *TextPart
	Binary  *BinaryPart
	Message *Message
}

// Message is a parsed email: headers plus three ordered views over its
// parts. HTMLBody and TextBody hold the parts chosen (or synthesized) for
// presentation; Attachments holds everything else, including nested
// message/rfc822 children.
type Message struct {
	Headers     Headers
	HTMLBody    []InlinePart
	TextBody    []InlinePart
	Attachments []MessagePart
}

// IsEmpty reports whether no headers were parsed for this message — the
// signal Parse uses to decide whether to emit a Message at all.
func (m *Message) IsEmpty() bool {
	return len(m.Headers) == 0
}

func inlineText(t TextPart) InlinePart {
	tp := t
	return InlinePart{Kind: InlineText, Text: &tp}
}

func inlineBinaryRef(index int) InlinePart {
	return InlinePart{Kind: InlineBinaryRef, BinaryIndex: index}
}
