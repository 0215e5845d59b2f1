// Package textconv provides the two format converters the Alternative
// Synthesizer uses to fill in whichever body flavor a multipart/alternative
// block didn't supply. These are the "format converters" spec.md §6 treats
// as external collaborators — pure, total functions with no knowledge of
// the message tree.
package textconv

import (
	"html"
	"strings"

	"github.com/jaytaylor/html2text"
)

// HTMLToText renders HTML markup down to readable plain text, the same
// library the pack reaches for (see other_examples' kaey-mail use of
// html2text.FromString). It never errors out of the synthesizer's view:
// a conversion failure just falls back to stripping tags with a scan.
func HTMLToText(htmlBody string) string {
	text, err := html2text.FromString(htmlBody, html2text.Options{PrettyTables: false})
	if err != nil {
		return stripTags(htmlBody)
	}
	return text
}

// TextToHTML escapes plain text and wraps it so it renders as HTML with the
// same line breaks, the minimal total function format converters need to be
// (spec.md doesn't grow charset or markdown smarts into this path).
func TextToHTML(text string) string {
	escaped := html.EscapeString(text)
	lines := strings.Split(escaped, "\n")
	var b strings.Builder
	b.WriteString("<html><body>")
	for i, line := range lines {
		if i > 0 {
			b.WriteString("<br/>")
		}
		b.WriteString(line)
	}
	b.WriteString("</body></html>")
	return b.String()
}

// stripTags is the degenerate fallback when html2text itself fails to
// parse a malformed fragment; it never errors and never panics.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return html.UnescapeString(b.String())
}
