package mimewalk

import "github.com/mailchannels/mimewalk/internal/textconv"

// synthesizeAlternative runs on unwind from a multipart/alternative whose
// children left both need_html_body and need_text_body set. When exactly
// one of the two body lists grew inside the block, it derives the missing
// flavor by converting every InlinePart the block contributed (from the
// saved html_parts/text_parts snapshot onward) to the other format, per
// §4.5; when both or neither grew, it changes nothing.
func synthesizeAlternative(msg *Message, st parseState) {
	htmlGrew := len(msg.HTMLBody) > st.htmlParts
	textGrew := len(msg.TextBody) > st.textParts

	switch {
	case textGrew && !htmlGrew:
		for _, part := range msg.TextBody[st.textParts:] {
			msg.HTMLBody = append(msg.HTMLBody, synthesizeHTMLFrom(part))
		}
	case htmlGrew && !textGrew:
		for _, part := range msg.HTMLBody[st.htmlParts:] {
			msg.TextBody = append(msg.TextBody, synthesizeTextFrom(part))
		}
	}
}

func synthesizeHTMLFrom(part InlinePart) InlinePart {
	if part.Kind == InlineBinaryRef {
		return inlineBinaryRef(part.BinaryIndex)
	}
	return inlineText(TextPart{Contents: textconv.TextToHTML(part.Text.Contents)})
}

func synthesizeTextFrom(part InlinePart) InlinePart {
	if part.Kind == InlineBinaryRef {
		return inlineBinaryRef(part.BinaryIndex)
	}
	return inlineText(TextPart{Contents: textconv.HTMLToText(part.Text.Contents)})
}
