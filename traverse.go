package mimewalk

import (
	"github.com/mailchannels/mimewalk/internal/cursor"
	"github.com/mailchannels/mimewalk/internal/headers"
	"github.com/mailchannels/mimewalk/internal/textconv"
	"github.com/mailchannels/mimewalk/internal/transfer"
)

// engine owns the two-stack traversal described in §4.4: a stack of
// ancestor ParseStates, a parallel stack of ancestor Messages (used only
// while descending into message/rfc822 children), and the current message
// and state held directly.
type engine struct {
	cur        *cursor.Cursor
	stateStack []parseState
	msgStack   []*Message
	state      parseState
	msg        *Message
}

// Parse parses an RFC 5322 / MIME message from data and returns the
// resulting Message, or nil if no headers could be parsed at all. It never
// panics; malformed input degrades to the most structured result the bytes
// support.
func Parse(data []byte) *Message {
	e := &engine{
		cur:   cursor.New(data),
		state: rootState(),
		msg:   &Message{},
	}
	e.run()

	for len(e.msgStack) > 0 {
		parent := e.msgStack[len(e.msgStack)-1]
		e.msgStack = e.msgStack[:len(e.msgStack)-1]
		if !e.msg.IsEmpty() {
			parent.Attachments = append(parent.Attachments, MessagePart{Kind: PartMessage, Message: e.msg})
		}
		e.msg = parent
	}

	if e.msg.IsEmpty() {
		return nil
	}
	return e.msg
}

func (e *engine) run() {
	data := e.cur.Data

outer:
	for {
		var scratch Headers
		var ok bool
		if e.state.mimeKind == MimeMessage {
			e.msg.Headers, ok = headers.ParseBlock(e.cur)
		} else {
			scratch, ok = headers.ParseBlock(e.cur)
		}
		if !ok {
			break
		}
		e.state.parts++

		effectiveHeaders := scratch
		if e.state.mimeKind == MimeMessage {
			effectiveHeaders = e.msg.Headers
		}

		ct := headers.GetContentType(effectiveHeaders)
		cls := classify(ct, e.state.mimeKind)

		if cls.isMultipart {
			// A multipart type with no boundary attribute at all falls
			// through unchanged (treated as an opaque leaf of its
			// declared kind); only a boundary that fails to be found in
			// the stream gets demoted to TextOther.
			if boundaryAttr, hasBoundary := ct.GetAttribute("boundary"); hasBoundary {
				boundary := append([]byte("\n--"), boundaryAttr...)
				if e.cur.SeekNextPart(boundary) {
					e.stateStack = append(e.stateStack, e.state)
					e.state = parseState{
						mimeKind:      cls.kind,
						mimeBoundary:  boundary,
						inAlternative: e.state.inAlternative || cls.kind == MimeMultipartAlternative,
						htmlParts:     len(e.msg.HTMLBody),
						textParts:     len(e.msg.TextBody),
						needHTMLBody:  e.state.needHTMLBody,
						needTextBody:  e.state.needTextBody,
					}
					e.cur.SkipCRLF()
					continue outer
				}
				cls = classification{isText: true, kind: MimeTextOther}
			}
		} else if cls.kind == MimeMessage {
			e.stateStack = append(e.stateStack, e.state)
			e.msgStack = append(e.msgStack, e.msg)
			e.msg = &Message{}
			e.state = parseState{
				mimeKind:     MimeMessage,
				mimeBoundary: e.state.mimeBoundary,
				needHTMLBody: true,
				needTextBody: true,
			}
			e.cur.SkipCRLF()
			continue outer
		}

		e.cur.SkipCRLF()

		encoding, _ := headers.GetTransferEncoding(effectiveHeaders)
		isBinary, decodeFn := transfer.Select(encoding)
		start := e.cur.Pos
		bytesRead, dr := decodeFn(e.cur, start, e.state.mimeBoundary)

		if bytesRead == 0 {
			if e.cur.AtEnd() || (isBinary && len(e.state.mimeBoundary) == 0) {
				break
			}
			var rBytesRead int
			var rDr cursor.DecodeResult
			if !isBinary {
				rBytesRead, rDr = cursor.GetBytesToBoundary(e.cur, start, e.state.mimeBoundary)
			}
			if rBytesRead == 0 {
				if len(e.state.mimeBoundary) == 0 {
					break
				}
				rBytesRead, rDr = cursor.GetBytesToBoundary(e.cur, start, nil)
				if rBytesRead == 0 {
					break
				}
			}
			dr = rDr
			e.cur.Pos = start + rBytesRead
			cls = classification{isText: true, kind: MimeTextOther}
		} else {
			e.cur.Pos = start + bytesRead
		}

		_, hasName := ct.GetAttribute("name")
		isInline := cls.isInlineCandidate &&
			!headers.IsAttachment(effectiveHeaders) &&
			(e.state.parts == 1 ||
				(e.state.mimeKind != MimeMultipartRelated && (cls.kind == MimeInline || !hasName)))

		var addToHTML, addToText bool
		switch {
		case e.state.mimeKind == MimeMultipartAlternative:
			switch cls.kind {
			case MimeTextHtml:
				addToHTML = true
			case MimeTextPlain:
				addToText = true
			}
		case isInline:
			if e.state.inAlternative && (e.state.needTextBody || e.state.needHTMLBody) {
				switch cls.kind {
				case MimeTextHtml:
					e.state.needTextBody = false
				case MimeTextPlain:
					e.state.needHTMLBody = false
				}
			}
			addToHTML, addToText = e.state.needHTMLBody, e.state.needTextBody
		}

		var partHeaders Headers
		if e.state.mimeKind != MimeMessage {
			partHeaders = effectiveHeaders
		}

		if cls.isText {
			text := finalizeText(dr, data, ct)
			isHTML := cls.kind == MimeTextHtml
			tp := TextPart{Headers: partHeaders, Contents: text}

			if addToHTML && !isHTML {
				e.msg.HTMLBody = append(e.msg.HTMLBody, inlineText(TextPart{Contents: textconv.TextToHTML(text)}))
			} else if addToText && isHTML {
				e.msg.TextBody = append(e.msg.TextBody, inlineText(TextPart{Contents: textconv.HTMLToText(text)}))
			}

			if addToHTML && isHTML {
				e.msg.HTMLBody = append(e.msg.HTMLBody, inlineText(tp))
			} else if addToText && !isHTML {
				e.msg.TextBody = append(e.msg.TextBody, inlineText(tp))
			} else {
				e.msg.Attachments = append(e.msg.Attachments, MessagePart{Kind: PartText, Text: &tp})
			}
		} else {
			filename, _ := headers.GetFilename(effectiveHeaders, ct)
			bp := BinaryPart{Headers: partHeaders, Filename: filename, Contents: finalizeBinary(dr, data)}

			if addToHTML {
				e.msg.HTMLBody = append(e.msg.HTMLBody, inlineBinaryRef(len(e.msg.Attachments)))
			}
			if addToText {
				e.msg.TextBody = append(e.msg.TextBody, inlineBinaryRef(len(e.msg.Attachments)))
			}

			kind := PartBinary
			if isInline {
				kind = PartInlineBinary
			}
			e.msg.Attachments = append(e.msg.Attachments, MessagePart{Kind: kind, Binary: &bp})
		}

		if e.state.mimeBoundary != nil {
		inner:
			for {
				if e.state.mimeKind == MimeMessage {
					if len(e.msgStack) == 0 || len(e.stateStack) == 0 {
						break outer
					}
					parent := e.msgStack[len(e.msgStack)-1]
					e.msgStack = e.msgStack[:len(e.msgStack)-1]
					parentState := e.stateStack[len(e.stateStack)-1]
					e.stateStack = e.stateStack[:len(e.stateStack)-1]

					parent.Attachments = append(parent.Attachments, MessagePart{Kind: PartMessage, Message: e.msg})
					parentState.mimeBoundary = e.state.mimeBoundary
					e.msg = parent
					e.state = parentState
				}

				if e.cur.SkipMultipartEnd() {
					if e.state.mimeKind == MimeMultipartAlternative && e.state.needHTMLBody && e.state.needTextBody {
						synthesizeAlternative(e.msg, e.state)
					}

					if len(e.stateStack) == 0 {
						break outer
					}
					e.state = e.stateStack[len(e.stateStack)-1]
					e.stateStack = e.stateStack[:len(e.stateStack)-1]

					if e.state.mimeBoundary != nil && e.cur.SeekNextPart(e.state.mimeBoundary) {
						continue inner
					}
					break outer
				}

				e.cur.SkipCRLF()
				break inner
			}
		} else if e.cur.AtEnd() {
			break outer
		}
	}
}
