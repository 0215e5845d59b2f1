// Package headers is the "header parser" and "header value accessor"
// collaborator spec.md §6 scopes out of the core: header-block scanning,
// Content-Type / Content-Transfer-Encoding / Content-Disposition views, and
// RFC 2047 encoded-word decoding.
//
// The header-block scanner below is a byte-slice-only cousin of
// mail/mime.Parser's header() state machine in the teacher repo — it folds
// continuation lines and tolerates malformed field lines by discarding
// them, the same recovery posture, but it reads from a fully materialized
// slice instead of blocking on a channel-fed stream. The Content-Type
// parameter tokenizer in contenttype.go (ParseContentType et al.) ports mime.go's
// contentType/token/quotedString/comment functions almost directly, since
// that algorithm is exactly the right shape for this job independent of
// streaming.
package headers

import (
	"net/textproto"
	"strings"

	"github.com/mailchannels/mimewalk/internal/cursor"
)

// Headers is the parsed header map for a message or a MIME part.
type Headers = textproto.MIMEHeader

// ParseBlock parses one RFC 5322 header block starting at cur.Pos and
// advances cur up to, not past, the blank line terminating it: that line's
// own CRLF is left for the caller's SkipCRLF. It reports whether at
// least one field was parsed — false means no progress was made and the
// traversal engine should stop.
func ParseBlock(cur *cursor.Cursor) (Headers, bool) {
	h := make(Headers)
	data := cur.Data
	pos := cur.Pos
	parsedAny := false

	var name string
	var value strings.Builder
	flush := func() {
		if name != "" {
			h.Add(name, DecodeWords(value.String()))
		}
		value.Reset()
		name = ""
	}

	for pos < len(data) {
		lineStart := pos
		nl := indexByte(data, pos, '\n')
		var line []byte
		if nl < 0 {
			line = data[lineStart:]
			pos = len(data)
		} else {
			lineEnd := nl
			if lineEnd > lineStart && data[lineEnd-1] == '\r' {
				lineEnd--
			}
			line = data[lineStart:lineEnd]
			pos = nl + 1
		}

		if len(line) == 0 {
			flush()
			// Leave the blank line's own CRLF unconsumed: the traversal
			// engine's boundary search needs that leading newline still
			// in the stream to match "\n--boundary", and every caller
			// (multipart descent, message descent, leaf decode) already
			// calls SkipCRLF immediately after a header block.
			cur.Pos = lineStart
			return h, parsedAny
		}

		if (line[0] == ' ' || line[0] == '\t') && name != "" {
			value.WriteByte(' ')
			value.Write(trimSpace(line))
			continue
		}

		flush()

		colon := -1
		for i, b := range line {
			if b == ':' {
				colon = i
				break
			}
		}
		if colon < 1 {
			// Malformed field line: discard and keep scanning, same
			// tolerance as the teacher's header-error state.
			continue
		}
		fieldName := strings.TrimSpace(string(line[:colon]))
		if fieldName == "" {
			continue
		}
		name = textproto.CanonicalMIMEHeaderKey(fieldName)
		value.WriteString(strings.TrimSpace(string(line[colon+1:])))
		parsedAny = true
	}

	// Input ended before a blank line; flush whatever was collected.
	flush()
	cur.Pos = pos
	return h, parsedAny
}

func indexByte(data []byte, from int, b byte) int {
	for i := from; i < len(data); i++ {
		if data[i] == b {
			return i
		}
	}
	return -1
}

func trimSpace(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && (b[start] == ' ' || b[start] == '\t') {
		start++
	}
	for end > start && (b[end-1] == ' ' || b[end-1] == '\t') {
		end--
	}
	return b[start:end]
}
