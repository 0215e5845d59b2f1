package headers

import "strings"

// ContentType is the parsed view of a Content-Type header value: type,
// subtype, and its parameter attributes (boundary, charset, name, ...).
type ContentType struct {
	Type    string
	Subtype string
	attrs   map[string]string
}

// HasAttribute reports whether name (case-insensitive) was present as a
// Content-Type parameter. A nil ContentType has no attributes.
func (c *ContentType) HasAttribute(name string) bool {
	if c == nil {
		return false
	}
	_, ok := c.attrs[strings.ToLower(name)]
	return ok
}

// GetAttribute returns the value of a Content-Type parameter.
func (c *ContentType) GetAttribute(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c.attrs[strings.ToLower(name)]
	return v, ok
}

// isTokenSpecial mirrors mail/mime.go's tspecials table: characters that
// can never appear inside an unquoted MIME token.
var isTokenSpecial = [128]bool{
	'(': true, ')': true, '<': true, '>': true, '@': true,
	',': true, ';': true, ':': true, '\\': true, '"': true,
	'/': true, '[': true, ']': true, '?': true, '=': true,
}

// ctScanner is a minimal hand-rolled scanner over a Content-Type header
// value, the same tokenizing shape as mail/mime.go's Parser but addressing
// an in-memory string instead of a channel-fed byte stream (the whole
// Content-Type value is already buffered by the time this runs).
type ctScanner struct {
	data []byte
	pos  int
}

func (s *ctScanner) ch() byte {
	if s.pos >= len(s.data) {
		return 0
	}
	return s.data[s.pos]
}

func (s *ctScanner) peek() byte {
	if s.pos+1 >= len(s.data) {
		return 0
	}
	return s.data[s.pos+1]
}

func (s *ctScanner) next() {
	if s.pos < len(s.data) {
		s.pos++
	}
}

func (s *ctScanner) atEnd() bool {
	return s.pos >= len(s.data)
}

func (s *ctScanner) isWSP(b byte) bool {
	return b == ' ' || b == '\t'
}

// token reads a MIME token (attribute name, type, subtype). If lower is
// set, ASCII letters are folded to lowercase as they're read.
func (s *ctScanner) token(lower bool) (string, bool) {
	start := s.pos
	var b strings.Builder
	for {
		c := s.ch()
		if c > 32 && c < 128 && !isTokenSpecial[c] {
			if lower && c >= 'A' && c <= 'Z' {
				c += 32
			}
			b.WriteByte(c)
			s.next()
			continue
		}
		break
	}
	if s.pos == start {
		return "", false
	}
	return b.String(), true
}

// quotedString reads a "..." value, honoring backslash escapes.
func (s *ctScanner) quotedString() (string, bool) {
	if s.ch() != '"' {
		return "", false
	}
	s.next()
	var b strings.Builder
	for {
		c := s.ch()
		if c == 0 {
			return b.String(), true
		}
		if c == '"' {
			s.next()
			return b.String(), true
		}
		if c == '\\' {
			s.next()
			if s.ch() != 0 {
				b.WriteByte(s.ch())
				s.next()
			}
			continue
		}
		b.WriteByte(c)
		s.next()
	}
}

// comment skips an RFC 822 "(...)" comment, which may appear between
// parameters.
func (s *ctScanner) comment() {
	if s.ch() != '(' {
		return
	}
	depth := 0
	for {
		c := s.ch()
		if c == 0 {
			return
		}
		if c == '(' {
			depth++
		} else if c == ')' {
			depth--
			if depth == 0 {
				s.next()
				return
			}
		}
		s.next()
	}
}

func (s *ctScanner) skipWSPAndComments() {
	for {
		c := s.ch()
		if s.isWSP(c) {
			s.next()
			continue
		}
		if c == '(' {
			s.comment()
			continue
		}
		break
	}
}

// parameter reads one "attribute=value" or "attribute=\"value\"" pair.
func (s *ctScanner) parameter() (name, value string, ok bool) {
	name, ok = s.token(true)
	if !ok {
		return "", "", false
	}
	s.skipWSPAndComments()
	if s.ch() != '=' {
		return name, "", true
	}
	s.next()
	s.skipWSPAndComments()
	if s.ch() == '"' {
		value, _ = s.quotedString()
		return name, value, true
	}
	value, _ = s.token(false)
	return name, value, true
}

// ParseContentType parses a Content-Type header value ("type/subtype;
// param=value; ..."). It returns nil if the value doesn't even carry a
// type/subtype pair — the caller treats a nil ContentType the same as a
// missing header.
func ParseContentType(value string) *ContentType {
	s := &ctScanner{data: []byte(value)}
	typ, ok := s.token(true)
	if !ok {
		return nil
	}
	if s.ch() != '/' {
		return nil
	}
	s.next()
	subtype, ok := s.token(true)
	if !ok {
		return nil
	}

	ct := &ContentType{Type: typ, Subtype: subtype, attrs: map[string]string{}}

	for {
		s.skipWSPAndComments()
		if s.ch() == ';' {
			s.next()
			continue
		}
		if s.atEnd() {
			break
		}
		name, val, ok := s.parameter()
		if !ok {
			break
		}
		if name == "" {
			break
		}
		ct.attrs[strings.ToLower(name)] = DecodeWords(val)
	}
	return ct
}
