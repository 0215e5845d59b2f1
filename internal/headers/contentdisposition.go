package headers

import "strings"

// ContentDisposition is the parsed view of a Content-Disposition header
// value: its disposition type ("attachment", "inline", ...) and parameter
// attributes (filename, creation-date, ...).
type ContentDisposition struct {
	Type  string
	attrs map[string]string
}

// HasAttribute reports whether name (case-insensitive) was present as a
// Content-Disposition parameter. A nil ContentDisposition has no attributes.
func (d *ContentDisposition) HasAttribute(name string) bool {
	if d == nil {
		return false
	}
	_, ok := d.attrs[strings.ToLower(name)]
	return ok
}

// GetAttribute returns the value of a Content-Disposition parameter,
// already passed through DecodeWords (e.g. filename may itself be an
// RFC 2047 encoded word).
func (d *ContentDisposition) GetAttribute(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	v, ok := d.attrs[strings.ToLower(name)]
	return v, ok
}

// IsAttachment reports whether this disposition's type is "attachment". A
// nil ContentDisposition (header absent or unparsable) is not an
// attachment.
func (d *ContentDisposition) IsAttachment() bool {
	return d != nil && strings.EqualFold(d.Type, "attachment")
}

// ParseContentDisposition parses a Content-Disposition header value
// ("attachment; filename=\"report.pdf\""). It reuses ctScanner's
// token/parameter grammar from contenttype.go — the same
// type-then-semicolon-separated-parameters shape, minus the type/subtype
// pair Content-Type requires. Returns nil if no disposition type token is
// present at all.
func ParseContentDisposition(value string) *ContentDisposition {
	s := &ctScanner{data: []byte(value)}
	typ, ok := s.token(true)
	if !ok {
		return nil
	}

	d := &ContentDisposition{Type: typ, attrs: map[string]string{}}

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
		if !ok || name == "" {
			break
		}
		d.attrs[strings.ToLower(name)] = DecodeWords(val)
	}
	return d
}
