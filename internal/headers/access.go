package headers

// GetContentType parses and returns the Content-Type header, or nil when
// absent or unparsable.
func GetContentType(h Headers) *ContentType {
	v := h.Get("Content-Type")
	if v == "" {
		return nil
	}
	return ParseContentType(v)
}

// GetContentDisposition parses and returns the Content-Disposition header,
// or nil when absent or unparsable.
func GetContentDisposition(h Headers) *ContentDisposition {
	v := h.Get("Content-Disposition")
	if v == "" {
		return nil
	}
	return ParseContentDisposition(v)
}

// GetTransferEncoding returns the Content-Transfer-Encoding header value
// (ASCII case as declared; callers compare case-insensitively) and whether
// it was present.
func GetTransferEncoding(h Headers) (string, bool) {
	v := h.Get("Content-Transfer-Encoding")
	return v, v != ""
}

// IsAttachment reports whether Content-Disposition names this part as an
// attachment.
func IsAttachment(h Headers) bool {
	return GetContentDisposition(h).IsAttachment()
}

// GetFilename returns the part's suggested filename, preferring
// Content-Disposition's filename parameter and falling back to
// Content-Type's name parameter — both already RFC 2047-decoded the same
// way Subject is, since ContentDisposition/ContentType parameter values
// are decoded through DecodeWords as they're parsed.
func GetFilename(h Headers, ct *ContentType) (string, bool) {
	if cd := GetContentDisposition(h); cd != nil {
		if v, ok := cd.GetAttribute("filename"); ok && v != "" {
			return v, true
		}
	}
	if v, ok := ct.GetAttribute("name"); ok && v != "" {
		return v, true
	}
	return "", false
}
