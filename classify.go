package mimewalk

import "github.com/mailchannels/mimewalk/internal/headers"

// classification is the 4-tuple the MIME Classifier produces for a part.
type classification struct {
	isMultipart      bool
	isInlineCandidate bool
	isText           bool
	kind             MimeKind
}

// classify maps a part's Content-Type (nil when absent) and its parent's
// MimeKind to a classification, following the table in mail/mime.go's
// contentType switch but driven off (type, subtype) pairs instead of a
// single matched string, since the table here covers more than mime.go's
// attachment/inline split.
func classify(ct *headers.ContentType, parentKind MimeKind) classification {
	if ct == nil {
		if parentKind == MimeMultipartDigest {
			return classification{kind: MimeMessage}
		}
		return classification{isInlineCandidate: true, isText: true, kind: MimeTextPlain}
	}

	typ, sub := ct.Type, ct.Subtype

	if typ == "multipart" {
		switch sub {
		case "mixed":
			return classification{isMultipart: true, kind: MimeMultipartMixed}
		case "alternative":
			return classification{isMultipart: true, kind: MimeMultipartAlternative}
		case "related":
			return classification{isMultipart: true, kind: MimeMultipartRelated}
		case "digest":
			return classification{isMultipart: true, kind: MimeMultipartDigest}
		default:
			return classification{isMultipart: true, kind: MimeOther}
		}
	}

	switch {
	case typ == "text" && sub == "plain":
		return classification{isInlineCandidate: true, isText: true, kind: MimeTextPlain}
	case typ == "text" && sub == "html":
		return classification{isInlineCandidate: true, isText: true, kind: MimeTextHtml}
	case typ == "text":
		return classification{isText: true, kind: MimeTextOther}
	case typ == "image", typ == "audio", typ == "video":
		return classification{isInlineCandidate: true, kind: MimeInline}
	case typ == "message" && sub == "rfc822":
		return classification{kind: MimeMessage}
	default:
		return classification{kind: MimeOther}
	}
}
