// Package cursor implements a read cursor over an immutable byte slice and
// the boundary-search primitives the MIME traversal engine is built on.
//
// The scanning discipline (skip CRLF, substring-search for a boundary, test
// for the trailing "--" of a terminal boundary) is the same one
// mail/mime.Parser uses in the teacher repo; the difference is that this
// cursor addresses a fully materialized slice instead of a channel-fed
// stream, so there is no blocking and no partial-match bookkeeping across
// buffer refills.
package cursor

import "bytes"

// Cursor is a read position over Data. It never copies Data.
type Cursor struct {
	Data []byte
	Pos  int
}

// New returns a Cursor positioned at the start of data.
func New(data []byte) *Cursor {
	return &Cursor{Data: data}
}

// AtEnd reports whether the cursor has consumed all of Data.
func (c *Cursor) AtEnd() bool {
	return c.Pos >= len(c.Data)
}

// SkipCRLF consumes at most one CRLF sequence (or a lone CR or LF) at the
// current position.
func (c *Cursor) SkipCRLF() {
	if c.Pos >= len(c.Data) {
		return
	}
	if c.Data[c.Pos] == '\r' {
		c.Pos++
		if c.Pos < len(c.Data) && c.Data[c.Pos] == '\n' {
			c.Pos++
		}
		return
	}
	if c.Data[c.Pos] == '\n' {
		c.Pos++
	}
}

// SeekNextPart scans forward from the current position for the literal
// boundary bytes and, if found, leaves the cursor immediately after them.
// It reports whether the boundary was found at all.
func (c *Cursor) SeekNextPart(boundary []byte) bool {
	if len(boundary) == 0 || c.Pos > len(c.Data) {
		return false
	}
	idx := bytes.Index(c.Data[c.Pos:], boundary)
	if idx < 0 {
		return false
	}
	c.Pos += idx + len(boundary)
	return true
}

// SkipMultipartEnd reports whether the cursor sits at the terminal "--"
// marker of a multipart boundary, advancing past it if so. It does not
// move the cursor when the marker is absent.
func (c *Cursor) SkipMultipartEnd() bool {
	if c.Pos+1 < len(c.Data) && c.Data[c.Pos] == '-' && c.Data[c.Pos+1] == '-' {
		c.Pos += 2
		return true
	}
	return false
}

// DecodeKind tags the storage discipline of a DecodeResult.
type DecodeKind int

const (
	// Borrowed means the payload is Data[Start:End] — zero-copy.
	Borrowed DecodeKind = iota
	// Owned means the payload was produced out-of-line (decoded/converted).
	Owned
	// Empty means no bytes were available.
	Empty
)

// DecodeResult is the (Borrowed | Owned | Empty) sum type every decoder in
// the MIME pipeline returns, so that callers can share storage with the
// input slice wherever decoding permits it.
type DecodeResult struct {
	Kind       DecodeKind
	Start, End int
	Bytes      []byte
}

// BorrowedResult builds a zero-copy DecodeResult over data[start:end].
func BorrowedResult(start, end int) DecodeResult {
	return DecodeResult{Kind: Borrowed, Start: start, End: end}
}

// OwnedResult builds a DecodeResult that owns its bytes.
func OwnedResult(b []byte) DecodeResult {
	return DecodeResult{Kind: Owned, Bytes: b}
}

// EmptyResult is the DecodeResult for a payload that yielded no bytes.
var EmptyResult = DecodeResult{Kind: Empty}

// GetBytesToBoundary scans from start for the next occurrence of boundary
// and returns the number of input bytes consumed (which, when boundary is
// found, includes the boundary marker itself — the caller is left
// positioned right after it, ready for SkipMultipartEnd) and a Borrowed
// DecodeResult spanning [start, boundaryStart), leaving out the CR of a
// CRLF line ending that directly precedes the boundary's "\n". If boundary
// is empty, it consumes to the end of input. It returns (0, Empty) if
// nothing at all could be consumed.
func GetBytesToBoundary(c *Cursor, start int, boundary []byte) (int, DecodeResult) {
	if start >= len(c.Data) {
		return 0, EmptyResult
	}
	if len(boundary) == 0 {
		end := len(c.Data)
		return end - start, BorrowedResult(start, end)
	}
	contentEnd, consumed, found := FindBoundary(c.Data, start, boundary)
	if !found {
		return 0, EmptyResult
	}
	if contentEnd > start && c.Data[contentEnd-1] == '\r' {
		contentEnd--
	}
	return consumed, BorrowedResult(start, contentEnd)
}

// FindBoundary locates the next occurrence of boundary at or after start.
// It reports the offset where the preceding content ends (exclusive) and
// the number of bytes a caller must advance past start to land immediately
// after the boundary marker.
func FindBoundary(data []byte, start int, boundary []byte) (contentEnd, consumed int, found bool) {
	idx := bytes.Index(data[start:], boundary)
	if idx < 0 {
		return 0, 0, false
	}
	contentEnd = start + idx
	consumed = idx + len(boundary)
	return contentEnd, consumed, true
}
