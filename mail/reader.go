// Package mail adapts mimewalk's batch Parse to an io.Reader front end, the
// same shape the teacher's MimeDotReader gave callers reading a message off
// an SMTP DATA dot-reader: accumulate as bytes arrive, finalize on Close.
package mail

import (
	"bufio"
	"errors"
	"io"

	"github.com/mailchannels/mimewalk"
)

// ErrTooLarge is returned by Close when the accumulated message exceeded
// the MaxBytes given to NewMimeReader.
var ErrTooLarge = errors.New("mail: message exceeds configured size limit")

// MimeReader wraps an io.Reader, buffering everything read from it so that
// a single mimewalk.Parse can run once the stream is exhausted. Unlike the
// teacher's incremental tree builder, mimewalk's parser works over a fully
// materialized slice (mimewalk.Parse takes the whole message as one
// []byte), so there is no partial tree available mid-stream — Message()
// only returns a non-nil Message after Close.
type MimeReader struct {
	R        io.Reader
	MaxBytes int

	buf     []byte
	message *mimewalk.Message
	err     error
}

// NewMimeReader returns a MimeReader reading from br. maxBytes limits how
// much of the stream is buffered before Close fails with ErrTooLarge; zero
// means unlimited, mirroring the teacher's maxNodes<=0 meaning "no limit".
func NewMimeReader(br *bufio.Reader, maxBytes int) *MimeReader {
	return &MimeReader{R: br, MaxBytes: maxBytes}
}

// Read buffers bytes read from the underlying reader; it never decodes
// eagerly, since mimewalk's traversal is not incremental.
func (r *MimeReader) Read(p []byte) (n int, err error) {
	n, err = r.R.Read(p)
	if n > 0 {
		if r.MaxBytes > 0 && len(r.buf)+n > r.MaxBytes {
			r.err = ErrTooLarge
			return n, err
		}
		r.buf = append(r.buf, p[:n]...)
	}
	return
}

// Close closes the underlying reader if it's a ReadCloser, then runs
// mimewalk.Parse over everything buffered so far. A size-limit violation
// detected during Read takes precedence and is returned here instead.
func (r *MimeReader) Close() error {
	var closeErr error
	if rc, ok := r.R.(io.ReadCloser); ok {
		closeErr = rc.Close()
	}
	if r.err != nil {
		return r.err
	}
	r.message = mimewalk.Parse(r.buf)
	return closeErr
}

// Message returns the parsed Message built on Close, or nil if Close
// hasn't run yet, the stream held no bytes, or no headers could be parsed.
func (r *MimeReader) Message() *mimewalk.Message {
	return r.message
}

// DotReader returns the underlying io.Reader, useful for reading the raw
// stream directly when MIME parsing isn't wanted.
func (r *MimeReader) DotReader() io.Reader {
	return r.R
}
