// Package blockio implements the byte-level and block-level framing layers
// of the HSPICE container: a buffered forward-only byte source, and a
// framer that strips the repeating length-prefixed/length-suffixed block
// envelope to expose the concatenated logical payload as a plain
// io.Reader.
package blockio

import (
	"errors"
	"io"
)

const defaultBufSize = 4096

const minReadBufferSize = 16

// Source wraps an io.Reader with a reused internal buffer and a
// ReadExact contract: short reads are errors, and end-of-file is only
// reported when it falls on a read boundary (zero bytes pending).
//
// Source is forward-only: it never seeks, since decoding is a single
// forward pass over the container.
type Source struct {
	buf  []byte
	rd   io.Reader
	r, w int
	err  error
}

// NewSource returns a new Source with the default buffer size.
func NewSource(r io.Reader) *Source {
	return NewSourceSize(r, defaultBufSize)
}

// NewSourceSize returns a new Source whose buffer has at least the given
// size.
func NewSourceSize(r io.Reader, size int) *Source {
	if size < minReadBufferSize {
		size = minReadBufferSize
	}
	return &Source{buf: make([]byte, size), rd: r}
}

var errNegativeRead = errors.New("blockio: reader returned negative count from Read")

func (s *Source) readErr() error {
	err := s.err
	s.err = nil
	return err
}

// Read implements io.Reader. At most one Read on the underlying reader is
// performed per call, so n may be less than len(p); use ReadExact to fill
// p completely.
func (s *Source) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		if s.buffered() > 0 {
			return 0, nil
		}
		return 0, s.readErr()
	}
	if s.r == s.w {
		if s.err != nil {
			return 0, s.readErr()
		}
		if len(p) >= len(s.buf) {
			n, s.err = s.rd.Read(p)
			if n < 0 {
				panic(errNegativeRead)
			}
			return n, s.readErr()
		}
		s.r, s.w = 0, 0
		n, s.err = s.rd.Read(s.buf)
		if n < 0 {
			panic(errNegativeRead)
		}
		if n == 0 {
			return 0, s.readErr()
		}
		s.w += n
	}
	n = copy(p, s.buf[s.r:s.w])
	s.r += n
	return n, nil
}

func (s *Source) buffered() int { return s.w - s.r }

// ReadExact reads exactly n bytes. A short read mid-stream is reported as
// io.ErrUnexpectedEOF; io.EOF is returned only when zero bytes had been
// read for this call, i.e. the stream ended cleanly on a boundary.
func (s *Source) ReadExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	got := 0
	for got < n {
		m, err := s.Read(buf[got:])
		got += m
		if err != nil {
			if err == io.EOF {
				if got == 0 {
					return nil, io.EOF
				}
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
	}
	return buf, nil
}
