package blockio

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ByteOrder identifies the endianness used for the block length prefixes,
// suffixes, and (by extension) the sample payload the header decoder reads
// downstream.
type ByteOrder int

// Supported byte orders.
const (
	BigEndian ByteOrder = iota
	LittleEndian
)

func (o ByteOrder) String() string {
	if o == BigEndian {
		return "big-endian"
	}
	return "little-endian"
}

func (o ByteOrder) decode(b []byte) uint32 {
	if o == BigEndian {
		return binary.BigEndian.Uint32(b)
	}
	return binary.LittleEndian.Uint32(b)
}

// Order returns the binary.ByteOrder matching o, for callers that need to
// decode sample payloads with the same endianness the framer detected.
func (o ByteOrder) Order() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// FramingError reports a malformed block envelope: a length mismatch, an
// implausible or zero length, or a block truncated mid-payload.
type FramingError struct {
	msg string
}

func (e *FramingError) Error() string { return "blockio: " + e.msg }

const (
	// maxBlockLength rejects any block whose declared length exceeds this,
	// regardless of chosen byte order.
	maxBlockLength = 16 * 1024 * 1024

	// plausibleMin/plausibleMax bound the byte-order detection heuristic
	// applied to the very first block: 512 bytes to 4 MiB.
	plausibleMin = 512
	plausibleMax = 4 * 1024 * 1024
)

func plausible(n uint32) bool {
	return n >= plausibleMin && n <= plausibleMax
}

// Framer exposes the concatenation of an HSPICE container's block payloads
// as a single io.Reader, having stripped the repeating
// length-prefix/payload/length-suffix envelope.
type Framer struct {
	src        *Source
	order      ByteOrder
	orderKnown bool
	remaining  int // unread payload bytes left in the current block
	lastLength uint32
	eof        bool

	// pending holds bytes already pulled off src during byte-order
	// detection (the first block's prefix, payload, and trailer are
	// probed speculatively to validate the trailer before committing to
	// an order) that callers haven't consumed yet.
	pending []byte
}

// NewFramer constructs a Framer over r. Byte order is detected lazily, on
// the first Read, from the first block's length prefix.
func NewFramer(r io.Reader) *Framer {
	return &Framer{src: NewSource(r)}
}

// ByteOrder returns the detected byte order. It is only meaningful after at
// least one successful Read.
func (f *Framer) ByteOrder() ByteOrder { return f.order }

// Read implements io.Reader over the concatenated block payloads. It
// transparently advances to the next block when the current one is
// exhausted, and reports io.EOF only between blocks.
func (f *Framer) Read(p []byte) (n int, err error) {
	if f.eof {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	if f.remaining == 0 {
		if err := f.nextBlock(); err != nil {
			if err == io.EOF {
				f.eof = true
			}
			return 0, err
		}
	}
	want := len(p)
	if want > f.remaining {
		want = f.remaining
	}
	buf, err := f.readN(want)
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return 0, &FramingError{msg: "truncated block payload"}
		}
		return 0, err
	}
	copy(p, buf)
	f.remaining -= want
	if f.remaining == 0 {
		if err := f.consumeTrailer(); err != nil {
			return want, err
		}
	}
	return want, nil
}

// readN reads exactly n bytes, serving from f.pending first (bytes already
// pulled off src while probing byte order) before falling back to src
// itself. Its error contract matches Source.ReadExact: io.EOF only on a
// clean boundary with nothing pending, io.ErrUnexpectedEOF on a short read.
func (f *Framer) readN(n int) ([]byte, error) {
	if len(f.pending) == 0 {
		return f.src.ReadExact(n)
	}
	if len(f.pending) >= n {
		b := f.pending[:n]
		f.pending = f.pending[n:]
		return b, nil
	}
	have := f.pending
	f.pending = nil
	rest, err := f.src.ReadExact(n - len(have))
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	out := make([]byte, 0, n)
	out = append(out, have...)
	out = append(out, rest...)
	return out, nil
}

// nextBlock reads the next block's length prefix (detecting byte order from
// the very first block) and primes f.remaining with the payload length.
func (f *Framer) nextBlock() error {
	prefix, err := f.readN(4)
	if err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return &FramingError{msg: fmt.Sprintf("truncated block length prefix: %v", err)}
	}

	if !f.orderKnown {
		return f.detectOrder(prefix)
	}

	length := f.order.decode(prefix)
	if length == 0 || length > maxBlockLength {
		return &FramingError{msg: fmt.Sprintf("invalid block length %d", length)}
	}
	f.remaining = int(length)
	f.lastLength = length
	return nil
}

// orderCandidate is one plausible reading of the first block's length
// prefix: the byte order that produced it and the length it implies.
type orderCandidate struct {
	order  ByteOrder
	length uint32
}

// detectOrder resolves the byte order of the whole container from its
// first block. Plausibility (criterion ii) alone can't disambiguate a
// prefix that both orders read as an in-range length, so this also checks
// criterion (i): the candidate order is only accepted once its payload's
// trailing length field actually equals the leading length it decoded.
// BigEndian wins when both candidates' trailers match (a genuine
// ambiguity). When no trailer matches, the first plausible candidate
// (BigEndian whenever its reading is plausible) is kept, and downstream
// trailer validation surfaces the real problem.
func (f *Framer) detectOrder(prefix []byte) error {
	beLen := BigEndian.decode(prefix)
	leLen := LittleEndian.decode(prefix)

	var candidates []orderCandidate
	if plausible(beLen) {
		candidates = append(candidates, orderCandidate{BigEndian, beLen})
	}
	if plausible(leLen) && leLen != beLen {
		candidates = append(candidates, orderCandidate{LittleEndian, leLen})
	}
	if len(candidates) == 0 {
		return &FramingError{msg: fmt.Sprintf("implausible block length; big-endian=%d little-endian=%d", beLen, leLen)}
	}

	maxLen := 0
	for _, c := range candidates {
		if int(c.length) > maxLen {
			maxLen = int(c.length)
		}
	}
	probe, err := probeUpTo(f.src, maxLen+4)
	if err != nil {
		return err
	}

	chosen := candidates[0]
	for _, c := range candidates {
		need := int(c.length) + 4
		if len(probe) < need {
			continue
		}
		if c.order.decode(probe[c.length:need]) == c.length {
			chosen = c
			break
		}
	}

	f.order = chosen.order
	f.orderKnown = true
	f.remaining = int(chosen.length)
	f.lastLength = chosen.length
	f.pending = probe
	return nil
}

// probeUpTo reads up to n bytes from s, tolerating a short read at EOF (the
// caller only needs whatever was actually available to validate a
// candidate length against).
func probeUpTo(s *Source, n int) ([]byte, error) {
	buf := make([]byte, n)
	got := 0
	for got < n {
		m, err := s.Read(buf[got:])
		got += m
		if err != nil {
			if err == io.EOF {
				return buf[:got], nil
			}
			return buf[:got], err
		}
		if m == 0 {
			return buf[:got], nil
		}
	}
	return buf[:got], nil
}

// consumeTrailer reads and validates the trailing length field once a
// block's payload has been fully consumed.
func (f *Framer) consumeTrailer() error {
	trailer, err := f.readN(4)
	if err != nil {
		return &FramingError{msg: fmt.Sprintf("truncated block length suffix: %v", err)}
	}
	got := f.order.decode(trailer)
	if got != f.lastLength {
		return &FramingError{msg: fmt.Sprintf("block length mismatch; leading=%d trailing=%d", f.lastLength, got)}
	}
	return nil
}
