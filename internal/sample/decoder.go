// Package sample decodes the binary sample region that follows the logical
// header: raw scalar point assembly, sentinel detection, sweep-segment
// splitting, and AC complex repacking.
package sample

import (
	"fmt"
	"io"
	"math"

	"github.com/hspicewave/hspicewave/internal/blockio"
)

// sentinel is the exact bit pattern HSPICE writes in the scale column to
// mark end-of-segment or end-of-stream. Comparison must be bit-exact, never
// a NaN-style check: 1.0e30 is an ordinary finite float.
const sentinel = 1.0e30

// IoError reports a short read in the middle of a point: the stream ended
// somewhere other than a scalar boundary.
type IoError struct {
	msg string
}

func (e *IoError) Error() string { return "sample: " + e.msg }

// Decoder pulls fixed-width points of raw scalars off a logical byte
// stream, widening every scalar to float64 regardless of on-disk element
// width. It does not itself decide end-of-stream from a repeated sentinel;
// that judgement belongs to the caller (see Segmenter), since a lone
// Decoder has no notion of "segment" to compare against.
type Decoder struct {
	r         io.Reader
	order     blockio.ByteOrder
	width     int // bytes per scalar: 4 or 8
	pointSize int // scalars per point
	buf       []byte
}

// NewDecoder constructs a Decoder over r. pointSize is the number of
// scalars per point on disk (for AC analyses this already accounts for the
// doubled non-scale columns; see Repack).
func NewDecoder(r io.Reader, order blockio.ByteOrder, elementWidth, pointSize int) *Decoder {
	return &Decoder{
		r:         r,
		order:     order,
		width:     elementWidth,
		pointSize: pointSize,
		buf:       make([]byte, elementWidth),
	}
}

// readScalar reads one scalar. The raw io.ReadFull error (io.EOF or
// io.ErrUnexpectedEOF) is returned unwrapped so Next can decide, based on
// where in the point it occurred, whether a short read is tolerable
// trailing padding or a genuine IoError.
func (d *Decoder) readScalar() (float64, error) {
	if _, err := io.ReadFull(d.r, d.buf); err != nil {
		return 0, err
	}
	if d.width == 4 {
		bits := d.order.Order().Uint32(d.buf)
		return float64(math.Float32frombits(bits)), nil
	}
	bits := d.order.Order().Uint64(d.buf)
	return math.Float64frombits(bits), nil
}

// IsSentinel reports whether v is the bit-exact scale-column terminator.
func IsSentinel(v float64) bool { return v == sentinel }

// Next reads one point. It returns (point, false, nil) for an ordinary
// point and (nil, true, nil) when the scale column carries the sentinel,
// a segment boundary whose meaning (end-of-segment vs. end-of-stream) is
// for the caller to resolve by calling Next again. Clean end-of-file at a
// point boundary (including up to element_width-1 bytes of trailing
// padding) is reported as io.EOF.
func (d *Decoder) Next() (point []float64, boundary bool, err error) {
	pt := make([]float64, d.pointSize)
	for i := range pt {
		v, err := d.readScalar()
		if err != nil {
			if (err == io.EOF || err == io.ErrUnexpectedEOF) && i == 0 {
				// Clean end-of-stream, or trailing padding shorter than
				// one scalar width: both are tolerated at a point
				// boundary.
				return nil, false, io.EOF
			}
			return nil, false, &IoError{msg: fmt.Sprintf("short read mid-point: %v", err)}
		}
		pt[i] = v
	}
	// The 32-bit dialect stores the float32 rounding of 1.0e30, which
	// widens to a double that is not exactly sentinel.
	if IsSentinel(pt[0]) || (d.width == 4 && float32(pt[0]) == float32(sentinel)) {
		return nil, true, nil
	}
	return pt, false, nil
}
