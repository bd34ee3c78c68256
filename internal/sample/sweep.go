package sample

import "io"

// Segment is one sweep segment's raw points: a sequence of on-disk points
// sharing a single sweep value (or the whole stream, for non-swept
// analyses).
type Segment struct {
	SweepValue float64 // meaningful only when the container declared a sweep
	Points     [][]float64
}

// Segmenter splits a Decoder's point stream into per-sweep-value segments.
// A new segment begins on the first point of the stream and after every
// sentinel. Under SegmentPlain the stream ends on a sentinel immediately
// followed by another sentinel, or at end-of-file; SegmentInline ends only
// at end-of-file.
type Segmenter struct {
	dec *Decoder
}

// NewSegmenter wraps dec. dec's configured point size must match the
// layout being segmented: the plain per-point width (scale + data) for
// both SegmentPlain and SegmentInline. SegmentInline reads its leading
// sweep scalar separately, outside of dec's fixed point width.
func NewSegmenter(dec *Decoder) *Segmenter { return &Segmenter{dec: dec} }

// SegmentPlain splits the stream into segments without an inline sweep
// scalar: used both for non-swept analyses and for the header-tail sweep
// layout, where the sweep vector is supplied separately by the caller.
func (s *Segmenter) SegmentPlain() ([]Segment, error) {
	var segments []Segment
	var cur Segment

	for {
		pt, boundary, err := s.dec.Next()
		if err == io.EOF {
			if len(cur.Points) > 0 {
				segments = append(segments, cur)
			}
			return segments, nil
		}
		if err != nil {
			return nil, err
		}
		if boundary {
			if len(cur.Points) == 0 && len(segments) > 0 {
				// A sentinel immediately following another (no points
				// accumulated in between) ends the stream.
				return segments, nil
			}
			segments = append(segments, cur)
			cur = Segment{}
			continue
		}
		cur.Points = append(cur.Points, pt)
	}
}

// SegmentInline splits the stream under the inline-leading-scalar sweep
// layout: each segment opens with one extra scalar (the sweep value) read
// ahead of its points, rather than a per-point width increase. End of
// stream is a clean end-of-file when attempting to read the next
// segment's leading scalar.
func (s *Segmenter) SegmentInline() ([]Segment, error) {
	var segments []Segment

	for {
		sweepValue, err := s.dec.readScalar()
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return segments, nil
			}
			return nil, &IoError{msg: "short read on leading sweep scalar"}
		}

		cur := Segment{SweepValue: sweepValue}
		for {
			pt, boundary, err := s.dec.Next()
			if err == io.EOF {
				segments = append(segments, cur)
				return segments, nil
			}
			if err != nil {
				return nil, err
			}
			if boundary {
				segments = append(segments, cur)
				break
			}
			cur.Points = append(cur.Points, pt)
		}
	}
}
