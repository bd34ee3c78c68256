package sample

import (
	"bytes"
	"testing"

	"github.com/hspicewave/hspicewave/internal/blockio"
)

func TestSegmentPlainSingleSegmentEndsAtEOF(t *testing.T) {
	raw := f64bytes(
		0.0, 1.0,
		1.0, 2.0,
		sentinel, 0.0,
	)
	dec := NewDecoder(bytes.NewReader(raw), blockio.LittleEndian, 8, 2)
	segs, err := NewSegmenter(dec).SegmentPlain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("len(segs) = %d, want 1", len(segs))
	}
	if len(segs[0].Points) != 2 {
		t.Fatalf("len(segs[0].Points) = %d, want 2", len(segs[0].Points))
	}
}

func TestSegmentPlainDoubleSentinelEndsStream(t *testing.T) {
	raw := f64bytes(
		0.0, 1.0,
		sentinel, 0.0,
		sentinel, 0.0,
	)
	dec := NewDecoder(bytes.NewReader(raw), blockio.LittleEndian, 8, 2)
	segs, err := NewSegmenter(dec).SegmentPlain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("len(segs) = %d, want 1 (double sentinel should not add an empty segment)", len(segs))
	}
}

func TestSegmentPlainTwoSegments(t *testing.T) {
	raw := f64bytes(
		0.0, 1.0,
		sentinel, 0.0,
		0.0, 3.0,
		1.0, 4.0,
		sentinel, 0.0,
	)
	dec := NewDecoder(bytes.NewReader(raw), blockio.LittleEndian, 8, 2)
	segs, err := NewSegmenter(dec).SegmentPlain()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("len(segs) = %d, want 2", len(segs))
	}
	if len(segs[0].Points) != 1 || len(segs[1].Points) != 2 {
		t.Fatalf("segment sizes = %d, %d, want 1, 2", len(segs[0].Points), len(segs[1].Points))
	}
}

func TestSegmentInlinePeelsSweepValue(t *testing.T) {
	// Each segment opens with one leading sweep scalar, then plain
	// 2-wide [scale, data] points terminated by a sentinel.
	raw := f64bytes(
		5.0, // leading sweep scalar for segment 0
		0.0, 10.0,
		sentinel, 0.0,
		6.0, // leading sweep scalar for segment 1
		0.0, 20.0,
		sentinel, 0.0,
	)
	dec := NewDecoder(bytes.NewReader(raw), blockio.LittleEndian, 8, 2)
	segs, err := NewSegmenter(dec).SegmentInline()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("len(segs) = %d, want 2", len(segs))
	}
	if segs[0].SweepValue != 5.0 || segs[1].SweepValue != 6.0 {
		t.Fatalf("sweep values = %v, %v, want 5, 6", segs[0].SweepValue, segs[1].SweepValue)
	}
	if len(segs[0].Points[0]) != 2 {
		t.Fatalf("len(segs[0].Points[0]) = %d, want 2", len(segs[0].Points[0]))
	}
}
