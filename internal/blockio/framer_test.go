package blockio

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

func block(order binary.ByteOrder, payload []byte) []byte {
	var buf bytes.Buffer
	var lenBuf [4]byte
	order.PutUint32(lenBuf[:], uint32(len(payload)))
	buf.Write(lenBuf[:])
	buf.Write(payload)
	buf.Write(lenBuf[:])
	return buf.Bytes()
}

func TestFramerBigEndianSingleBlock(t *testing.T) {
	payload := bytes.Repeat([]byte{0x5a}, plausibleMin)
	f := NewFramer(bytes.NewReader(block(binary.BigEndian, payload)))

	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll: unexpected error: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch: got %d bytes, want %d bytes", len(got), len(payload))
	}
	if f.ByteOrder() != BigEndian {
		t.Fatalf("ByteOrder() = %v, want BigEndian", f.ByteOrder())
	}
}

func TestFramerLittleEndianDetected(t *testing.T) {
	// A length whose big-endian reading would be implausibly large but
	// whose little-endian reading is plausible.
	payload := bytes.Repeat([]byte{0x01}, 600)
	f := NewFramer(bytes.NewReader(block(binary.LittleEndian, payload)))

	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll: unexpected error: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch: got %d bytes, want %d bytes", len(got), len(payload))
	}
	if f.ByteOrder() != LittleEndian {
		t.Fatalf("ByteOrder() = %v, want LittleEndian", f.ByteOrder())
	}
}

func TestFramerMultipleBlocks(t *testing.T) {
	p1 := bytes.Repeat([]byte{0x11}, plausibleMin)
	p2 := bytes.Repeat([]byte{0x22}, plausibleMin+10)
	var stream bytes.Buffer
	stream.Write(block(binary.BigEndian, p1))
	stream.Write(block(binary.BigEndian, p2))

	f := NewFramer(&stream)
	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll: unexpected error: %v", err)
	}
	want := append(append([]byte{}, p1...), p2...)
	if !bytes.Equal(got, want) {
		t.Fatalf("concatenated payload mismatch: got %d bytes, want %d bytes", len(got), len(want))
	}
}

func TestFramerTrailerMismatch(t *testing.T) {
	payload := bytes.Repeat([]byte{0x33}, plausibleMin)
	raw := block(binary.BigEndian, payload)
	// Corrupt the trailing length field.
	binary.BigEndian.PutUint32(raw[len(raw)-4:], uint32(len(payload)+1))

	f := NewFramer(bytes.NewReader(raw))
	if _, err := io.ReadAll(f); err == nil {
		t.Fatal("expected a FramingError on trailer mismatch, got nil")
	} else if _, ok := err.(*FramingError); !ok {
		t.Fatalf("expected *FramingError, got %T: %v", err, err)
	}
}

func TestFramerAmbiguousLengthResolvedByTrailer(t *testing.T) {
	// payload length 4096 encodes, little-endian, as bytes 00 10 00 00.
	// Read big-endian that's 0x00100000 = 1,048,576, which also falls in
	// plausible()'s 512B-4MiB range: both orders look plausible from the
	// prefix alone, and only the trailer (which matches 4096 exactly when
	// read little-endian) can tell them apart.
	payload := bytes.Repeat([]byte{0x7e}, 4096)
	f := NewFramer(bytes.NewReader(block(binary.LittleEndian, payload)))

	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll: unexpected error: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch: got %d bytes, want %d bytes", len(got), len(payload))
	}
	if f.ByteOrder() != LittleEndian {
		t.Fatalf("ByteOrder() = %v, want LittleEndian", f.ByteOrder())
	}
}

func TestFramerImplausibleLength(t *testing.T) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], 3) // 3 big-endian, 50,331,648 little-endian: implausible either way
	raw := append(append([]byte{}, lenBuf[:]...), []byte{1, 2, 3}...)
	raw = append(raw, lenBuf[:]...)

	f := NewFramer(bytes.NewReader(raw))
	if _, err := f.Read(make([]byte, 1)); err == nil {
		t.Fatal("expected a FramingError on implausible length, got nil")
	} else if _, ok := err.(*FramingError); !ok {
		t.Fatalf("expected *FramingError, got %T: %v", err, err)
	}
}
