package blockio

import (
	"bytes"
	"io"
	"testing"
)

func TestSourceReadExact(t *testing.T) {
	src := NewSourceSize(bytes.NewReader([]byte("hello, world")), 4)

	got, err := src.ReadExact(5)
	if err != nil {
		t.Fatalf("ReadExact(5): unexpected error: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("ReadExact(5) = %q, want %q", got, "hello")
	}

	got, err = src.ReadExact(7)
	if err != nil {
		t.Fatalf("ReadExact(7): unexpected error: %v", err)
	}
	if string(got) != ", world" {
		t.Fatalf("ReadExact(7) = %q, want %q", got, ", world")
	}

	if _, err := src.ReadExact(1); err != io.EOF {
		t.Fatalf("ReadExact at boundary: got %v, want io.EOF", err)
	}
}

func TestSourceReadExactShort(t *testing.T) {
	src := NewSource(bytes.NewReader([]byte("ab")))
	if _, err := src.ReadExact(4); err != io.ErrUnexpectedEOF {
		t.Fatalf("ReadExact(4) on 2-byte input: got %v, want io.ErrUnexpectedEOF", err)
	}
}
