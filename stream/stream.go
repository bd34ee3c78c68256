// Package stream exposes a pull-style chunked reader over an HSPICE
// container, for callers decoding files larger than they want to hold in
// memory at once.
package stream

import (
	"io"
	"os"

	"github.com/hspicewave/hspicewave/internal/blockio"
	"github.com/hspicewave/hspicewave/internal/header"
	"github.com/hspicewave/hspicewave/internal/sample"
)

// Chunk is a self-contained mini-table: a monotonically increasing index,
// the inclusive scale-column range it covers, and one scalar vector per
// retained variable.
type Chunk struct {
	Index      int
	ScaleFirst complex128
	ScaleLast  complex128
	Columns    map[string][]complex128
}

// Streamer pulls fixed-size chunks off an open HSPICE container without
// materialising the whole table. Swept (DC) analyses are out of scope: a
// sweep's segment boundaries don't compose with a flat chunk_size cursor,
// so Open rejects them.
type Streamer struct {
	f         *os.File
	dec       *sample.Decoder
	info      *header.Info
	chunkSize int
	keep      map[string]bool // nil means "keep everything"
	index     int
	done      bool
}

// Open opens path and positions a Streamer at the first sample point.
// chunkSize is the target minimum point count per chunk; the final chunk
// may be smaller. allowlist, if non-empty, restricts the columns returned
// by Next (the scale column is always included).
func Open(path string, chunkSize int, allowlist []string) (*Streamer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	framer := blockio.NewFramer(f)
	info, rest, err := header.Decode(framer)
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.HasSweep {
		f.Close()
		return nil, &UnsupportedError{msg: "chunked streaming does not support swept (dc) analyses"}
	}

	pointSize := len(info.Variables)
	if info.Analysis == header.AC {
		pointSize = 1 + 2*(len(info.Variables)-1)
	}

	var keep map[string]bool
	if len(allowlist) > 0 {
		keep = make(map[string]bool, len(allowlist))
		for _, name := range allowlist {
			keep[name] = true
		}
	}

	return &Streamer{
		f:         f,
		dec:       sample.NewDecoder(rest, info.ByteOrder, info.Dialect.ElementWidth(), pointSize),
		info:      info,
		chunkSize: chunkSize,
		keep:      keep,
	}, nil
}

// UnsupportedError reports a request the streamer cannot fulfil.
type UnsupportedError struct {
	msg string
}

func (e *UnsupportedError) Error() string { return "stream: " + e.msg }

// Close releases the underlying file. Safe to call after Next has
// returned io.EOF.
func (s *Streamer) Close() error { return s.f.Close() }

// Next returns the next chunk, or (nil, io.EOF) once the stream is
// exhausted. The consumer may stop calling Next at any point; no
// background work continues between calls.
func (s *Streamer) Next() (*Chunk, error) {
	if s.done {
		return nil, io.EOF
	}

	var raw [][]float64
	for len(raw) < s.chunkSize {
		pt, boundary, err := s.dec.Next()
		if err == io.EOF {
			s.done = true
			break
		}
		if err != nil {
			return nil, err
		}
		if boundary {
			s.done = true
			break
		}
		raw = append(raw, pt)
	}
	if len(raw) == 0 {
		return nil, io.EOF
	}

	var rows [][]complex128
	var err error
	if s.info.Analysis == header.AC {
		rows, err = sample.Repack(raw, len(s.info.Variables))
	} else {
		rows = sample.RepackReal(raw)
	}
	if err != nil {
		return nil, err
	}

	chunk := &Chunk{
		Index:      s.index,
		ScaleFirst: rows[0][0],
		ScaleLast:  rows[len(rows)-1][0],
		Columns:    make(map[string][]complex128),
	}
	for i, v := range s.info.Variables {
		if i != 0 && s.keep != nil && !s.keep[v.Name] {
			continue
		}
		col := make([]complex128, len(rows))
		for r, row := range rows {
			col[r] = row[i]
		}
		chunk.Columns[v.Name] = col
	}
	s.index++
	return chunk, nil
}
