package hspicewave

import (
	"io"
	"os"

	"github.com/hspicewave/hspicewave/rawfile"
	"github.com/hspicewave/hspicewave/stream"
)

// Convert decodes the HSPICE container at inPath and writes its SPICE3
// rawfile encoding to outPath, collapsing every failure to false for
// ergonomics (see Decode).
func Convert(inPath, outPath string) bool {
	if err := ConvertFile(inPath, outPath); err != nil {
		logger.Error("convert failed", "in", inPath, "out", outPath, "err", err)
		return false
	}
	return true
}

// ConvertFile is the fallible variant of Convert.
func ConvertFile(inPath, outPath string) error {
	wr, err := DecodeFile(inPath)
	if err != nil {
		return wrap(err, "hspicewave: decode")
	}

	out, err := os.Create(outPath)
	if err != nil {
		return wrap(&outputError{msg: "create output", err: err}, "hspicewave: create output")
	}
	defer out.Close()

	if err := rawfile.Write(out, toRawfileInput(wr)); err != nil {
		return wrap(&outputError{msg: "emit rawfile", err: err}, "hspicewave: emit rawfile")
	}
	return nil
}

func toRawfileInput(wr *WaveformResult) *rawfile.Input {
	in := &rawfile.Input{
		Title:    wr.Title,
		Date:     wr.Date,
		Analysis: rawfile.Analysis(wr.Analysis),
	}
	for _, v := range wr.Variables {
		in.Variables = append(in.Variables, rawfile.Variable{
			Name: v.Name,
			Kind: rawfile.VarKind(v.Kind),
		})
	}
	for _, table := range wr.Tables {
		for _, pt := range table {
			in.Tables = append(in.Tables, []complex128(pt))
		}
	}
	return in
}

// Chunk mirrors stream.Chunk, re-exported here so callers of DecodeStream
// don't need a separate import for the common case.
type Chunk = stream.Chunk

// StreamHandle is a thin wrapper around *stream.Streamer exposing the same
// pull-iterator shape as the rest of the facade.
type StreamHandle struct {
	s *stream.Streamer
}

// DecodeStream opens path for chunked, bounded-memory decoding. Swept (dc)
// analyses are not supported in streaming mode; use Decode for those.
func DecodeStream(path string, chunkSize int, allowlist []string) (*StreamHandle, error) {
	s, err := stream.Open(path, chunkSize, allowlist)
	if err != nil {
		return nil, wrap(err, "hspicewave: open stream")
	}
	return &StreamHandle{s: s}, nil
}

// Next returns the next chunk, or (nil, io.EOF) at stream end.
func (h *StreamHandle) Next() (*Chunk, error) {
	c, err := h.s.Next()
	if err != nil && err != io.EOF {
		return nil, wrap(err, "hspicewave: stream next")
	}
	return c, err
}

// Close releases the stream's underlying file handle.
func (h *StreamHandle) Close() error { return h.s.Close() }
