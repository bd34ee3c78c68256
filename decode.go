package hspicewave

import (
	"io"
	"math"
	"os"

	"github.com/hspicewave/hspicewave/internal/blockio"
	"github.com/hspicewave/hspicewave/internal/header"
	"github.com/hspicewave/hspicewave/internal/sample"
)

// Decode reads and decodes the HSPICE container at path, collapsing every
// failure to a bare absence for ergonomics; diagnostic detail is available
// through the logging hook (SetLogLevel) or, for callers that need it, via
// DecodeFile.
func Decode(path string) (*WaveformResult, bool) {
	wr, err := DecodeFile(path)
	if err != nil {
		logger.Error("decode failed", "path", path, "err", err)
		return nil, false
	}
	return wr, true
}

// DecodeFile is the fallible variant of Decode: it surfaces the error
// directly instead of collapsing it to bool, for callers in a position to
// act on ErrorKind.
func DecodeFile(path string) (*WaveformResult, error) {
	info, rest, closer, err := openHeader(path)
	if err != nil {
		return nil, wrap(err, "hspicewave: open")
	}
	defer closer.Close()

	basePointSize := len(info.Variables)
	if info.Analysis == header.AC {
		basePointSize = 1 + 2*(len(info.Variables)-1)
	}

	var segments []sample.Segment
	if info.HasSweep {
		segments, err = decodeSweptSegments(path, info, basePointSize)
	} else {
		dec := sample.NewDecoder(rest, info.ByteOrder, info.Dialect.ElementWidth(), basePointSize)
		segments, err = sample.NewSegmenter(dec).SegmentPlain()
	}
	if err != nil {
		return nil, wrap(err, "hspicewave: decode samples")
	}

	return assembleResult(info, segments)
}

// openHeader opens path and decodes its logical header, returning a
// reader positioned at the first byte of the binary sample region and the
// *os.File the caller must close.
func openHeader(path string) (*header.Info, io.Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	framer := blockio.NewFramer(f)
	info, rest, err := header.Decode(framer)
	if err != nil {
		f.Close()
		return nil, nil, nil, err
	}
	return info, rest, f, nil
}

// decodeSweptSegments opens path afresh and tries the inline-leading-scalar
// sweep layout first; if that disagrees with the header-declared
// sweep-value count, it opens path once more and falls back to the
// header-tail vector layout.
func decodeSweptSegments(path string, info *header.Info, basePointSize int) ([]sample.Segment, error) {
	inlineInfo, inlineRest, inlineCloser, err := openHeader(path)
	if err != nil {
		return nil, err
	}
	defer inlineCloser.Close()

	inlineDec := sample.NewDecoder(inlineRest, inlineInfo.ByteOrder, inlineInfo.Dialect.ElementWidth(), basePointSize)
	inline, inlineErr := sample.NewSegmenter(inlineDec).SegmentInline()
	if inlineErr == nil && (info.NumProbes == 0 || len(inline) == info.NumProbes) {
		return inline, nil
	}
	logger.Debug("inline sweep layout disagreed with header, falling back to tail vector",
		"path", path, "got_segments", len(inline), "want", info.NumProbes)

	tailInfo, tailRest, tailCloser, err := openHeader(path)
	if err != nil {
		return nil, err
	}
	defer tailCloser.Close()

	tailVector, err := readTailVector(tailRest, tailInfo.Dialect.ElementWidth(), tailInfo.ByteOrder, info.NumProbes)
	if err != nil {
		if inlineErr != nil {
			return nil, inlineErr
		}
		return nil, err
	}
	tailDec := sample.NewDecoder(tailRest, tailInfo.ByteOrder, tailInfo.Dialect.ElementWidth(), basePointSize)
	segments, err := sample.NewSegmenter(tailDec).SegmentPlain()
	if err != nil {
		return nil, err
	}
	for i := range segments {
		if i < len(tailVector) {
			segments[i].SweepValue = tailVector[i]
		}
	}
	return segments, nil
}

// readTailVector reads count header-tail sweep values, one scalar each in
// the container's element width and byte order.
func readTailVector(r io.Reader, elementWidth int, order blockio.ByteOrder, count int) ([]float64, error) {
	if count == 0 {
		return nil, nil
	}
	buf := make([]byte, elementWidth)
	out := make([]float64, count)
	for i := range out {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		if elementWidth == 4 {
			out[i] = float64(math.Float32frombits(order.Order().Uint32(buf)))
		} else {
			out[i] = math.Float64frombits(order.Order().Uint64(buf))
		}
	}
	return out, nil
}

func assembleResult(info *header.Info, segments []sample.Segment) (*WaveformResult, error) {
	wr := &WaveformResult{
		Title:      info.Title,
		Date:       info.Date,
		SweepParam: info.SweepName,
	}
	switch info.Analysis {
	case header.AC:
		wr.Analysis = AC
	case header.DC:
		wr.Analysis = DC
	default:
		wr.Analysis = Transient
	}
	for _, v := range info.Variables {
		wr.Variables = append(wr.Variables, Variable{Name: v.Name, Kind: Kind(v.Kind)})
	}

	for _, seg := range segments {
		var rows [][]complex128
		var err error
		if info.Analysis == header.AC {
			rows, err = sample.Repack(seg.Points, len(info.Variables))
		} else {
			rows = sample.RepackReal(seg.Points)
		}
		if err != nil {
			return nil, err
		}
		table := make(DataTable, len(rows))
		for i, row := range rows {
			table[i] = Point(row)
		}
		wr.Tables = append(wr.Tables, table)
		if info.HasSweep {
			wr.SweepValues = append(wr.SweepValues, seg.SweepValue)
		}
	}
	return wr, nil
}
