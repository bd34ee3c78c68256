package header

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hspicewave/hspicewave/internal/blockio"
)

// preambleScanWindow bounds how much of the logical stream the preamble
// scan is willing to buffer while hunting for the dialect marker. It must
// comfortably exceed title+date+tag+marker+num_vars+num_probes for either
// dialect.
const preambleScanWindow = 256

// titleFieldWidth and dateFieldWidth are the fixed-width ASCII fields that
// lead every HSPICE header, in both dialects.
const (
	titleFieldWidth = 80
	dateFieldWidth  = 16
)

// markers are the literal dialect tokens that appear verbatim in the
// preamble immediately after the analysis tag field.
var markers = []struct {
	tok []byte
	d   Dialect
}{
	{[]byte("2001"), Width64},
	{[]byte("9601"), Width32},
	{[]byte("9007"), Width32},
}

// preamble holds the fixed metadata fields decoded ahead of the type-code
// and name regions.
type preamble struct {
	Dialect      Dialect
	Title        string
	Date         string
	AnalysisTag  string
	NumVars      int
	NumProbes    int
}

// decodePreamble reads the title/date/analysis-tag/dialect-marker/num_vars/
// num_probes fields from the front of the logical stream. It returns the
// preamble and a reader positioned exactly at the byte following
// num_probes, splicing together whatever scan-window bytes were not
// consumed with the live framer so no data is lost.
func decodePreamble(f *blockio.Framer) (*preamble, io.Reader, error) {
	buf, err := readUpTo(f, preambleScanWindow)
	if err != nil {
		return nil, nil, err
	}
	if len(buf) < titleFieldWidth+dateFieldWidth+4 {
		return nil, nil, &FormatError{msg: "header shorter than the fixed preamble fields"}
	}

	title := strings.TrimSpace(string(buf[:titleFieldWidth]))
	date := strings.TrimSpace(string(buf[titleFieldWidth : titleFieldWidth+dateFieldWidth]))

	searchFrom := titleFieldWidth + dateFieldWidth
	markerAt, dialect, err := findMarker(buf[searchFrom:])
	if err != nil {
		return nil, nil, err
	}
	markerAt += searchFrom

	tag := strings.TrimSpace(string(buf[searchFrom:markerAt]))

	fieldWidth := dialect.numVarsFieldWidth()
	fieldsStart := markerAt + 4
	fieldsEnd := fieldsStart + 2*fieldWidth
	if fieldsEnd > len(buf) {
		return nil, nil, &FormatError{msg: "header shorter than the num_vars/num_probes fields"}
	}

	numVars, err := parseDecimalField(buf[fieldsStart : fieldsStart+fieldWidth])
	if err != nil {
		return nil, nil, &FormatError{msg: fmt.Sprintf("malformed num_vars field: %v", err)}
	}
	numProbes, err := parseDecimalField(buf[fieldsStart+fieldWidth : fieldsEnd])
	if err != nil {
		return nil, nil, &FormatError{msg: fmt.Sprintf("malformed num_probes field: %v", err)}
	}

	p := &preamble{
		Dialect:     dialect,
		Title:       title,
		Date:        date,
		AnalysisTag: tag,
		NumVars:     numVars,
		NumProbes:   numProbes,
	}
	rest := io.MultiReader(bytes.NewReader(buf[fieldsEnd:]), f)
	return p, rest, nil
}

func findMarker(buf []byte) (int, Dialect, error) {
	best := -1
	var dialect Dialect
	for _, m := range markers {
		if i := bytes.Index(buf, m.tok); i != -1 && (best == -1 || i < best) {
			best = i
			dialect = m.d
		}
	}
	if best == -1 {
		return 0, 0, &FormatError{msg: fmt.Sprintf("no recognised dialect marker in header prefix %q", buf)}
	}
	return best, dialect, nil
}

func parseDecimalField(b []byte) (int, error) {
	s := strings.TrimSpace(string(b))
	if s == "" {
		return 0, fmt.Errorf("empty field")
	}
	return strconv.Atoi(s)
}

// readUpTo reads up to n bytes from f, tolerating a short read at EOF (the
// scan window is a best-effort buffer, not a hard length requirement).
// Any other error from f, such as a *blockio.FramingError, is returned.
func readUpTo(f *blockio.Framer, n int) ([]byte, error) {
	buf := make([]byte, n)
	got := 0
	for got < n {
		m, err := f.Read(buf[got:])
		got += m
		if err != nil && err != io.EOF {
			return nil, err
		}
		if m == 0 || err != nil {
			break
		}
	}
	return buf[:got], nil
}
