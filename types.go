// Package hspicewave decodes HSPICE-family waveform containers (.tr0,
// .ac0, .sw0) into an in-memory representation and re-encodes that
// representation as a SPICE3/ngspice binary rawfile.
package hspicewave

import "strings"

// Kind classifies a declared variable.
type Kind int

// Supported variable kinds.
const (
	KindTime Kind = iota
	KindVoltage
	KindCurrent
	KindFrequency
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindTime:
		return "time"
	case KindVoltage:
		return "voltage"
	case KindCurrent:
		return "current"
	case KindFrequency:
		return "frequency"
	default:
		return "notype"
	}
}

// Analysis is the genre of simulation a WaveformResult records.
type Analysis int

// Supported analyses.
const (
	Transient Analysis = iota
	AC
	DC
)

func (a Analysis) String() string {
	switch a {
	case AC:
		return "ac"
	case DC:
		return "dc"
	default:
		return "transient"
	}
}

// PrettyName is the SPICE3 rawfile "Plotname" text for a.
func (a Analysis) PrettyName() string {
	switch a {
	case AC:
		return "AC Analysis"
	case DC:
		return "DC transfer characteristic"
	default:
		return "Transient Analysis"
	}
}

// Variable is a named column: a declared kind and a case-preserving name
// as found in the file. The first variable of a WaveformResult is always
// the scale, distinguished positionally, not by kind.
type Variable struct {
	Name string
	Kind Kind
}

// Point is one row of a DataTable: the scale value followed by one
// scalar per data variable. Every value is stored as complex128, with the
// imaginary part forced to zero for real (non-AC) values; Variable.Kind
// and WaveformResult.Analysis tell the caller which columns carry a
// meaningful imaginary part.
type Point []complex128

// DataTable is an ordered collection of points, one per declared
// Variable, in the same column order.
type DataTable []Point

// WaveformResult aggregates a fully decoded HSPICE container.
type WaveformResult struct {
	Title       string
	Date        string
	Analysis    Analysis
	Variables   []Variable // Variables[0] is the scale
	Tables      []DataTable
	SweepParam  string    // empty if this result has no sweep parameter
	SweepValues []float64 // len(SweepValues) == len(Tables) when present
}

// Len returns the point count of the first table.
func (wr *WaveformResult) Len() int {
	if len(wr.Tables) == 0 {
		return 0
	}
	return len(wr.Tables[0])
}

// Get returns the named variable's scalar vector from the first table,
// case-insensitively, with an exact-case match preferred when the
// case-folded name is ambiguous. The second return value is false if no
// variable matches.
func (wr *WaveformResult) Get(name string) ([]complex128, bool) {
	idx, ok := wr.indexOf(name)
	if !ok {
		return nil, false
	}
	if len(wr.Tables) == 0 {
		return nil, true
	}
	vec := make([]complex128, len(wr.Tables[0]))
	for i, pt := range wr.Tables[0] {
		vec[i] = pt[idx]
	}
	return vec, true
}

// indexOf resolves name to a column index: exact case first, then a
// case-insensitive fallback; exact case wins whenever both match.
func (wr *WaveformResult) indexOf(name string) (int, bool) {
	lower := strings.ToLower(name)
	fallback := -1
	for i, v := range wr.Variables {
		if v.Name == name {
			return i, true
		}
		if fallback == -1 && strings.ToLower(v.Name) == lower {
			fallback = i
		}
	}
	if fallback != -1 {
		return fallback, true
	}
	return 0, false
}
