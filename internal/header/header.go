// Package header decodes the ASCII-and-binary logical header of an HSPICE
// waveform container: the fixed metadata preamble, the digit-coded
// variable-type list, and the whitespace-separated variable-name list.
package header

import (
	"fmt"
	"io"
	"strings"

	"github.com/hspicewave/hspicewave/internal/blockio"
)

// AnalysisKind is the genre of simulation a container records.
type AnalysisKind int

// Supported analysis kinds.
const (
	Transient AnalysisKind = iota
	AC
	DC
)

func (k AnalysisKind) String() string {
	switch k {
	case AC:
		return "ac"
	case DC:
		return "dc"
	default:
		return "transient"
	}
}

// resolveAnalysisKind classifies the free-text analysis tag read from the
// preamble. The tag's exact wording varies across tool versions, so
// classification is substring-based rather than an exact-match table.
func resolveAnalysisKind(tag string) AnalysisKind {
	lower := strings.ToLower(tag)
	switch {
	case strings.Contains(lower, "ac"):
		return AC
	case strings.Contains(lower, "dc") || strings.Contains(lower, "sweep") || strings.Contains(lower, "swp"):
		return DC
	default:
		return Transient
	}
}

// Variable describes one declared column: its on-disk name, kind, and raw
// type-code digit (meaningful only when Kind is KindOther).
type Variable struct {
	Name string
	Kind VarKind
	Code int
}

// Info is the fully assembled result of header decoding: everything the
// sample decoder needs to interpret the binary region that follows.
type Info struct {
	Dialect   Dialect
	Title     string
	Date      string
	Analysis  AnalysisKind
	NumVars   int
	Variables []Variable // declared order; Variables[0] is always the scale
	SweepName string     // empty if this container has no sweep parameter
	HasSweep  bool
	NumProbes int // header-declared sweep-segment count; meaningful only when HasSweep
	ByteOrder blockio.ByteOrder
}

// ScaleName returns the name of the scale column (Variables[0]).
func (info *Info) ScaleName() string { return info.Variables[0].Name }

// ScaleKind returns the kind of the scale column (Variables[0]).
func (info *Info) ScaleKind() VarKind { return info.Variables[0].Kind }

// Decode reads the logical header from f: the fixed metadata preamble, the
// type-code region, and the name region. The returned io.Reader picks up
// exactly at the first byte of the binary sample region; it is not f
// itself, since the preamble scan buffers ahead of f and may hold
// unconsumed bytes the sample decoder still needs.
func Decode(f *blockio.Framer) (*Info, io.Reader, error) {
	pre, rest, err := decodePreamble(f)
	if err != nil {
		return nil, nil, err
	}
	if pre.NumVars <= 0 {
		return nil, nil, &FormatError{msg: fmt.Sprintf("non-positive num_vars %d", pre.NumVars)}
	}

	kinds, codes, err := readTypeCodes(rest, pre.NumVars)
	if err != nil {
		return nil, nil, err
	}

	analysis := resolveAnalysisKind(pre.AnalysisTag)
	hasSweep := analysis == DC

	nameCount := pre.NumVars
	if hasSweep {
		nameCount++
	}
	names, err := readNames(rest, nameCount)
	if err != nil {
		return nil, nil, err
	}

	info := &Info{
		Dialect:   pre.Dialect,
		Title:     pre.Title,
		Date:      pre.Date,
		Analysis:  analysis,
		NumVars:   pre.NumVars,
		HasSweep:  hasSweep,
		NumProbes: pre.NumProbes,
		ByteOrder: f.ByteOrder(),
	}
	for i := 0; i < pre.NumVars; i++ {
		info.Variables = append(info.Variables, Variable{
			Name: names[i],
			Kind: kinds[i],
			Code: codes[i],
		})
	}
	if hasSweep {
		info.SweepName = names[nameCount-1]
	}
	return info, rest, nil
}
