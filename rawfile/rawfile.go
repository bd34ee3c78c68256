// Package rawfile writes the SPICE3/ngspice binary "rawfile" format: an
// ASCII header terminated by a literal "Binary:" line, followed by a
// contiguous little-endian float64 matrix.
package rawfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/mewkiz/pkg/errutil"
)

// VarKind is the SPICE3 lowercase variable-kind token written in the
// "Variables:" section.
type VarKind int

// Supported kinds, matching the SPICE3 vocabulary.
const (
	KindTime VarKind = iota
	KindVoltage
	KindCurrent
	KindFrequency
	KindOther
)

func (k VarKind) String() string {
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

// Analysis selects the "Plotname" line and whether columns are complex.
type Analysis int

// Supported analyses.
const (
	Transient Analysis = iota
	AC
	DC
)

func (a Analysis) prettyName() string {
	switch a {
	case AC:
		return "AC Analysis"
	case DC:
		return "DC transfer characteristic"
	default:
		return "Transient Analysis"
	}
}

// Variable is one declared column.
type Variable struct {
	Name string
	Kind VarKind
}

// Input is the data Write needs to emit a rawfile. It deliberately has no
// dependency on package hspicewave's WaveformResult, so that the facade
// can sit on top of this package without an import cycle; callers
// construct an Input from whatever in-memory representation they hold.
type Input struct {
	Title     string
	Date      string
	Analysis  Analysis
	Variables []Variable // Variables[0] is the scale
	// Tables concatenates every segment's rows; for a non-swept result
	// this is the single table's rows.
	Tables [][]complex128
}

// Write emits in's rawfile encoding to w. It builds the complete output in
// an in-memory buffer first and copies it to w in one shot, so a write
// failure partway through never leaves w holding a truncated file the
// caller must clean up.
func Write(w io.Writer, in *Input) error {
	buf := new(bytes.Buffer)

	numVars := len(in.Variables)
	points := len(in.Tables)

	complexFlags := in.Analysis == AC
	flags := "real"
	if complexFlags {
		flags = "complex"
	}

	fmt.Fprintf(buf, "Title: %s\n", in.Title)
	fmt.Fprintf(buf, "Date: %s\n", in.Date)
	fmt.Fprintf(buf, "Plotname: %s\n", in.Analysis.prettyName())
	fmt.Fprintf(buf, "Flags: %s\n", flags)
	fmt.Fprintf(buf, "No. Variables: %d\n", numVars)
	fmt.Fprintf(buf, "No. Points: %d\n", points)
	fmt.Fprintln(buf, "Variables:")
	for i, v := range in.Variables {
		fmt.Fprintf(buf, "\t%d\t%s\t%s\n", i, v.Name, v.Kind)
	}
	fmt.Fprintln(buf, "Binary:")

	for _, row := range in.Tables {
		if len(row) != numVars {
			return fmt.Errorf("rawfile: row has %d columns, want %d", len(row), numVars)
		}
		if err := writeRow(buf, row, complexFlags); err != nil {
			return errutil.Err(err)
		}
	}

	if _, err := io.Copy(w, buf); err != nil {
		return errutil.Err(err)
	}
	return nil
}

func writeRow(buf *bytes.Buffer, row []complex128, complexFlags bool) error {
	var scratch [8]byte
	writeFloat := func(f float64) error {
		binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(f))
		_, err := buf.Write(scratch[:])
		return err
	}
	if err := writeFloat(real(row[0])); err != nil {
		return err
	}
	for _, v := range row[1:] {
		if err := writeFloat(real(v)); err != nil {
			return err
		}
		if complexFlags {
			if err := writeFloat(imag(v)); err != nil {
				return err
			}
		}
	}
	return nil
}
