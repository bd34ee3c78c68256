package header

import (
	"fmt"
	"io"

	"github.com/mewkiz/pkg/readerutil"
)

// VarKind classifies a declared variable by its on-disk type code.
type VarKind int

// Variable kinds. KindOther carries the raw on-disk code for callers that
// need it (see Variable.Code).
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
		return "other"
	}
}

// scaleKind maps the first type-code digit (the scale's own code) to a
// Kind. Any digit other than the two the format defines is analysis
// specific and surfaces as KindOther so callers can still recover the raw
// code.
func scaleKind(digit int) VarKind {
	switch digit {
	case 2:
		return KindTime
	case 1:
		return KindFrequency
	default:
		return KindOther
	}
}

// dataKind maps a non-scale type-code digit to a Kind. HSPICE overloads the
// digit differently for data columns than for the scale column; 1 and 2
// are the two conventionally-documented cases (voltage and current), and
// everything else is analysis-specific.
func dataKind(digit int) VarKind {
	switch digit {
	case 1:
		return KindVoltage
	case 2:
		return KindCurrent
	default:
		return KindOther
	}
}

// readTypeCodes reads exactly n ASCII digits and returns the decoded kind
// and the raw digit for each position. pos 0 is always treated as the
// scale.
func readTypeCodes(r io.Reader, n int) ([]VarKind, []int, error) {
	kinds := make([]VarKind, n)
	codes := make([]int, n)
	for i := 0; i < n; i++ {
		b, err := readerutil.ReadByte(r)
		if err != nil {
			return nil, nil, &FormatError{msg: fmt.Sprintf("truncated type-code region: %v", err)}
		}
		if b < '0' || b > '9' {
			return nil, nil, &FormatError{msg: fmt.Sprintf("invalid type-code digit %q at position %d", b, i)}
		}
		digit := int(b - '0')
		codes[i] = digit
		if i == 0 {
			kinds[i] = scaleKind(digit)
		} else {
			kinds[i] = dataKind(digit)
		}
	}
	return kinds, codes, nil
}
