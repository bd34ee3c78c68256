package sample

import "fmt"

// ConsistencyError reports a sample table that is internally well-formed
// but violates a cross-field invariant the decoder requires: an on-disk
// point width that doesn't match the declared variable count, or a
// segment count disagreeing with the sweep-value vector.
type ConsistencyError struct {
	msg string
}

func (e *ConsistencyError) Error() string { return "sample: " + e.msg }

// Repack converts AC on-disk points (`[scale, re(v1), im(v1), re(v2),
// im(v2), …]`) into logical points of `numVars` complex128 values, one per
// declared variable including the scale (whose imaginary part is always
// zero).
func Repack(points [][]float64, numVars int) ([][]complex128, error) {
	wantWidth := 1 + 2*(numVars-1)
	out := make([][]complex128, len(points))
	for i, pt := range points {
		if len(pt) != wantWidth {
			return nil, &ConsistencyError{msg: fmt.Sprintf("AC point %d has width %d, want %d", i, len(pt), wantWidth)}
		}
		row := make([]complex128, numVars)
		row[0] = complex(pt[0], 0)
		for v := 1; v < numVars; v++ {
			re := pt[1+2*(v-1)]
			im := pt[2+2*(v-1)]
			row[v] = complex(re, im)
		}
		out[i] = row
	}
	return out, nil
}

// RepackReal lifts real-valued (transient/DC) points into the same
// complex128-uniform row representation the rest of the pipeline shares,
// with every imaginary part forced to zero.
func RepackReal(points [][]float64) [][]complex128 {
	out := make([][]complex128, len(points))
	for i, pt := range points {
		row := make([]complex128, len(pt))
		for v, x := range pt {
			row[v] = complex(x, 0)
		}
		out[i] = row
	}
	return out
}
