package header

import (
	"strings"
	"testing"
)

func TestReadTypeCodes(t *testing.T) {
	kinds, codes, err := readTypeCodes(strings.NewReader("212"), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []VarKind{KindTime, KindVoltage, KindCurrent}
	for i, k := range want {
		if kinds[i] != k {
			t.Fatalf("kinds[%d] = %v, want %v", i, kinds[i], k)
		}
	}
	if codes[0] != 2 || codes[1] != 1 || codes[2] != 2 {
		t.Fatalf("codes = %v, want [2 1 2]", codes)
	}
}

func TestReadTypeCodesInvalidDigit(t *testing.T) {
	if _, _, err := readTypeCodes(strings.NewReader("2x"), 2); err == nil {
		t.Fatal("expected a FormatError for a non-digit byte, got nil")
	} else if _, ok := err.(*FormatError); !ok {
		t.Fatalf("expected *FormatError, got %T: %v", err, err)
	}
}

func TestScaleKindAndDataKind(t *testing.T) {
	if scaleKind(2) != KindTime {
		t.Fatalf("scaleKind(2) = %v, want KindTime", scaleKind(2))
	}
	if scaleKind(1) != KindFrequency {
		t.Fatalf("scaleKind(1) = %v, want KindFrequency", scaleKind(1))
	}
	if dataKind(1) != KindVoltage {
		t.Fatalf("dataKind(1) = %v, want KindVoltage", dataKind(1))
	}
	if dataKind(2) != KindCurrent {
		t.Fatalf("dataKind(2) = %v, want KindCurrent", dataKind(2))
	}
}
