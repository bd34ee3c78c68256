package header

import "testing"

func TestDialectElementWidth(t *testing.T) {
	if Width32.ElementWidth() != 4 {
		t.Fatalf("Width32.ElementWidth() = %d, want 4", Width32.ElementWidth())
	}
	if Width64.ElementWidth() != 8 {
		t.Fatalf("Width64.ElementWidth() = %d, want 8", Width64.ElementWidth())
	}
}

func TestDialectNumVarsFieldWidth(t *testing.T) {
	if Width32.numVarsFieldWidth() != 4 {
		t.Fatalf("Width32.numVarsFieldWidth() = %d, want 4", Width32.numVarsFieldWidth())
	}
	if Width64.numVarsFieldWidth() != 8 {
		t.Fatalf("Width64.numVarsFieldWidth() = %d, want 8", Width64.numVarsFieldWidth())
	}
}
