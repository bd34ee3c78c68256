package header

import (
	"bytes"
	"fmt"
	"io"
)

// nameSlotWidth is the per-name byte span the decoder reads before
// tokenising. Real files either pad every name to a fixed column width or
// separate them with plain spaces; bytes.Fields splits either layout, but
// the region is always read as exactly count*nameSlotWidth bytes, so a
// space-separated layout decodes only when it fills that whole span.
const nameSlotWidth = 16

// readNames reads count*nameSlotWidth bytes and splits them on runs of
// ASCII whitespace, tolerating both padded and space-separated name
// layouts. It fails if the tokeniser does not recover exactly count names.
func readNames(r io.Reader, count int) ([]string, error) {
	buf := make([]byte, count*nameSlotWidth)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, &FormatError{msg: fmt.Sprintf("truncated name region: %v", err)}
	}
	fields := bytes.Fields(buf)
	if len(fields) != count {
		return nil, &FormatError{msg: fmt.Sprintf("name region produced %d tokens, expected %d", len(fields), count)}
	}
	names := make([]string, count)
	for i, f := range fields {
		names[i] = string(f)
	}
	return names, nil
}
