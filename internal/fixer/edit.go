package fixer

import (
	"fmt"
	"sort"
)

// Edit is a single insertion instruction derived from validator diagnostics.
// Pos is a byte offset into the buffer as it existed when the validator
// produced the diagnostic; Insert is the text to splice in at that offset.
type Edit struct {
	Pos    int
	Insert string
}

// Apply splices every edit's text into buf at its position and returns the
// new buffer. Edits are applied in descending position order: an insertion
// at offset p only shifts bytes at offsets >= p, so applying high offsets
// first keeps every remaining offset valid against the original buffer.
// The sort is stable, so edits at the same position keep the order in which
// the validator emitted them.
//
// Pos == len(buf) appends. Pos outside [0, len(buf)] means the validator and
// the buffer have desynchronized and is returned as an error rather than
// clamped. An empty edit set returns buf unchanged.
func Apply(buf string, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return buf, nil
	}
	for _, e := range edits {
		if e.Pos < 0 || e.Pos > len(buf) {
			return "", fmt.Errorf("edit position %d out of range for buffer of %d bytes", e.Pos, len(buf))
		}
	}

	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Pos > sorted[j].Pos })

	for _, e := range sorted {
		buf = buf[:e.Pos] + e.Insert + buf[e.Pos:]
	}
	return buf, nil
}
