// Package labels maintains the bijection between arbitrary class labels and
// the contiguous integer indices the native engine trains against.
//
// The ordering rule is fixed: distinct labels are sorted ascending, and the
// resulting index space is stable for the lifetime of the mapping. The engine's
// class indices depend on this ordering, so it must never change between
// encode and decode.
package labels

import (
	"cmp"
	"fmt"
	"slices"
)

// ErrTooFewClasses is returned by Fit when fewer than two distinct labels
// are supplied. A single-class problem is degenerate for classification.
var ErrTooFewClasses = fmt.Errorf("at least 2 distinct classes required")

// ErrUnknownLabel is returned by Encode when a label was not seen at fit time.
var ErrUnknownLabel = fmt.Errorf("label not seen during fit")

// Mapping is an immutable label <-> index bijection.
//
// Indices run from 0 to NumClasses()-1 in ascending label order.
type Mapping[L cmp.Ordered] struct {
	classes []L
	index   map[L]uint32
}

// Fit builds a mapping from the distinct labels in ys, sorted ascending.
func Fit[L cmp.Ordered](ys []L) (*Mapping[L], error) {
	classes := slices.Clone(ys)
	slices.Sort(classes)
	classes = slices.Compact(classes)

	if len(classes) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewClasses, len(classes))
	}

	index := make(map[L]uint32, len(classes))
	for i, c := range classes {
		index[c] = uint32(i)
	}
	return &Mapping[L]{classes: classes, index: index}, nil
}

// NumClasses returns the number of distinct classes.
func (m *Mapping[L]) NumClasses() int {
	return len(m.classes)
}

// Classes returns the class labels in index order. The returned slice is a
// copy; mutating it does not affect the mapping.
func (m *Mapping[L]) Classes() []L {
	return slices.Clone(m.classes)
}

// Equal reports whether other holds the same classes in the same order.
func (m *Mapping[L]) Equal(other []L) bool {
	return slices.Equal(m.classes, other)
}

// Encode maps labels to engine class indices.
func (m *Mapping[L]) Encode(ys []L) ([]uint32, error) {
	out := make([]uint32, len(ys))
	for i, y := range ys {
		idx, ok := m.index[y]
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnknownLabel, y)
		}
		out[i] = idx
	}
	return out, nil
}

// Decode maps engine class indices back to labels.
//
// An out-of-range index is a programming error (the engine only ever emits
// indices below NumClasses), so Decode panics rather than returning an error.
func (m *Mapping[L]) Decode(idxs []uint32) []L {
	out := make([]L, len(idxs))
	for i, idx := range idxs {
		if int(idx) >= len(m.classes) {
			panic(fmt.Sprintf("labels: index %d out of range for %d classes", idx, len(m.classes)))
		}
		out[i] = m.classes[idx]
	}
	return out
}
