package availability

import (
	"fmt"

	"github.com/plan-cake/schedule-service/internal/schedule"
)

// Matrix is the dense day-by-quarter-hour boolean encoding used on the wire
// and in storage. Row order is the expansion's day order; column order is the
// quarter-hour offset from that day's own local start. It is rebuilt from
// schedule.Windows on every encode so its indices can never drift from the
// Expansion Engine's.
type Matrix [][]bool

// ToMatrix encodes a set against a range. For every day window and every
// 15-minute offset inside it, the cell is true iff the corresponding slot id
// is present in the set.
func ToMatrix(set Set, r schedule.Range) Matrix {
	windows := schedule.Windows(r)
	m := make(Matrix, len(windows))
	for i, w := range windows {
		row := make([]bool, w.SlotCount())
		for j := range row {
			row[j] = set.Has(w.SlotAt(j).ID())
		}
		m[i] = row
	}
	return m
}

// FromMatrix decodes a stored matrix back into a set using the same boundary
// math as ToMatrix. Cells outside the range's true shape are ignored.
func FromMatrix(m Matrix, r schedule.Range) Set {
	set := NewSet()
	for i, w := range schedule.Windows(r) {
		if i >= len(m) {
			break
		}
		count := w.SlotCount()
		for j, selected := range m[i] {
			if j >= count {
				break
			}
			if selected {
				set.Add(w.SlotAt(j).ID())
			}
		}
	}
	return set
}

// ValidateMatrix checks that a client-supplied matrix has exactly the shape
// the range expands to.
func ValidateMatrix(m Matrix, r schedule.Range) error {
	windows := schedule.Windows(r)
	if len(m) != len(windows) {
		return fmt.Errorf("availability has %d day rows, range has %d", len(m), len(windows))
	}
	for i, w := range windows {
		if len(m[i]) != w.SlotCount() {
			return fmt.Errorf("day %d has %d slots, range has %d", i, len(m[i]), w.SlotCount())
		}
	}
	return nil
}
