// Package availability holds one participant's selected slots and the
// operations that mutate them: toggling, drag selection, and the dense
// matrix encoding exchanged with storage.
package availability

import "github.com/plan-cake/schedule-service/internal/schedule"

// Set is an unordered collection of slot identifiers a participant has
// marked available. The zero value of NewSet is valid and empty.
type Set map[schedule.SlotID]struct{}

// NewSet builds a set from any initial ids.
func NewSet(ids ...schedule.SlotID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports membership. Unknown ids are simply false, never an error.
func (s Set) Has(id schedule.SlotID) bool {
	_, ok := s[id]
	return ok
}

// Toggle flips membership of id.
func (s Set) Toggle(id schedule.SlotID) {
	if s.Has(id) {
		delete(s, id)
	} else {
		s[id] = struct{}{}
	}
}

// Add forces id into the set.
func (s Set) Add(id schedule.SlotID) {
	s[id] = struct{}{}
}

// Remove forces id out of the set.
func (s Set) Remove(id schedule.SlotID) {
	delete(s, id)
}

// Len returns the number of selected slots.
func (s Set) Len() int {
	return len(s)
}
