// Package results holds the aggregate view of everyone's availability: for
// each slot, who is free then. The service builds it from stored matrices;
// the grid consumes it read-only for heatmap rendering.
package results

import (
	"github.com/plan-cake/schedule-service/internal/availability"
	"github.com/plan-cake/schedule-service/internal/schedule"
)

// Aggregate maps each slot to the participants available at it.
// Participants keeps the display order the backend returned; the per-slot
// name lists follow the same order.
type Aggregate struct {
	Participants []string
	Availability map[schedule.SlotID][]string
}

// Build merges every participant's set into one aggregate. Participants with
// empty sets still appear in the participant list, just never in a slot.
func Build(order []string, sets map[string]availability.Set) Aggregate {
	agg := Aggregate{
		Participants: order,
		Availability: make(map[schedule.SlotID][]string),
	}
	for _, name := range order {
		for id := range sets[name] {
			agg.Availability[id] = append(agg.Availability[id], name)
		}
	}
	// Name lists must follow participant order, not map iteration order.
	for id, names := range agg.Availability {
		agg.Availability[id] = sortByOrder(names, order)
	}
	return agg
}

// Filter restricts the aggregate to the active participant subset, entirely
// locally. Slots whose intersection is empty are dropped. Filtering by the
// full participant set returns an aggregate equal to the original; filtering
// by the empty set returns one with no slots.
func Filter(agg Aggregate, active []string) Aggregate {
	activeSet := make(map[string]struct{}, len(active))
	for _, name := range active {
		activeSet[name] = struct{}{}
	}

	filtered := Aggregate{
		Participants: agg.Participants,
		Availability: make(map[schedule.SlotID][]string),
	}
	for id, names := range agg.Availability {
		var kept []string
		for _, name := range names {
			if _, ok := activeSet[name]; ok {
				kept = append(kept, name)
			}
		}
		if len(kept) > 0 {
			filtered.Availability[id] = kept
		}
	}
	return filtered
}

// CountAt returns how many participants are available at a slot. Unknown
// slots count zero.
func (a Aggregate) CountAt(id schedule.SlotID) int {
	return len(a.Availability[id])
}

func sortByOrder(names, order []string) []string {
	member := make(map[string]struct{}, len(names))
	for _, n := range names {
		member[n] = struct{}{}
	}
	sorted := make([]string, 0, len(names))
	for _, n := range order {
		if _, ok := member[n]; ok {
			sorted = append(sorted, n)
		}
	}
	return sorted
}
