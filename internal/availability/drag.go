package availability

import (
	"time"

	"github.com/plan-cake/schedule-service/internal/schedule"
)

const minutesPerDay = 24 * 60

// DragSelect computes the full set of slots a pointer sweep between two grid
// slots should mark, in the display timezone loc. Direction is decided from
// the time-of-day components alone: a drag is visually a same-day or
// cross-midnight sweep over a column of times, not an arbitrary date-time
// range. The result is symmetric: DragSelect(a, b) == DragSelect(b, a).
//
// When the earlier instant carries the earlier time-of-day the sweep is the
// plain rectangle of (day, time-of-day) pairs between the two corners. When
// the orderings disagree the band wraps past midnight instead, so dragging
// from 23:00 to 01:00 marks the nine slots through midnight rather than
// twenty-two hours of rectangle.
func DragSelect(a, b schedule.Slot, loc *time.Location) []schedule.Slot {
	start, end := a, b
	if end.Time.Before(start.Time) {
		start, end = end, start
	}

	ls := start.Time.In(loc)
	le := end.Time.In(loc)
	startTod := ls.Hour()*60 + ls.Minute()
	endTod := le.Hour()*60 + le.Minute()

	// Minutes swept per day column, inclusive of both endpoints.
	span := endTod - startTod
	lastDay := schedule.DateOf(le)
	if span < 0 {
		// Date order and time-of-day order disagree: wrap into the next day.
		span += minutesPerDay
		lastDay = schedule.DateOf(le.AddDate(0, 0, -1))
	}

	var slots []schedule.Slot
	for d := schedule.DateOf(ls); ; d = d.Next() {
		for offset := 0; offset <= span; offset += 15 {
			t := time.Date(d.Year, d.Month, d.Day, 0, startTod+offset, 0, 0, loc)
			slots = append(slots, schedule.Slot{Kind: start.Kind, Time: t.UTC()})
		}
		if !lastDay.After(d) {
			return slots
		}
	}
}

// Gesture is the two-state pointer machine behind drag selection. The toggle
// direction is captured once on Begin, from the state of the first slot
// touched, and held for the whole gesture so that re-entering a slot mid-drag
// cannot toggle it back.
type Gesture struct {
	active  bool
	adding  bool
	anchor  schedule.Slot
	loc     *time.Location
	pending map[schedule.SlotID]struct{}
}

// NewGesture returns an idle gesture that sweeps in the given display zone.
func NewGesture(loc *time.Location) *Gesture {
	if loc == nil {
		loc = time.UTC
	}
	return &Gesture{loc: loc}
}

// Active reports whether a drag is in progress.
func (g *Gesture) Active() bool {
	return g.active
}

// Begin enters the dragging state on pointer-down over s. The gesture adds
// slots if s is currently unselected, removes them otherwise.
func (g *Gesture) Begin(set Set, s schedule.Slot) {
	g.active = true
	g.adding = !set.Has(s.ID())
	g.anchor = s
	g.pending = map[schedule.SlotID]struct{}{s.ID(): {}}
}

// Extend recomputes the highlighted set for a pointer-move to s. Nothing is
// committed yet.
func (g *Gesture) Extend(s schedule.Slot) {
	if !g.active {
		return
	}
	pending := make(map[schedule.SlotID]struct{})
	for _, slot := range DragSelect(g.anchor, s, g.loc) {
		pending[slot.ID()] = struct{}{}
	}
	g.pending = pending
}

// Highlighted reports whether id is in the not-yet-committed sweep.
func (g *Gesture) Highlighted(id schedule.SlotID) bool {
	if !g.active {
		return false
	}
	_, ok := g.pending[id]
	return ok
}

// Adding reports the direction fixed at Begin.
func (g *Gesture) Adding() bool {
	return g.adding
}

// End commits the highlighted set on pointer-up and returns to idle. Every
// swept slot has its membership forced to the gesture's direction, not
// toggled, so visiting a slot twice is harmless.
func (g *Gesture) End(set Set) {
	if !g.active {
		return
	}
	for id := range g.pending {
		if g.adding {
			set.Add(id)
		} else {
			set.Remove(id)
		}
	}
	g.active = false
	g.pending = nil
}
