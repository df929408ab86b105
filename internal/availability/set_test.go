package availability

import (
	"testing"
	"time"

	"github.com/plan-cake/schedule-service/internal/schedule"
)

func TestSet_ToggleTwiceRestores(t *testing.T) {
	id := schedule.SlotID("2026-03-02T09:00:00Z")
	set := NewSet()

	set.Toggle(id)
	if !set.Has(id) {
		t.Fatal("expected slot selected after first toggle")
	}
	set.Toggle(id)
	if set.Has(id) {
		t.Fatal("expected slot unselected after second toggle")
	}

	preselected := NewSet(id)
	preselected.Toggle(id)
	preselected.Toggle(id)
	if !preselected.Has(id) {
		t.Fatal("expected preselected slot selected again after double toggle")
	}
}

func TestSet_LookupMissIsFalse(t *testing.T) {
	set := NewSet(schedule.SlotID("2026-03-02T09:00:00Z"))
	if set.Has(schedule.SlotID("2026-03-02T09:15:00Z")) {
		t.Fatal("expected miss for unknown id")
	}
	if set.Len() != 1 {
		t.Fatalf("expected 1 member, got %d", set.Len())
	}
}

func utcSlot(y int, m time.Month, d, hh, mm int) schedule.Slot {
	return schedule.Slot{Kind: schedule.KindSpecific, Time: time.Date(y, m, d, hh, mm, 0, 0, time.UTC)}
}

func TestDragSelect_SameDayRun(t *testing.T) {
	a := utcSlot(2026, time.March, 2, 9, 0)
	b := utcSlot(2026, time.March, 2, 9, 45)

	slots := DragSelect(a, b, time.UTC)
	if len(slots) != 4 {
		t.Fatalf("expected the four quarter hours 09:00-09:45, got %d slots", len(slots))
	}
	for i, s := range slots {
		want := time.Date(2026, 3, 2, 9, i*15, 0, 0, time.UTC)
		if !s.Time.Equal(want) {
			t.Fatalf("slot %d: expected %s, got %s", i, want, s.Time)
		}
	}
}

func TestDragSelect_Symmetric(t *testing.T) {
	pairs := [][2]schedule.Slot{
		{utcSlot(2026, time.March, 2, 9, 0), utcSlot(2026, time.March, 2, 9, 45)},
		{utcSlot(2026, time.March, 2, 10, 0), utcSlot(2026, time.March, 4, 9, 0)},
		{utcSlot(2026, time.March, 2, 23, 0), utcSlot(2026, time.March, 3, 1, 0)},
		{utcSlot(2026, time.March, 2, 14, 30), utcSlot(2026, time.March, 2, 14, 30)},
	}

	for _, pair := range pairs {
		forward := DragSelect(pair[0], pair[1], time.UTC)
		backward := DragSelect(pair[1], pair[0], time.UTC)
		if len(forward) != len(backward) {
			t.Fatalf("asymmetric sizes %d vs %d for pair %v", len(forward), len(backward), pair)
		}
		seen := make(map[schedule.SlotID]bool, len(forward))
		for _, s := range forward {
			seen[s.ID()] = true
		}
		for _, s := range backward {
			if !seen[s.ID()] {
				t.Fatalf("backward sweep produced %s missing from forward sweep", s.ID())
			}
		}
	}
}

func TestDragSelect_MultiDayRectangle(t *testing.T) {
	// Press at (day 1, 10:00), move to (day 3, 09:00). Date order and
	// time-of-day order disagree, so each column wraps 10:00 through the next
	// day's 09:00 instead of sweeping an arbitrary date-time range.
	a := utcSlot(2026, time.March, 2, 10, 0)
	b := utcSlot(2026, time.March, 4, 9, 0)

	slots := DragSelect(a, b, time.UTC)
	// 10:00 through next-day 09:00 inclusive is 93 quarter hours, swept over
	// two day columns.
	if len(slots) != 186 {
		t.Fatalf("expected 186 slots, got %d", len(slots))
	}
}

func TestDragSelect_CrossMidnight(t *testing.T) {
	a := utcSlot(2026, time.March, 2, 23, 0)
	b := utcSlot(2026, time.March, 3, 1, 0)

	slots := DragSelect(a, b, time.UTC)
	if len(slots) != 9 {
		t.Fatalf("expected 9 slots from 23:00 through 01:00, got %d", len(slots))
	}
	if !slots[0].Time.Equal(time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected sweep to start 23:00, got %s", slots[0].Time)
	}
	if !slots[8].Time.Equal(time.Date(2026, 3, 3, 1, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected sweep to end 01:00, got %s", slots[8].Time)
	}
}

func TestGesture_DirectionFixedAtStart(t *testing.T) {
	set := NewSet()
	anchor := utcSlot(2026, time.March, 2, 9, 0)
	set.Add(anchor.ID()) // anchor starts selected, so the gesture removes

	g := NewGesture(time.UTC)
	g.Begin(set, anchor)
	if g.Adding() {
		t.Fatal("expected removing gesture when the first slot is selected")
	}

	// Sweep out and back over the anchor; committing must not re-toggle it on.
	g.Extend(utcSlot(2026, time.March, 2, 9, 45))
	g.Extend(anchor)
	g.Extend(utcSlot(2026, time.March, 2, 9, 30))
	g.End(set)

	if g.Active() {
		t.Fatal("expected gesture idle after End")
	}
	for _, s := range []schedule.Slot{anchor, utcSlot(2026, time.March, 2, 9, 15), utcSlot(2026, time.March, 2, 9, 30)} {
		if set.Has(s.ID()) {
			t.Fatalf("expected %s removed by the gesture", s.ID())
		}
	}
}

func TestGesture_CommitForcesMembership(t *testing.T) {
	set := NewSet()
	// 09:15 is already on; an adding gesture sweeping over it must leave it on.
	set.Add(utcSlot(2026, time.March, 2, 9, 15).ID())

	g := NewGesture(time.UTC)
	g.Begin(set, utcSlot(2026, time.March, 2, 9, 0))
	if !g.Adding() {
		t.Fatal("expected adding gesture when the first slot is unselected")
	}
	g.Extend(utcSlot(2026, time.March, 2, 9, 45))

	if !g.Highlighted(utcSlot(2026, time.March, 2, 9, 30).ID()) {
		t.Fatal("expected 09:30 highlighted mid-drag")
	}
	if set.Has(utcSlot(2026, time.March, 2, 9, 30).ID()) {
		t.Fatal("highlight must not commit before End")
	}

	g.End(set)
	for mm := 0; mm <= 45; mm += 15 {
		if !set.Has(utcSlot(2026, time.March, 2, 9, mm).ID()) {
			t.Fatalf("expected 09:%02d selected after commit", mm)
		}
	}
}
