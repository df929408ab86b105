package results

import (
	"testing"
	"time"

	"github.com/plan-cake/schedule-service/internal/availability"
	"github.com/plan-cake/schedule-service/internal/schedule"
)

func sampleAggregate() Aggregate {
	r := schedule.Range{
		Kind:     schedule.KindSpecific,
		Timezone: "UTC",
		Time:     schedule.TimeRange{FromHour: 9, ToHour: 11},
		Dates: &schedule.DateRange{
			From: schedule.Date{Year: 2026, Month: time.March, Day: 2},
			To:   schedule.Date{Year: 2026, Month: time.March, Day: 2},
		},
	}
	slots := schedule.Expand(r)

	ada := availability.NewSet()
	for _, s := range slots {
		ada.Add(s.ID())
	}
	grace := availability.NewSet(slots[0].ID(), slots[1].ID())
	linus := availability.NewSet()

	return Build(
		[]string{"ada", "grace", "linus"},
		map[string]availability.Set{"ada": ada, "grace": grace, "linus": linus},
	)
}

func TestBuild_MergesInParticipantOrder(t *testing.T) {
	agg := sampleAggregate()
	if len(agg.Participants) != 3 {
		t.Fatalf("expected 3 participants, got %d", len(agg.Participants))
	}

	id := schedule.SlotID("2026-03-02T09:00:00Z")
	names := agg.Availability[id]
	if len(names) != 2 || names[0] != "ada" || names[1] != "grace" {
		t.Fatalf("expected [ada grace] at 09:00, got %v", names)
	}
	if agg.CountAt(schedule.SlotID("2026-03-02T10:45:00Z")) != 1 {
		t.Fatal("expected only ada at 10:45")
	}
	if agg.CountAt(schedule.SlotID("2026-03-02T23:00:00Z")) != 0 {
		t.Fatal("expected zero for slot outside the range")
	}
}

func TestFilter_FullSetIsIdentity(t *testing.T) {
	agg := sampleAggregate()
	filtered := Filter(agg, []string{"ada", "grace", "linus"})

	if len(filtered.Availability) != len(agg.Availability) {
		t.Fatalf("full-set filter changed slot count %d -> %d", len(agg.Availability), len(filtered.Availability))
	}
	for id, names := range agg.Availability {
		got := filtered.Availability[id]
		if len(got) != len(names) {
			t.Fatalf("slot %s: %v became %v", id, names, got)
		}
		for i := range names {
			if got[i] != names[i] {
				t.Fatalf("slot %s: %v became %v", id, names, got)
			}
		}
	}
}

func TestFilter_EmptySetDropsEverything(t *testing.T) {
	filtered := Filter(sampleAggregate(), nil)
	if len(filtered.Availability) != 0 {
		t.Fatalf("expected no slots, got %d", len(filtered.Availability))
	}
}

func TestFilter_SubsetDropsEmptyIntersections(t *testing.T) {
	filtered := Filter(sampleAggregate(), []string{"grace"})

	// Grace only marked the first two slots; everything else must vanish.
	if len(filtered.Availability) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(filtered.Availability))
	}
	for id, names := range filtered.Availability {
		if len(names) != 1 || names[0] != "grace" {
			t.Fatalf("slot %s: expected [grace], got %v", id, names)
		}
	}
}
