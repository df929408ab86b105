package schedule

import (
	"testing"
	"time"
)

func specificRange(tz string, from, to Date, fromHour, toHour int) Range {
	return Range{
		Kind:     KindSpecific,
		Timezone: tz,
		Time:     TimeRange{FromHour: fromHour, ToHour: toHour},
		Dates:    &DateRange{From: from, To: to},
	}
}

func TestExpand_SingleDayUTC(t *testing.T) {
	day := Date{Year: 2026, Month: time.March, Day: 2}
	r := specificRange("UTC", day, day, 9, 17)

	slots := Expand(r)
	if len(slots) != 32 {
		t.Fatalf("expected 32 slots for 09:00-17:00, got %d", len(slots))
	}
	first := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	if !slots[0].Time.Equal(first) {
		t.Fatalf("expected first slot %s, got %s", first, slots[0].Time)
	}
	last := time.Date(2026, 3, 2, 16, 45, 0, 0, time.UTC)
	if !slots[len(slots)-1].Time.Equal(last) {
		t.Fatalf("expected last slot %s, got %s", last, slots[len(slots)-1].Time)
	}
}

func TestExpand_WeekdayPattern(t *testing.T) {
	var weekdays WeekdaySet
	weekdays[time.Monday] = true
	weekdays[time.Wednesday] = true

	r := Range{
		Kind:     KindWeekday,
		Timezone: "UTC",
		Time:     TimeRange{FromHour: 9, ToHour: 17},
		Weekdays: weekdays,
	}

	slots := Expand(r)
	if len(slots) != 64 {
		t.Fatalf("expected 64 slots for Mon+Wed 09:00-17:00, got %d", len(slots))
	}

	// Reference week anchoring: the first 32 slots must fall on a Monday,
	// the rest on a Wednesday.
	if wd := slots[0].Time.Weekday(); wd != time.Monday {
		t.Fatalf("expected Monday slots first, got %s", wd)
	}
	if wd := slots[32].Time.Weekday(); wd != time.Wednesday {
		t.Fatalf("expected Wednesday slots second, got %s", wd)
	}
}

func TestExpand_SpringForwardShortensDay(t *testing.T) {
	// America/New_York jumps 02:00 -> 03:00 on 2026-03-08.
	transition := Date{Year: 2026, Month: time.March, Day: 8}
	normal := Date{Year: 2026, Month: time.March, Day: 9}

	short := Expand(specificRange("America/New_York", transition, transition, 1, 4))
	long := Expand(specificRange("America/New_York", normal, normal, 1, 4))

	if len(long) != 12 {
		t.Fatalf("expected 12 slots on a normal 01:00-04:00 day, got %d", len(long))
	}
	if len(short) != 8 {
		t.Fatalf("expected 8 slots on the spring-forward day, got %d", len(short))
	}
}

func TestExpand_DSTInsideRangeShiftsOnlyThatDay(t *testing.T) {
	from := Date{Year: 2026, Month: time.March, Day: 7}
	to := Date{Year: 2026, Month: time.March, Day: 9}
	slots := Expand(specificRange("America/New_York", from, to, 0, 24))

	// 96 + 92 + 96: the transition day loses exactly one hour.
	if len(slots) != 284 {
		t.Fatalf("expected 284 slots across the transition, got %d", len(slots))
	}
}

func TestExpand_MidnightUpperBound(t *testing.T) {
	day := Date{Year: 2026, Month: time.June, Day: 1}
	slots := Expand(specificRange("UTC", day, day, 22, 24))
	if len(slots) != 8 {
		t.Fatalf("expected 8 slots for 22:00-24:00, got %d", len(slots))
	}
	last := time.Date(2026, 6, 1, 23, 45, 0, 0, time.UTC)
	if !slots[len(slots)-1].Time.Equal(last) {
		t.Fatalf("expected last slot %s, got %s", last, slots[len(slots)-1].Time)
	}
}

func TestExpand_AlignmentAndOrdering(t *testing.T) {
	ranges := []Range{
		specificRange("America/New_York", Date{2026, time.March, 7}, Date{2026, time.March, 10}, 9, 17),
		specificRange("Asia/Kolkata", Date{2026, time.July, 1}, Date{2026, time.July, 3}, 0, 24),
		{
			Kind:     KindWeekday,
			Timezone: "Europe/Berlin",
			Time:     TimeRange{FromHour: 8, ToHour: 20},
			Weekdays: WeekdaySet{true, false, true, false, true, false, true},
		},
	}

	for _, r := range ranges {
		slots := Expand(r)
		if len(slots) == 0 {
			t.Fatalf("expected slots for range %+v", r)
		}
		for i, s := range slots {
			if s.Time.Second() != 0 || s.Time.Minute()%15 != 0 {
				t.Fatalf("slot %d not 15-minute aligned: %s", i, s.Time)
			}
			if i > 0 && !slots[i-1].Time.Before(s.Time) {
				t.Fatalf("slots not strictly increasing at index %d: %s then %s", i, slots[i-1].Time, s.Time)
			}
		}
	}
}

func TestExpand_DegenerateInput(t *testing.T) {
	tests := []struct {
		name string
		r    Range
	}{
		{"missing dates", Range{Kind: KindSpecific, Timezone: "UTC", Time: TimeRange{9, 17}}},
		{"zero weekdays", Range{Kind: KindWeekday, Timezone: "UTC", Time: TimeRange{9, 17}}},
		{"unknown timezone", specificRange("Mars/Olympus", Date{2026, time.March, 2}, Date{2026, time.March, 2}, 9, 17)},
		{"reversed dates", specificRange("UTC", Date{2026, time.March, 5}, Date{2026, time.March, 2}, 9, 17)},
		{"to not after from", specificRange("UTC", Date{2026, time.March, 2}, Date{2026, time.March, 2}, 17, 9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if slots := Expand(tt.r); len(slots) != 0 {
				t.Fatalf("expected empty sequence, got %d slots", len(slots))
			}
		})
	}
}

func TestSlotID_KindsNeverCollide(t *testing.T) {
	instant := time.Date(2017, 1, 2, 9, 0, 0, 0, time.UTC)
	specific := Slot{Kind: KindSpecific, Time: instant}
	weekly := Slot{Kind: KindWeekday, Time: instant}
	if specific.ID() == weekly.ID() {
		t.Fatalf("specific and weekday slot ids must differ, both were %q", specific.ID())
	}
}

func TestWindows_ReferenceWeekStartsOnSunday(t *testing.T) {
	r := Range{
		Kind:     KindWeekday,
		Timezone: "UTC",
		Time:     TimeRange{FromHour: 9, ToHour: 10},
		Weekdays: WeekdaySet{true, true, true, true, true, true, true},
	}
	windows := Windows(r)
	if len(windows) != 7 {
		t.Fatalf("expected 7 windows, got %d", len(windows))
	}
	for i, w := range windows {
		if got := w.Start.Weekday(); got != time.Weekday(i) {
			t.Fatalf("window %d: expected %s, got %s", i, time.Weekday(i), got)
		}
	}
}
