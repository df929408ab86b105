package schedule

import "time"

const (
	// SlotDuration is the grain of everything in this package.
	SlotDuration = 15 * time.Minute

	// SlotsPerHour is 60 / 15.
	SlotsPerHour = 4

	// maxWindowDays caps specific-range enumeration so a malformed date pair
	// cannot produce an unbounded slot list.
	maxWindowDays = 1000
)

// Reference week for weekday ranges: 2017-01-01 was a Sunday. The anchor is
// arbitrary but must never change, because weekday slot identity is derived
// from it.
var referenceWeek = Date{Year: 2017, Month: time.January, Day: 1}

// SlotID identifies one 15-minute instant. Weekday-range identifiers carry a
// "weekly:" prefix so they can never collide with specific-range identifiers,
// even when the underlying instants coincide.
type SlotID string

// Slot is a single 15-minute-aligned instant considered for availability.
// For specific ranges Time is a real UTC instant; for weekday ranges it falls
// inside the fixed reference week and stands for "every Monday 09:00" rather
// than any particular date.
type Slot struct {
	Kind Kind
	Time time.Time
}

func (s Slot) ID() SlotID {
	ts := s.Time.UTC().Format(time.RFC3339)
	if s.Kind == KindWeekday {
		return SlotID("weekly:" + ts)
	}
	return SlotID(ts)
}

// DayWindow is the absolute [Start, End) interval one local calendar day
// contributes to a range. Start and End are UTC instants computed with full
// IANA rules, so a DST transition changes only that day's width.
type DayWindow struct {
	Kind  Kind
	Date  Date
	Start time.Time
	End   time.Time
}

// SlotCount returns how many 15-minute slots fit in the window.
func (w DayWindow) SlotCount() int {
	if !w.End.After(w.Start) {
		return 0
	}
	return int(w.End.Sub(w.Start) / SlotDuration)
}

// SlotAt returns the i-th slot of the window.
func (w DayWindow) SlotAt(i int) Slot {
	return Slot{Kind: w.Kind, Time: w.Start.Add(time.Duration(i) * SlotDuration)}
}

// dayWindow translates one local calendar day's wall-clock window into UTC
// instants. This is the single boundary routine shared by expansion and the
// matrix codec; any index math elsewhere must flow through it.
func dayWindow(kind Kind, d Date, tr TimeRange, loc *time.Location) DayWindow {
	start := time.Date(d.Year, d.Month, d.Day, tr.FromHour, 0, 0, 0, loc)

	var end time.Time
	if tr.ToHour == 24 {
		// Midnight at the end of the day, not the start.
		end = time.Date(d.Year, d.Month, d.Day+1, 0, 0, 0, 0, loc)
	} else {
		end = time.Date(d.Year, d.Month, d.Day, tr.ToHour, 0, 0, 0, loc)
	}

	return DayWindow{Kind: kind, Date: d, Start: start.UTC(), End: end.UTC()}
}

// Windows enumerates the per-day windows of a range in day order: calendar
// order for specific ranges, Sun..Sat over the reference week for weekday
// ranges. Degenerate input (missing dates, empty weekday set, unknown
// timezone) yields nil. A window whose ToHour is not later than its FromHour
// simply contains zero slots; rejecting that is the caller's job.
func Windows(r Range) []DayWindow {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil
	}

	switch r.Kind {
	case KindSpecific:
		if r.Dates == nil {
			return nil
		}
		var windows []DayWindow
		for d := r.Dates.From; !d.After(r.Dates.To); d = d.Next() {
			windows = append(windows, dayWindow(r.Kind, d, r.Time, loc))
			if len(windows) >= maxWindowDays {
				break
			}
		}
		return windows

	case KindWeekday:
		var windows []DayWindow
		for wd := 0; wd < 7; wd++ {
			if !r.Weekdays[wd] {
				continue
			}
			d := Date{Year: referenceWeek.Year, Month: referenceWeek.Month, Day: referenceWeek.Day + wd}
			windows = append(windows, dayWindow(r.Kind, d, r.Time, loc))
		}
		return windows

	default:
		return nil
	}
}

// Expand turns a range into its ordered sequence of slots. It is total:
// degenerate input produces an empty sequence, never an error. Every slot is
// aligned to a 15-minute boundary and the sequence is strictly increasing
// within each day window.
func Expand(r Range) []Slot {
	var slots []Slot
	for _, w := range Windows(r) {
		for t := w.Start; t.Before(w.End); t = t.Add(SlotDuration) {
			slots = append(slots, Slot{Kind: w.Kind, Time: t})
		}
	}
	return slots
}
