package schedule

import "time"

// Kind discriminates the two shapes an event's possible times can take:
// a bounded span of calendar dates, or a repeating weekday pattern with no
// calendar date at all. Every consumer switches on Kind exhaustively.
type Kind int

const (
	// KindSpecific covers an inclusive range of calendar dates.
	KindSpecific Kind = iota
	// KindWeekday covers a repeating Sun..Sat pattern anchored to a fixed
	// reference week rather than real dates.
	KindWeekday
)

func (k Kind) String() string {
	switch k {
	case KindSpecific:
		return "specific"
	case KindWeekday:
		return "weekday"
	default:
		return "unknown"
	}
}

// ParseKind maps the wire representation back to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "specific":
		return KindSpecific, true
	case "weekday":
		return KindWeekday, true
	default:
		return 0, false
	}
}

// Date is a calendar date with no clock and no timezone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	n := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return DateOf(n)
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	if d.Year != other.Year {
		return d.Year > other.Year
	}
	if d.Month != other.Month {
		return d.Month > other.Month
	}
	return d.Day > other.Day
}

// DateRange bounds inclusive calendar days.
type DateRange struct {
	From Date
	To   Date
}

// TimeRange is a daily wall-clock window in whole hours. ToHour == 24 means
// midnight at the end of the day (exclusive), which is not the same thing as
// ToHour == 0.
type TimeRange struct {
	FromHour int
	ToHour   int
}

// WeekdaySet flags selected weekdays, indexed by time.Weekday (Sunday = 0).
type WeekdaySet [7]bool

// None reports whether no weekday is selected.
func (w WeekdaySet) None() bool {
	for _, set := range w {
		if set {
			return false
		}
	}
	return true
}

// Bits packs the set into an integer bitmask (bit 0 = Sunday) for storage.
func (w WeekdaySet) Bits() int {
	bits := 0
	for i, set := range w {
		if set {
			bits |= 1 << i
		}
	}
	return bits
}

// WeekdaysFromBits is the inverse of Bits.
func WeekdaysFromBits(bits int) WeekdaySet {
	var w WeekdaySet
	for i := range w {
		w[i] = bits&(1<<i) != 0
	}
	return w
}

// Range is the abstract definition of an event's possible times. It is
// immutable once constructed by the editor; the engine only reads it.
//
// Timezone is the authoritative frame for interpreting Time: the same Range
// produces the same absolute instants no matter where it is later displayed.
type Range struct {
	Kind     Kind
	Timezone string
	Time     TimeRange

	// DurationMinutes is the advisory meeting length. Display only; it never
	// affects slot generation.
	DurationMinutes int

	// Dates is set for KindSpecific ranges.
	Dates *DateRange

	// Weekdays is set for KindWeekday ranges.
	Weekdays WeekdaySet
}
