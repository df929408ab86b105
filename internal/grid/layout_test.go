package grid

import (
	"testing"
	"time"

	"github.com/plan-cake/schedule-service/internal/schedule"
)

func workdayRange(from, to schedule.Date) schedule.Range {
	return schedule.Range{
		Kind:     schedule.KindSpecific,
		Timezone: "UTC",
		Time:     schedule.TimeRange{FromHour: 9, ToHour: 17},
		Dates:    &schedule.DateRange{From: from, To: to},
	}
}

func TestLayout_SingleBlockCoordinates(t *testing.T) {
	day := schedule.Date{Year: 2026, Month: time.March, Day: 2}
	slots := schedule.Expand(workdayRange(day, day))

	view := Layout(slots, time.UTC, 7)
	if view.IsEmpty() {
		t.Fatal("expected non-empty view")
	}
	if len(view.Blocks) != 1 {
		t.Fatalf("expected one time block, got %d", len(view.Blocks))
	}

	block := view.Blocks[0]
	if block.StartHour != 9 || block.EndHour != 16 {
		t.Fatalf("expected block [9,16], got [%d,%d]", block.StartHour, block.EndHour)
	}
	if block.Rows != 32 {
		t.Fatalf("expected 32 rows, got %d", block.Rows)
	}
	if len(block.Cells) != 32 {
		t.Fatalf("expected 32 cells, got %d", len(block.Cells))
	}

	first := block.Cells[0]
	if first.Row != 1 || first.Col != 1 {
		t.Fatalf("expected 09:00 at (1,1), got (%d,%d)", first.Row, first.Col)
	}
	if first.Boundary != BoundarySolid {
		t.Fatal("expected solid boundary on the hour")
	}
	if block.Cells[1].Boundary != BoundaryDashed {
		t.Fatal("expected dashed boundary on the quarter hour")
	}

	// 12:30 sits at row (12-9)*4 + 2 + 1 = 15.
	for _, c := range block.Cells {
		at := c.Slot.Time.In(time.UTC)
		if at.Hour() == 12 && at.Minute() == 30 {
			if c.Row != 15 {
				t.Fatalf("expected 12:30 at row 15, got %d", c.Row)
			}
		}
	}
}

func TestLayout_MidnightWrapSplitsBlocks(t *testing.T) {
	// 07:00-11:00 in Tokyo is 22:00-02:00 in UTC.
	r := schedule.Range{
		Kind:     schedule.KindSpecific,
		Timezone: "Asia/Tokyo",
		Time:     schedule.TimeRange{FromHour: 7, ToHour: 11},
		Dates: &schedule.DateRange{
			From: schedule.Date{Year: 2026, Month: time.March, Day: 2},
			To:   schedule.Date{Year: 2026, Month: time.March, Day: 3},
		},
	}
	slots := schedule.Expand(r)

	view := Layout(slots, time.UTC, 7)
	if len(view.Blocks) != 2 {
		t.Fatalf("expected two stacked blocks, got %d", len(view.Blocks))
	}

	morning, evening := view.Blocks[0], view.Blocks[1]
	if morning.StartHour != 0 || morning.EndHour != 2 {
		t.Fatalf("expected morning block [0,2], got [%d,%d]", morning.StartHour, morning.EndHour)
	}
	if evening.StartHour != 22 || evening.EndHour != 23 {
		t.Fatalf("expected evening block [22,23], got [%d,%d]", evening.StartHour, evening.EndHour)
	}

	for _, block := range view.Blocks {
		for _, c := range block.Cells {
			if c.Row < 1 || c.Row > block.Rows {
				t.Fatalf("row %d out of bounds for block [%d,%d]", c.Row, block.StartHour, block.EndHour)
			}
		}
	}
}

func TestLayout_DisplayTimezoneMovesDays(t *testing.T) {
	r := schedule.Range{
		Kind:     schedule.KindSpecific,
		Timezone: "Asia/Tokyo",
		Time:     schedule.TimeRange{FromHour: 7, ToHour: 11},
		Dates: &schedule.DateRange{
			From: schedule.Date{Year: 2026, Month: time.March, Day: 2},
			To:   schedule.Date{Year: 2026, Month: time.March, Day: 2},
		},
	}
	slots := schedule.Expand(r)

	local := Layout(slots, mustLoadLocation(t, "Asia/Tokyo"), 7)
	if len(local.Days) != 1 || local.Days[0].Key != "2026-03-02" {
		t.Fatalf("expected one Tokyo day 2026-03-02, got %v", local.Days)
	}

	utc := Layout(slots, time.UTC, 7)
	if len(utc.Days) != 2 {
		t.Fatalf("expected the UTC view to straddle two days, got %v", utc.Days)
	}
	if utc.Days[0].Key != "2026-03-01" || utc.Days[1].Key != "2026-03-02" {
		t.Fatalf("unexpected UTC day keys %v", utc.Days)
	}
}

func TestLayout_EmptyView(t *testing.T) {
	view := Layout(nil, time.UTC, 7)
	if !view.IsEmpty() {
		t.Fatal("expected empty view for zero slots")
	}
	if view.TotalPages() != 0 {
		t.Fatalf("expected 0 pages, got %d", view.TotalPages())
	}
	if next := view.Paginate(1); next.CurrentPage != 0 {
		t.Fatalf("expected paging an empty view to stay at 0, got %d", next.CurrentPage)
	}
}

func TestPaginate_CoversAllDaysExactlyOnce(t *testing.T) {
	slots := schedule.Expand(workdayRange(
		schedule.Date{Year: 2026, Month: time.March, Day: 2},
		schedule.Date{Year: 2026, Month: time.March, Day: 11},
	))

	for _, pageSize := range []int{4, 7} {
		view := Layout(slots, time.UTC, pageSize)
		if len(view.Days) != 10 {
			t.Fatalf("expected 10 days, got %d", len(view.Days))
		}

		var gathered []DayColumn
		for page := 0; page < view.TotalPages(); page++ {
			gathered = append(gathered, view.VisibleDays()...)
			view = view.Paginate(1)
		}
		if len(gathered) != len(view.Days) {
			t.Fatalf("pageSize %d: pages covered %d days, want %d", pageSize, len(gathered), len(view.Days))
		}
		for i, d := range gathered {
			if d.Key != view.Days[i].Key {
				t.Fatalf("pageSize %d: day %d is %s, want %s", pageSize, i, d.Key, view.Days[i].Key)
			}
		}
	}
}

func TestPaginate_Clamps(t *testing.T) {
	slots := schedule.Expand(workdayRange(
		schedule.Date{Year: 2026, Month: time.March, Day: 2},
		schedule.Date{Year: 2026, Month: time.March, Day: 11},
	))
	view := Layout(slots, time.UTC, 4)

	if view.TotalPages() != 3 {
		t.Fatalf("expected 3 pages, got %d", view.TotalPages())
	}
	if back := view.Paginate(-1); back.CurrentPage != 0 {
		t.Fatalf("expected clamp at first page, got %d", back.CurrentPage)
	}
	forward := view.Paginate(1).Paginate(1).Paginate(1).Paginate(1)
	if forward.CurrentPage != 2 {
		t.Fatalf("expected clamp at last page, got %d", forward.CurrentPage)
	}
	if got := len(forward.VisibleDays()); got != 2 {
		t.Fatalf("expected 2 days on the final page, got %d", got)
	}
}

func mustLoadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load location %s: %v", name, err)
	}
	return loc
}
