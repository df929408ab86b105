// Package grid lays an expanded slot sequence out into the paginated
// day/hour view the painting and results screens render. Layout is a pure
// function of the slots, the display timezone, and the page size; changing
// any of those means recomputing from scratch, never patching.
package grid

import (
	"time"

	"github.com/plan-cake/schedule-service/internal/schedule"
)

// Boundary is the presentational hint for a slot's upper border.
type Boundary int

const (
	// BoundarySolid marks on-the-hour rows.
	BoundarySolid Boundary = iota
	// BoundaryDashed marks quarter-hour rows.
	BoundaryDashed
)

// DayColumn is one grid column: a local calendar day in the display zone.
type DayColumn struct {
	Key   string // local date, 2006-01-02
	Label string // what the header renders
}

// Cell is a slot annotated with its grid coordinates. Row and Col are
// 1-based; Col indexes into the full day list, before pagination.
type Cell struct {
	Slot     schedule.Slot
	Row, Col int
	Boundary Boundary
}

// TimeBlock is a contiguous hour span rendered as one grid section. A range
// wrapping past local midnight produces two stacked blocks so row indices
// never go negative.
type TimeBlock struct {
	StartHour int
	EndHour   int
	Rows      int
	Cells     []Cell
}

// View is the derived grid model. It is recomputed whenever the slot
// sequence, the display timezone, or the page size changes, and never
// persisted.
type View struct {
	Days        []DayColumn
	Blocks      []TimeBlock
	PageSize    int
	CurrentPage int
}

// IsEmpty distinguishes the "no slots" view so the presentation layer can
// render an explicit inline error instead of an empty or crashed grid.
func (v View) IsEmpty() bool {
	return len(v.Days) == 0
}

// TotalPages returns how many day pages the view has.
func (v View) TotalPages() int {
	if len(v.Days) == 0 || v.PageSize <= 0 {
		return 0
	}
	return (len(v.Days) + v.PageSize - 1) / v.PageSize
}

// VisibleDays returns the day columns on the current page. Concatenating
// every page's result in page order reproduces Days exactly.
func (v View) VisibleDays() []DayColumn {
	lo, hi := v.pageBounds()
	return v.Days[lo:hi]
}

// VisibleCells returns the cells of one block whose columns fall on the
// current page.
func (v View) VisibleCells(block TimeBlock) []Cell {
	lo, hi := v.pageBounds()
	var cells []Cell
	for _, c := range block.Cells {
		if c.Col > lo && c.Col <= hi {
			cells = append(cells, c)
		}
	}
	return cells
}

// Paginate moves the page window by direction (+1 forward, -1 back). It is a
// pure index transform: no expansion or layout work is redone, and paging off
// either end clamps.
func (v View) Paginate(direction int) View {
	total := v.TotalPages()
	if total == 0 {
		v.CurrentPage = 0
		return v
	}
	page := v.CurrentPage + direction
	if page < 0 {
		page = 0
	}
	if page > total-1 {
		page = total - 1
	}
	v.CurrentPage = page
	return v
}

func (v View) pageBounds() (int, int) {
	if v.PageSize <= 0 {
		return 0, len(v.Days)
	}
	lo := v.CurrentPage * v.PageSize
	if lo > len(v.Days) {
		lo = len(v.Days)
	}
	hi := lo + v.PageSize
	if hi > len(v.Days) {
		hi = len(v.Days)
	}
	return lo, hi
}

// Layout converts slots into a grid view in the display timezone. Page size
// is a viewport signal supplied by the caller (observed values: 4 narrow, 7
// wide).
func Layout(slots []schedule.Slot, displayLoc *time.Location, pageSize int) View {
	if displayLoc == nil {
		displayLoc = time.UTC
	}
	if pageSize <= 0 {
		pageSize = 7
	}
	if len(slots) == 0 {
		return View{PageSize: pageSize}
	}

	type localSlot struct {
		slot schedule.Slot
		at   time.Time // in displayLoc
		col  int
	}

	// Group by local calendar day, preserving first-seen order. A display
	// zone east or west of the authoring zone can move slots onto different
	// days than they were authored on; only the local day matters here.
	var days []DayColumn
	colByKey := make(map[string]int)
	locals := make([]localSlot, 0, len(slots))
	for _, s := range slots {
		at := s.Time.In(displayLoc)
		key := at.Format("2006-01-02")
		col, ok := colByKey[key]
		if !ok {
			col = len(days) + 1
			colByKey[key] = col
			days = append(days, DayColumn{Key: key, Label: dayLabel(s.Kind, at)})
		}
		locals = append(locals, localSlot{slot: s, at: at, col: col})
	}

	firstHour := locals[0].at.Hour()
	lastHour := locals[len(locals)-1].at.Hour()

	var blocks []TimeBlock
	if lastHour < firstHour {
		// The window wraps past local midnight. Early-morning slots stack in
		// a [0, endHour] block above the [startHour, 23] evening block.
		morningEnd := 0
		eveningStart := 24
		for _, ls := range locals {
			h := ls.at.Hour()
			if h < firstHour {
				if end := (h*60 + ls.at.Minute() + 15) / 60; end > morningEnd {
					morningEnd = end
				}
			} else if h < eveningStart {
				eveningStart = h
			}
		}
		blocks = []TimeBlock{
			newBlock(0, morningEnd),
			newBlock(eveningStart, 23),
		}
		for _, ls := range locals {
			b := 1
			if ls.at.Hour() < firstHour {
				b = 0
			}
			blocks[b].Cells = append(blocks[b].Cells, newCell(ls.slot, ls.at, ls.col, blocks[b].StartHour))
		}
	} else {
		startHour := 24
		endHour := 0
		for _, ls := range locals {
			h := ls.at.Hour()
			if h < startHour {
				startHour = h
			}
			if h > endHour {
				endHour = h
			}
		}
		blocks = []TimeBlock{newBlock(startHour, endHour)}
		for _, ls := range locals {
			blocks[0].Cells = append(blocks[0].Cells, newCell(ls.slot, ls.at, ls.col, startHour))
		}
	}

	return View{Days: days, Blocks: blocks, PageSize: pageSize}
}

func newBlock(startHour, endHour int) TimeBlock {
	return TimeBlock{
		StartHour: startHour,
		EndHour:   endHour,
		Rows:      (endHour - startHour + 1) * schedule.SlotsPerHour,
	}
}

func newCell(s schedule.Slot, at time.Time, col, blockStart int) Cell {
	boundary := BoundaryDashed
	if at.Minute() == 0 {
		boundary = BoundarySolid
	}
	return Cell{
		Slot:     s,
		Row:      (at.Hour()-blockStart)*schedule.SlotsPerHour + at.Minute()/15 + 1,
		Col:      col,
		Boundary: boundary,
	}
}

func dayLabel(kind schedule.Kind, at time.Time) string {
	switch kind {
	case schedule.KindWeekday:
		// Weekday patterns have no real date; only the weekday name renders.
		return at.Format("Mon")
	default:
		return at.Format("Mon Jan 2")
	}
}
