package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/plan-cake/schedule-service/internal/grid"
	"github.com/plan-cake/schedule-service/internal/schedule"
	"github.com/plan-cake/schedule-service/internal/storage"
)

type gridDayItem struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type gridCellItem struct {
	SlotID   string `json:"slot_id"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Boundary string `json:"boundary"`
}

type gridBlockItem struct {
	StartHour int            `json:"start_hour"`
	EndHour   int            `json:"end_hour"`
	Rows      int            `json:"rows"`
	Cells     []gridCellItem `json:"cells"`
}

type gridResponse struct {
	Days       []gridDayItem   `json:"days"`
	Blocks     []gridBlockItem `json:"blocks"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
}

// Grid returns the laid-out selection grid for an event, paginated by day
// columns, in an optional display timezone. Cells carry global columns so a
// client can page without re-fetching.
func (h *ScheduleHandler) Grid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if code == "" {
		http.Error(w, "code required", http.StatusBadRequest)
		return
	}

	evt, err := h.events.GetByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load event", http.StatusInternalServerError)
		return
	}

	displayLoc, err := time.LoadLocation(evt.Range.Timezone)
	if err != nil {
		http.Error(w, "failed to load event", http.StatusInternalServerError)
		return
	}
	if tz := strings.TrimSpace(r.URL.Query().Get("tz")); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			http.Error(w, "unknown timezone", http.StatusBadRequest)
			return
		}
		displayLoc = loc
	}

	pageSize := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("page_size")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 31 {
			pageSize = n
		}
	}

	view := grid.Layout(schedule.Expand(evt.Range), displayLoc, pageSize)
	if raw := strings.TrimSpace(r.URL.Query().Get("page")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			for i := 0; i < n; i++ {
				view = view.Paginate(1)
			}
		}
	}

	resp := gridResponse{
		Page:       view.CurrentPage,
		TotalPages: view.TotalPages(),
	}
	for _, day := range view.VisibleDays() {
		resp.Days = append(resp.Days, gridDayItem{Key: day.Key, Label: day.Label})
	}
	for _, block := range view.Blocks {
		item := gridBlockItem{
			StartHour: block.StartHour,
			EndHour:   block.EndHour,
			Rows:      block.Rows,
		}
		for _, cell := range view.VisibleCells(block) {
			boundary := "dashed"
			if cell.Boundary == grid.BoundarySolid {
				boundary = "solid"
			}
			item.Cells = append(item.Cells, gridCellItem{
				SlotID:   string(cell.Slot.ID()),
				Row:      cell.Row,
				Col:      cell.Col,
				Boundary: boundary,
			})
		}
		resp.Blocks = append(resp.Blocks, item)
	}
	writeJSON(w, http.StatusOK, resp)
}
