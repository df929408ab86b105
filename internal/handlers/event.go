package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/plan-cake/schedule-service/internal/model"
	"github.com/plan-cake/schedule-service/internal/schedule"
	"github.com/plan-cake/schedule-service/internal/storage"
	"github.com/plan-cake/schedule-service/libs/auth"
)

const adminTokenTTL = 90 * 24 * time.Hour

type createEventRequest struct {
	Title string       `json:"title"`
	Range rangePayload `json:"range"`
}

type createEventResponse struct {
	Code       string `json:"code"`
	AdminToken string `json:"admin_token"`
	SlotCount  int    `json:"slot_count"`
}

type getEventResponse struct {
	Code      string       `json:"code"`
	Title     string       `json:"title"`
	Range     rangePayload `json:"range"`
	SlotCount int          `json:"slot_count"`
	CreatedAt string       `json:"created_at"`
}

func (h *ScheduleHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		http.Error(w, "title required", http.StatusBadRequest)
		return
	}

	rng, err := req.Range.toRange()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	slots := schedule.Expand(rng)
	if len(slots) == 0 {
		http.Error(w, "range expands to no slots", http.StatusBadRequest)
		return
	}

	evt := &model.Event{
		// Short URL-friendly code; retried on the off chance of a collision.
		Code:  uuid.NewString()[:8],
		Title: req.Title,
		Range: rng,
	}
	ctx := r.Context()
	for attempt := 0; ; attempt++ {
		err = h.events.Create(ctx, evt)
		if err == nil {
			break
		}
		if storage.IsConflict(err) && attempt < 2 {
			evt.Code = uuid.NewString()[:8]
			continue
		}
		http.Error(w, "failed to create event", http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC()
	token, err := auth.Sign(auth.Claims{
		EventCode: evt.Code,
		Role:      "admin",
		Iat:       now.Unix(),
		Exp:       now.Add(adminTokenTTL).Unix(),
	}, h.tokenSecret)
	if err != nil {
		h.logger.Error("failed to sign admin token", "err", err)
		http.Error(w, "failed to create event", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, createEventResponse{
		Code:       evt.Code,
		AdminToken: token,
		SlotCount:  len(slots),
	})
}

func (h *ScheduleHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, getEventResponse{
		Code:      evt.Code,
		Title:     evt.Title,
		Range:     rangeToPayload(evt.Range),
		SlotCount: len(schedule.Expand(evt.Range)),
		CreatedAt: evt.CreatedAt.UTC().Format(time.RFC3339),
	})
}
