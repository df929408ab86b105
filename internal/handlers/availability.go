package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/plan-cake/schedule-service/internal/availability"
	"github.com/plan-cake/schedule-service/internal/model"
	"github.com/plan-cake/schedule-service/internal/outbox"
	"github.com/plan-cake/schedule-service/internal/results"
	"github.com/plan-cake/schedule-service/internal/storage"
)

type saveAvailabilityRequest struct {
	Code     string              `json:"code"`
	Name     string              `json:"name"`
	Password string              `json:"password,omitempty"`
	Timezone string              `json:"timezone"`
	Matrix   availability.Matrix `json:"matrix"`
}

type saveAvailabilityResponse struct {
	Name      string `json:"name"`
	SlotCount int    `json:"slot_count"`
}

// SaveAvailability creates or overwrites one participant's matrix. A name
// that was first claimed with a password stays locked to that password.
func (h *ScheduleHandler) SaveAvailability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req saveAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.Code = strings.TrimSpace(req.Code)
	req.Name = strings.TrimSpace(req.Name)
	req.Timezone = strings.TrimSpace(req.Timezone)
	if req.Code == "" || req.Name == "" {
		http.Error(w, "code and name required", http.StatusBadRequest)
		return
	}
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			http.Error(w, "unknown timezone", http.StatusBadRequest)
			return
		}
	}

	ctx := r.Context()
	evt, err := h.events.GetByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load event", http.StatusInternalServerError)
		return
	}

	if err := availability.ValidateMatrix(req.Matrix, evt.Range); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	participant := model.Participant{
		ID:           uuid.NewString(),
		EventCode:    req.Code,
		DisplayName:  req.Name,
		TimeZone:     req.Timezone,
		Availability: req.Matrix,
	}
	existing, err := h.participants.GetByName(ctx, req.Code, req.Name)
	switch {
	case err == nil:
		if existing.PasswordHash != "" {
			if bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(req.Password)) != nil {
				http.Error(w, "wrong password for this name", http.StatusUnauthorized)
				return
			}
			participant.PasswordHash = existing.PasswordHash
		}
		participant.ID = existing.ID
	case errors.Is(err, storage.ErrNotFound):
		if req.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				http.Error(w, "failed to hash password", http.StatusInternalServerError)
				return
			}
			participant.PasswordHash = string(hash)
		}
	default:
		http.Error(w, "failed to load participant", http.StatusInternalServerError)
		return
	}

	slotCount := availability.FromMatrix(req.Matrix, evt.Range).Len()

	tx, err := h.participants.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := h.participants.Upsert(ctx, tx, &participant); err != nil {
		http.Error(w, "failed to save availability", http.StatusInternalServerError)
		return
	}

	evtPayload, err := outbox.AvailabilitySubmitted(outbox.AvailabilitySubmittedPayload{
		EventCode:   req.Code,
		Participant: req.Name,
		SlotCount:   slotCount,
		SubmittedAt: time.Now().UTC(),
	})
	if err != nil {
		http.Error(w, "failed to build event payload", http.StatusInternalServerError)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, evtPayload); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}

	h.invalidateNameCache(ctx, req.Code, req.Name)
	writeJSON(w, http.StatusOK, saveAvailabilityResponse{Name: req.Name, SlotCount: slotCount})
}

type resultsResponse struct {
	Participants []string            `json:"participants"`
	Availability map[string][]string `json:"availability"`
	BestCount    int                 `json:"best_count"`
}

// Results returns who is free at every slot anyone selected. An optional
// names query parameter (comma separated) narrows the view to a subset of
// participants, the grid-hover behavior of the results page.
func (h *ScheduleHandler) Results(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if code == "" {
		http.Error(w, "code required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	evt, err := h.events.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to load event", http.StatusInternalServerError)
		return
	}

	people, err := h.participants.ListByEvent(ctx, code)
	if err != nil {
		http.Error(w, "failed to list participants", http.StatusInternalServerError)
		return
	}

	order := make([]string, 0, len(people))
	sets := make(map[string]availability.Set, len(people))
	for _, p := range people {
		order = append(order, p.DisplayName)
		sets[p.DisplayName] = availability.FromMatrix(p.Availability, evt.Range)
	}

	agg := results.Build(order, sets)
	if raw := strings.TrimSpace(r.URL.Query().Get("names")); raw != "" {
		var active []string
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				active = append(active, name)
			}
		}
		agg = results.Filter(agg, active)
	}

	resp := resultsResponse{
		Participants: agg.Participants,
		Availability: make(map[string][]string, len(agg.Availability)),
	}
	for id, names := range agg.Availability {
		resp.Availability[string(id)] = names
		if len(names) > resp.BestCount {
			resp.BestCount = len(names)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
