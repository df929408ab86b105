package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/plan-cake/schedule-service/internal/outbox"
	"github.com/plan-cake/schedule-service/internal/storage"
	"github.com/plan-cake/schedule-service/libs/auth"
)

const nameCacheTTL = 30 * time.Second

type removeParticipantRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type removeParticipantResponse struct {
	Name    string `json:"name"`
	Removed bool   `json:"removed"`
}

// RemoveParticipant deletes one response from an event. Only the event
// creator may do this, proven by the admin token issued at creation.
func (h *ScheduleHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req removeParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.Code = strings.TrimSpace(req.Code)
	req.Name = strings.TrimSpace(req.Name)
	if req.Code == "" || req.Name == "" {
		http.Error(w, "code and name required", http.StatusBadRequest)
		return
	}

	claims, ok := h.adminClaims(r)
	if !ok || claims.EventCode != req.Code {
		http.Error(w, "admin token required", http.StatusForbidden)
		return
	}

	ctx := r.Context()
	tx, err := h.participants.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	removed, err := h.participants.Delete(ctx, tx, req.Code, req.Name)
	if err != nil {
		http.Error(w, "failed to remove participant", http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "participant not found", http.StatusNotFound)
		return
	}

	evt, err := outbox.ParticipantRemoved(outbox.ParticipantRemovedPayload{
		EventCode:   req.Code,
		Participant: req.Name,
		RemovedAt:   time.Now().UTC(),
	})
	if err != nil {
		http.Error(w, "failed to build event payload", http.StatusInternalServerError)
		return
	}
	if err := h.outboxRepo.Insert(ctx, tx, evt); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}

	h.invalidateNameCache(ctx, req.Code, req.Name)
	writeJSON(w, http.StatusOK, removeParticipantResponse{Name: req.Name, Removed: true})
}

type checkNameResponse struct {
	Name      string `json:"name"`
	Taken     bool   `json:"taken"`
	Protected bool   `json:"protected"`
}

// CheckName reports whether a display name is already in use on an event
// and whether it is password protected. The join form polls this while the
// user types, so results are cached briefly in Redis.
func (h *ScheduleHandler) CheckName(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := strings.TrimSpace(r.URL.Query().Get("code"))
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if code == "" || name == "" {
		http.Error(w, "code and name required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	cacheKey := nameCacheKey(code, name)
	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
			writeJSON(w, http.StatusOK, checkNameResponse{
				Name:      name,
				Taken:     cached != "free",
				Protected: cached == "protected",
			})
			return
		}
	}

	state := "free"
	p, err := h.participants.GetByName(ctx, code, name)
	switch {
	case err == nil:
		if p.PasswordHash != "" {
			state = "protected"
		} else {
			state = "taken"
		}
	case errors.Is(err, storage.ErrNotFound):
	default:
		http.Error(w, "failed to check name", http.StatusInternalServerError)
		return
	}

	if h.rdb != nil {
		if err := h.rdb.Set(ctx, cacheKey, state, nameCacheTTL).Err(); err != nil {
			h.logger.Warn("name cache write failed", "err", err)
		}
	}
	writeJSON(w, http.StatusOK, checkNameResponse{
		Name:      name,
		Taken:     state != "free",
		Protected: state == "protected",
	})
}

func (h *ScheduleHandler) adminClaims(r *http.Request) (*auth.Claims, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil, false
	}
	claims, err := auth.Verify(strings.TrimSpace(token), h.tokenSecret)
	if err != nil || claims.Role != "admin" {
		return nil, false
	}
	return claims, true
}

func (h *ScheduleHandler) invalidateNameCache(ctx context.Context, code, name string) {
	if h.rdb == nil {
		return
	}
	if err := h.rdb.Del(ctx, nameCacheKey(code, name)).Err(); err != nil {
		h.logger.Warn("name cache invalidation failed", "err", err)
	}
}

func nameCacheKey(code, name string) string {
	return "schedule:name:" + code + ":" + name
}
