package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/plan-cake/schedule-service/internal/outbox"
	"github.com/plan-cake/schedule-service/internal/schedule"
	"github.com/plan-cake/schedule-service/internal/storage"
)

// ScheduleHandler serves the event, availability, and results endpoints.
type ScheduleHandler struct {
	events       *storage.EventRepository
	participants *storage.ParticipantRepository
	outboxRepo   *outbox.Repository
	rdb          *redis.Client
	logger       *slog.Logger
	tokenSecret  string
}

func NewScheduleHandler(events *storage.EventRepository, participants *storage.ParticipantRepository, outboxRepo *outbox.Repository, rdb *redis.Client, logger *slog.Logger, tokenSecret string) *ScheduleHandler {
	return &ScheduleHandler{
		events:       events,
		participants: participants,
		outboxRepo:   outboxRepo,
		rdb:          rdb,
		logger:       logger,
		tokenSecret:  tokenSecret,
	}
}

// rangePayload is the wire form of schedule.Range shared by requests and
// responses. Weekdays travel as a bitmask, bit 0 = Sunday.
type rangePayload struct {
	Kind            string `json:"kind"`
	Timezone        string `json:"timezone"`
	FromHour        int    `json:"from_hour"`
	ToHour          int    `json:"to_hour"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	DateFrom        string `json:"date_from,omitempty"`
	DateTo          string `json:"date_to,omitempty"`
	WeekdayBits     int    `json:"weekday_bits,omitempty"`
}

func (p rangePayload) toRange() (schedule.Range, error) {
	kind, ok := schedule.ParseKind(p.Kind)
	if !ok {
		return schedule.Range{}, errors.New("kind must be \"specific\" or \"weekday\"")
	}
	if _, err := time.LoadLocation(p.Timezone); err != nil {
		return schedule.Range{}, errors.New("unknown timezone")
	}
	if p.FromHour < 0 || p.FromHour > 23 || p.ToHour < 1 || p.ToHour > 24 || p.ToHour <= p.FromHour {
		return schedule.Range{}, errors.New("hours must satisfy 0 <= from_hour < to_hour <= 24")
	}

	r := schedule.Range{
		Kind:            kind,
		Timezone:        p.Timezone,
		Time:            schedule.TimeRange{FromHour: p.FromHour, ToHour: p.ToHour},
		DurationMinutes: p.DurationMinutes,
	}
	switch kind {
	case schedule.KindSpecific:
		from, err := parseDate(p.DateFrom)
		if err != nil {
			return schedule.Range{}, errors.New("invalid date_from")
		}
		to, err := parseDate(p.DateTo)
		if err != nil {
			return schedule.Range{}, errors.New("invalid date_to")
		}
		if from.After(to) {
			return schedule.Range{}, errors.New("date_from must not be after date_to")
		}
		r.Dates = &schedule.DateRange{From: from, To: to}
	case schedule.KindWeekday:
		r.Weekdays = schedule.WeekdaysFromBits(p.WeekdayBits)
		if r.Weekdays.None() {
			return schedule.Range{}, errors.New("weekday_bits selects no days")
		}
	}
	return r, nil
}

func rangeToPayload(r schedule.Range) rangePayload {
	p := rangePayload{
		Kind:            r.Kind.String(),
		Timezone:        r.Timezone,
		FromHour:        r.Time.FromHour,
		ToHour:          r.Time.ToHour,
		DurationMinutes: r.DurationMinutes,
	}
	if r.Dates != nil {
		p.DateFrom = formatDate(r.Dates.From)
		p.DateTo = formatDate(r.Dates.To)
	}
	p.WeekdayBits = r.Weekdays.Bits()
	return p
}

func parseDate(s string) (schedule.Date, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return schedule.Date{}, err
	}
	return schedule.DateOf(t), nil
}

func formatDate(d schedule.Date) string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
