package model

import (
	"time"

	"github.com/plan-cake/schedule-service/internal/availability"
	"github.com/plan-cake/schedule-service/internal/schedule"
)

// Event is a persisted scheduling event. Range carries everything the
// engine needs; the rest is bookkeeping.
type Event struct {
	Code      string
	Title     string
	Range     schedule.Range
	CreatedAt time.Time
}

// Participant is one person's saved response to an event. Availability is
// the dense day-by-quarter-hour matrix, stored exactly as submitted; the
// engine decodes it against the event's range on read.
type Participant struct {
	ID           string
	EventCode    string
	DisplayName  string
	PasswordHash string // empty when the name is unprotected
	TimeZone     string
	Availability availability.Matrix
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
