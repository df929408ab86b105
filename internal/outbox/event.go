package outbox

import (
	"encoding/json"
	"time"
)

// Topic name equals EventType, one topic per event shape.
const (
	EventAvailabilitySubmitted = "schedule.availability.submitted.v1"
	EventParticipantRemoved    = "schedule.participant.removed.v1"
)

// Event is the domain event envelope written to the outbox table.
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

type AvailabilitySubmittedPayload struct {
	EventCode   string    `json:"event_code"`
	Participant string    `json:"participant"`
	SlotCount   int       `json:"slot_count"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type ParticipantRemovedPayload struct {
	EventCode   string    `json:"event_code"`
	Participant string    `json:"participant"`
	RemovedAt   time.Time `json:"removed_at"`
}

func AvailabilitySubmitted(p AvailabilitySubmittedPayload) (Event, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return Event{}, err
	}
	return Event{
		AggregateType: "event",
		AggregateID:   p.EventCode,
		EventType:     EventAvailabilitySubmitted,
		Payload:       payload,
	}, nil
}

func ParticipantRemoved(p ParticipantRemovedPayload) (Event, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return Event{}, err
	}
	return Event{
		AggregateType: "event",
		AggregateID:   p.EventCode,
		EventType:     EventParticipantRemoved,
		Payload:       payload,
	}, nil
}
