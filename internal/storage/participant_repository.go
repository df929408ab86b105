package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/plan-cake/schedule-service/internal/availability"
	"github.com/plan-cake/schedule-service/internal/model"
	"github.com/plan-cake/schedule-service/libs/db"
)

type ParticipantRepository struct {
	pool *db.Pool
}

func NewParticipantRepository(pool *db.Pool) *ParticipantRepository {
	return &ParticipantRepository{pool: pool}
}

func (r *ParticipantRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// GetByName returns a participant or ErrNotFound. Used both for password
// verification and the name-availability probe.
func (r *ParticipantRepository) GetByName(ctx context.Context, eventCode, displayName string) (model.Participant, error) {
	var (
		p       model.Participant
		rawGrid []byte
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, event_code, display_name, COALESCE(password_hash, ''), time_zone, availability, created_at, updated_at
		FROM participants
		WHERE event_code = $1 AND display_name = $2
	`, eventCode, displayName).Scan(
		&p.ID,
		&p.EventCode,
		&p.DisplayName,
		&p.PasswordHash,
		&p.TimeZone,
		&rawGrid,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Participant{}, ErrNotFound
	}
	if err != nil {
		return model.Participant{}, err
	}
	if err := json.Unmarshal(rawGrid, &p.Availability); err != nil {
		return model.Participant{}, err
	}
	return p, nil
}

// Upsert stores a participant's matrix in a single statement, so a failed
// save cannot leave a half-written selection behind.
func (r *ParticipantRepository) Upsert(ctx context.Context, tx pgx.Tx, p *model.Participant) error {
	rawGrid, err := json.Marshal(p.Availability)
	if err != nil {
		return err
	}
	var hash *string
	if p.PasswordHash != "" {
		hash = &p.PasswordHash
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO participants (id, event_code, display_name, password_hash, time_zone, availability)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_code, display_name) DO UPDATE
		SET availability = EXCLUDED.availability,
			time_zone = EXCLUDED.time_zone,
			updated_at = now()
	`, p.ID, p.EventCode, p.DisplayName, hash, p.TimeZone, rawGrid)
	return err
}

// ListByEvent returns every participant of an event in first-joined order,
// which is the display order the results view uses.
func (r *ParticipantRepository) ListByEvent(ctx context.Context, eventCode string) ([]model.Participant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, event_code, display_name, COALESCE(password_hash, ''), time_zone, availability, created_at, updated_at
		FROM participants
		WHERE event_code = $1
		ORDER BY created_at ASC, display_name ASC
	`, eventCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []model.Participant
	for rows.Next() {
		var (
			p       model.Participant
			rawGrid []byte
		)
		if err := rows.Scan(&p.ID, &p.EventCode, &p.DisplayName, &p.PasswordHash, &p.TimeZone, &rawGrid, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		var grid availability.Matrix
		if err := json.Unmarshal(rawGrid, &grid); err != nil {
			return nil, err
		}
		p.Availability = grid
		participants = append(participants, p)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return participants, nil
}

// Delete removes a participant inside tx and reports whether a row existed.
func (r *ParticipantRepository) Delete(ctx context.Context, tx pgx.Tx, eventCode, displayName string) (bool, error) {
	tag, err := tx.Exec(ctx, `
		DELETE FROM participants
		WHERE event_code = $1 AND display_name = $2
	`, eventCode, displayName)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
