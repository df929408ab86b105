package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/plan-cake/schedule-service/internal/model"
	"github.com/plan-cake/schedule-service/internal/schedule"
	"github.com/plan-cake/schedule-service/libs/db"
)

var ErrNotFound = errors.New("not found")

type EventRepository struct {
	pool *db.Pool
}

func NewEventRepository(pool *db.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Create(ctx context.Context, evt *model.Event) error {
	var dateFrom, dateTo *time.Time
	if evt.Range.Dates != nil {
		f := dateToTime(evt.Range.Dates.From)
		t := dateToTime(evt.Range.Dates.To)
		dateFrom, dateTo = &f, &t
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO events
			(code, title, kind, time_zone, from_hour, to_hour, duration_minutes, date_from, date_to, weekday_bits)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, evt.Code, evt.Title, evt.Range.Kind.String(), evt.Range.Timezone,
		evt.Range.Time.FromHour, evt.Range.Time.ToHour, evt.Range.DurationMinutes,
		dateFrom, dateTo, evt.Range.Weekdays.Bits())
	return err
}

func (r *EventRepository) GetByCode(ctx context.Context, code string) (model.Event, error) {
	var (
		evt         model.Event
		kind        string
		dateFrom    *time.Time
		dateTo      *time.Time
		weekdayBits int
	)
	err := r.pool.QueryRow(ctx, `
		SELECT code, title, kind, time_zone, from_hour, to_hour, duration_minutes, date_from, date_to, weekday_bits, created_at
		FROM events
		WHERE code = $1
	`, code).Scan(
		&evt.Code,
		&evt.Title,
		&kind,
		&evt.Range.Timezone,
		&evt.Range.Time.FromHour,
		&evt.Range.Time.ToHour,
		&evt.Range.DurationMinutes,
		&dateFrom,
		&dateTo,
		&weekdayBits,
		&evt.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Event{}, ErrNotFound
	}
	if err != nil {
		return model.Event{}, err
	}

	k, ok := schedule.ParseKind(kind)
	if !ok {
		return model.Event{}, errors.New("event has unknown kind " + kind)
	}
	evt.Range.Kind = k
	if dateFrom != nil && dateTo != nil {
		evt.Range.Dates = &schedule.DateRange{
			From: schedule.DateOf(*dateFrom),
			To:   schedule.DateOf(*dateTo),
		}
	}
	evt.Range.Weekdays = schedule.WeekdaysFromBits(weekdayBits)
	return evt, nil
}

// IsConflict reports whether err is a unique-constraint violation.
func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func dateToTime(d schedule.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
