package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"rally/internal/domain"
	"rally/internal/domain/entities"
	"rally/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumnsSQL = `id, name, date, status, description, budget_range,
	initiator_id, initiator_name, participants, recommended_locations,
	final_location, confirmed_participants, all_vetoed, rsvp_deadline,
	reconfirmation_deadline, rsvp_statuses, reconfirmation_statuses,
	version, created_at, updated_at`

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	cols, err := encodeEvent(event)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO activities (
			id, name, date, status, description, budget_range,
			initiator_id, initiator_name, participants, recommended_locations,
			final_location, confirmed_participants, all_vetoed, rsvp_deadline,
			reconfirmation_deadline, rsvp_statuses, reconfirmation_statuses
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		RETURNING version, created_at, updated_at`,
		event.ID, event.Name, timeToPgtype(event.Date), event.Status,
		event.Description, event.BudgetRange, event.InitiatorID, event.InitiatorName,
		cols.Participants, cols.RecommendedLocations, cols.FinalLocation,
		cols.ConfirmedParticipants, event.AllVetoed,
		timeToPgtype(event.RSVPDeadline), timeToPgtype(event.ReconfirmationDeadline),
		cols.RSVPStatuses, cols.ReconfirmationStatuses,
	)
	var createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(&event.Version, &createdAt, &updatedAt); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	event.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	event.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumnsSQL+` FROM activities WHERE id = $1`, id)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event by id: %w", err)
	}
	return event, nil
}

func (r *EventRepository) FindAll(ctx context.Context) ([]entities.Event, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+eventColumnsSQL+` FROM activities ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []entities.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		out = append(out, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return out, nil
}

// Update writes the full record in one statement, conditional on the
// version the caller read. Zero rows affected means a concurrent writer
// got there first (or the row is gone); either way the caller must
// re-read and retry.
func (r *EventRepository) Update(ctx context.Context, event *entities.Event) error {
	cols, err := encodeEvent(event)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE activities SET
			name = $2, date = $3, status = $4, description = $5, budget_range = $6,
			participants = $7, recommended_locations = $8, final_location = $9,
			confirmed_participants = $10, all_vetoed = $11, rsvp_deadline = $12,
			reconfirmation_deadline = $13, rsvp_statuses = $14,
			reconfirmation_statuses = $15, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $16`,
		event.ID, event.Name, timeToPgtype(event.Date), event.Status,
		event.Description, event.BudgetRange,
		cols.Participants, cols.RecommendedLocations, cols.FinalLocation,
		cols.ConfirmedParticipants, event.AllVetoed,
		timeToPgtype(event.RSVPDeadline), timeToPgtype(event.ReconfirmationDeadline),
		cols.RSVPStatuses, cols.ReconfirmationStatuses,
		event.Version,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVersionConflict
	}
	event.Version++
	return nil
}

func scanEvent(row pgx.Row) (*entities.Event, error) {
	var r eventRow
	if err := row.Scan(
		&r.ID, &r.Name, &r.Date, &r.Status, &r.Description, &r.BudgetRange,
		&r.InitiatorID, &r.InitiatorName, &r.Participants, &r.RecommendedLocations,
		&r.FinalLocation, &r.ConfirmedParticipants, &r.AllVetoed, &r.RSVPDeadline,
		&r.ReconfirmationDeadline, &r.RSVPStatuses, &r.ReconfirmationStatuses,
		&r.Version, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return r.toDomain()
}
