package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"rally/internal/domain/entities"
)

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

// timeToPgtype maps zero time to NULL.
func timeToPgtype(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

// decodeJSON unmarshals a JSONB column into v, tolerating both the
// pre-parsed form and a double-encoded JSON string (older rows written
// by the browser client carry both). NULL leaves v untouched.
func decodeJSON(raw []byte, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return nil
		}
		raw = []byte(s)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode json column: %w", err)
	}
	return nil
}

func encodeJSON(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json column: %w", err)
	}
	return b, nil
}

// eventRow mirrors the activities table; collection columns stay raw
// until decoded.
type eventRow struct {
	ID                     string
	Name                   string
	Date                   pgtype.Timestamptz
	Status                 string
	Description            string
	BudgetRange            string
	InitiatorID            string
	InitiatorName          string
	Participants           []byte
	RecommendedLocations   []byte
	FinalLocation          []byte
	ConfirmedParticipants  []byte
	AllVetoed              bool
	RSVPDeadline           pgtype.Timestamptz
	ReconfirmationDeadline pgtype.Timestamptz
	RSVPStatuses           []byte
	ReconfirmationStatuses []byte
	Version                int64
	CreatedAt              pgtype.Timestamptz
	UpdatedAt              pgtype.Timestamptz
}

func (r *eventRow) toDomain() (*entities.Event, error) {
	e := &entities.Event{
		ID:                     r.ID,
		Name:                   r.Name,
		Date:                   pgtypeTimestamptzToTime(r.Date),
		Status:                 r.Status,
		Description:            r.Description,
		BudgetRange:            r.BudgetRange,
		InitiatorID:            r.InitiatorID,
		InitiatorName:          r.InitiatorName,
		AllVetoed:              r.AllVetoed,
		RSVPDeadline:           pgtypeTimestamptzToTime(r.RSVPDeadline),
		ReconfirmationDeadline: pgtypeTimestamptzToTime(r.ReconfirmationDeadline),
		Version:                r.Version,
		CreatedAt:              pgtypeTimestamptzToTime(r.CreatedAt),
		UpdatedAt:              pgtypeTimestamptzToTime(r.UpdatedAt),
	}
	if err := decodeJSON(r.Participants, &e.Participants); err != nil {
		return nil, fmt.Errorf("participants: %w", err)
	}
	if err := decodeJSON(r.RecommendedLocations, &e.RecommendedLocations); err != nil {
		return nil, fmt.Errorf("recommended_locations: %w", err)
	}
	if err := decodeJSON(r.FinalLocation, &e.FinalLocation); err != nil {
		return nil, fmt.Errorf("final_location: %w", err)
	}
	if err := decodeJSON(r.ConfirmedParticipants, &e.ConfirmedParticipants); err != nil {
		return nil, fmt.Errorf("confirmed_participants: %w", err)
	}
	if err := decodeJSON(r.RSVPStatuses, &e.RSVPStatuses); err != nil {
		return nil, fmt.Errorf("rsvp_statuses: %w", err)
	}
	if err := decodeJSON(r.ReconfirmationStatuses, &e.ReconfirmationStatuses); err != nil {
		return nil, fmt.Errorf("reconfirmation_statuses: %w", err)
	}
	return e, nil
}

// eventColumns encodes the event's collection fields for a write.
type eventColumns struct {
	Participants           []byte
	RecommendedLocations   []byte
	FinalLocation          []byte
	ConfirmedParticipants  []byte
	RSVPStatuses           []byte
	ReconfirmationStatuses []byte
}

func encodeEvent(e *entities.Event) (eventColumns, error) {
	var c eventColumns
	var err error
	if c.Participants, err = encodeJSON(e.Participants); err != nil {
		return c, err
	}
	if c.RecommendedLocations, err = encodeJSON(e.RecommendedLocations); err != nil {
		return c, err
	}
	if e.FinalLocation != nil {
		if c.FinalLocation, err = encodeJSON(e.FinalLocation); err != nil {
			return c, err
		}
	}
	if c.ConfirmedParticipants, err = encodeJSON(e.ConfirmedParticipants); err != nil {
		return c, err
	}
	if c.RSVPStatuses, err = encodeJSON(e.RSVPStatuses); err != nil {
		return c, err
	}
	if c.ReconfirmationStatuses, err = encodeJSON(e.ReconfirmationStatuses); err != nil {
		return c, err
	}
	return c, nil
}
