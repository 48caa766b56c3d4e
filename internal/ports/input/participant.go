package input

import (
	"context"

	"rally/internal/domain/entities"
)

type ParticipantUseCase interface {
	// RSVP records the actor's attend/tentative/decline answer. Attending
	// adds the actor to the participant list, anything else removes them.
	// Rejected after the RSVP deadline.
	RSVP(ctx context.Context, eventID string, actor entities.Participant, status string) (*entities.Event, error)
	// Reconfirm records the one-time final attendance answer once the
	// result is out. Rejected after the reconfirmation deadline and on a
	// second attempt.
	Reconfirm(ctx context.Context, eventID string, actor entities.Participant, status string) (*entities.Event, error)
}
