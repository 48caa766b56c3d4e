package input

import (
	"context"
	"time"

	"rally/internal/domain/entities"
)

// CreateEventInput carries everything needed to create an event; the
// initiator is auto-enrolled as an attending, reconfirmed participant.
type CreateEventInput struct {
	Name                   string
	Date                   time.Time
	Description            string
	BudgetRange            string
	RSVPDeadline           time.Time
	ReconfirmationDeadline time.Time
	Locations              []entities.Location
	Initiator              entities.Participant
}

// List tabs, mirroring the home screen filters.
const (
	TabAll        = "all"
	TabInProgress = "in-progress"
	TabHistory    = "history"
	TabMine       = "mine"
)

type EventUseCase interface {
	CreateEvent(ctx context.Context, in CreateEventInput) (*entities.Event, error)
	GetEvent(ctx context.Context, id string) (*entities.Event, error)
	ListEvents(ctx context.Context, tab, userID string) ([]entities.Event, error)
	// SetLocations replaces the candidate list; initiator only, and only
	// before the voting phase starts.
	SetLocations(ctx context.Context, eventID, actorID string, locations []entities.Location) (*entities.Event, error)
	// StartVoting moves awaiting_response -> voting; initiator only,
	// requires at least one candidate.
	StartVoting(ctx context.Context, eventID, actorID string) (*entities.Event, error)
	// ChooseFinalLocation is the initiator's manual override out of the
	// all-vetoed deadlock.
	ChooseFinalLocation(ctx context.Context, eventID, actorID, locationID string) (*entities.Event, error)
}
