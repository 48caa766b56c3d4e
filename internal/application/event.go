package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"rally/internal/domain"
	"rally/internal/domain/entities"
	"rally/internal/ports/input"
	"rally/internal/ports/output"
)

type EventService struct {
	events output.EventRepository
	clock  func() time.Time
	newID  func() string
}

func NewEventService(events output.EventRepository) *EventService {
	return &EventService{
		events: events,
		clock:  time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

func (s *EventService) CreateEvent(ctx context.Context, in input.CreateEventInput) (*entities.Event, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Date.IsZero() {
		return nil, domain.ErrInvalidState
	}
	if in.Date.Before(s.clock()) {
		return nil, domain.ErrDateTimeInPast
	}
	event := &entities.Event{
		ID:                     s.newID(),
		Name:                   name,
		Date:                   in.Date,
		Status:                 domain.StatusAwaitingResponse,
		Description:            strings.TrimSpace(in.Description),
		BudgetRange:            strings.TrimSpace(in.BudgetRange),
		InitiatorID:            in.Initiator.ID,
		InitiatorName:          in.Initiator.Name,
		Participants:           []entities.Participant{in.Initiator},
		RecommendedLocations:   s.withIDs(in.Locations),
		ConfirmedParticipants:  []entities.Participant{in.Initiator},
		RSVPDeadline:           in.RSVPDeadline,
		ReconfirmationDeadline: in.ReconfirmationDeadline,
		RSVPStatuses:           map[string]string{in.Initiator.ID: domain.RSVPAttending},
		ReconfirmationStatuses: map[string]string{in.Initiator.ID: domain.ReconfirmConfirmed},
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (*entities.Event, error) {
	return s.events.FindByID(ctx, id)
}

func (s *EventService) ListEvents(ctx context.Context, tab, userID string) ([]entities.Event, error) {
	all, err := s.events.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	now := s.clock()
	out := make([]entities.Event, 0, len(all))
	for _, e := range all {
		switch tab {
		case input.TabInProgress:
			if domain.DateBeforeToday(e.Date, now) {
				continue
			}
		case input.TabHistory:
			if !domain.DateBeforeToday(e.Date, now) {
				continue
			}
		case input.TabMine:
			if e.InitiatorID != userID {
				continue
			}
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *EventService) SetLocations(ctx context.Context, eventID, actorID string, locations []entities.Location) (*entities.Event, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.InitiatorID != actorID {
		return nil, domain.ErrNotInitiator
	}
	if domain.EffectiveStatus(event, s.clock()) != domain.StatusAwaitingResponse {
		return nil, domain.ErrInvalidState
	}
	fresh := s.withIDs(locations)
	for i := range fresh {
		fresh[i].Votes = 0
		fresh[i].VetoedBy = nil
	}
	event.RecommendedLocations = fresh
	if err := s.events.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update locations: %w", err)
	}
	return event, nil
}

func (s *EventService) StartVoting(ctx context.Context, eventID, actorID string) (*entities.Event, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.InitiatorID != actorID {
		return nil, domain.ErrNotInitiator
	}
	if domain.EffectiveStatus(event, s.clock()) != domain.StatusAwaitingResponse || len(event.RecommendedLocations) == 0 {
		return nil, domain.ErrInvalidState
	}
	event.Status = domain.StatusVoting
	if err := s.events.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("start voting: %w", err)
	}
	return event, nil
}

// ChooseFinalLocation is the initiator's way out of the all-vetoed
// deadlock: any original candidate, vetoed or not, becomes the final
// location and the event moves straight to results_ready.
func (s *EventService) ChooseFinalLocation(ctx context.Context, eventID, actorID, locationID string) (*entities.Event, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.InitiatorID != actorID {
		return nil, domain.ErrNotInitiator
	}
	if domain.EffectiveStatus(event, s.clock()) != domain.StatusAllVetoed {
		return nil, domain.ErrInvalidState
	}
	chosen := event.LocationByID(locationID)
	if chosen == nil {
		return nil, domain.ErrLocationNotFound
	}
	final := chosen.Clone()
	event.Status = domain.StatusResultsReady
	event.FinalLocation = &final
	event.AllVetoed = false
	// Reconfirmation starts over from the current participant list.
	event.ConfirmedParticipants = append([]entities.Participant(nil), event.Participants...)
	if err := s.events.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("choose final location: %w", err)
	}
	return event, nil
}

func (s *EventService) withIDs(locations []entities.Location) []entities.Location {
	out := make([]entities.Location, len(locations))
	for i, loc := range locations {
		out[i] = loc.Clone()
		if strings.TrimSpace(out[i].ID) == "" {
			out[i].ID = s.newID()
		}
	}
	return out
}
