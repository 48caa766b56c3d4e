package application

import (
	"context"
	"fmt"
	"time"

	"rally/internal/domain"
	"rally/internal/domain/entities"
	"rally/internal/ports/output"
)

type ParticipantService struct {
	events output.EventRepository
	clock  func() time.Time
}

func NewParticipantService(events output.EventRepository) *ParticipantService {
	return &ParticipantService{
		events: events,
		clock:  time.Now,
	}
}

func (s *ParticipantService) RSVP(ctx context.Context, eventID string, actor entities.Participant, status string) (*entities.Event, error) {
	if !domain.ValidRSVPStatus(status) {
		return nil, domain.ErrInvalidState
	}
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	// An ended event takes no answers even without an RSVP deadline.
	if domain.EffectiveStatus(event, now) == domain.StatusEnded {
		return nil, domain.ErrInvalidState
	}
	if domain.DeadlinePassed(event.RSVPDeadline, now) {
		return nil, domain.ErrDeadlinePassed
	}
	if event.RSVPStatuses == nil {
		event.RSVPStatuses = make(map[string]string)
	}
	event.RSVPStatuses[actor.ID] = status
	if status == domain.RSVPAttending {
		event.AddParticipant(actor)
	} else {
		event.RemoveParticipant(actor.ID)
	}
	if err := s.events.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("record rsvp: %w", err)
	}
	return event, nil
}

func (s *ParticipantService) Reconfirm(ctx context.Context, eventID string, actor entities.Participant, status string) (*entities.Event, error) {
	if !domain.ValidReconfirmStatus(status) {
		return nil, domain.ErrInvalidState
	}
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	// Reconfirmation only makes sense once a final location is out, and
	// never once the event date has passed.
	if domain.EffectiveStatus(event, now) != domain.StatusResultsReady {
		return nil, domain.ErrInvalidState
	}
	if !event.HasParticipant(actor.ID) {
		return nil, domain.ErrNotParticipant
	}
	if domain.DeadlinePassed(event.ReconfirmationDeadline, now) {
		return nil, domain.ErrDeadlinePassed
	}
	if _, decided := event.ReconfirmationStatuses[actor.ID]; decided {
		return nil, domain.ErrAlreadyDecided
	}
	if event.ReconfirmationStatuses == nil {
		event.ReconfirmationStatuses = make(map[string]string)
	}
	event.ReconfirmationStatuses[actor.ID] = status
	if status == domain.ReconfirmConfirmed {
		event.AddConfirmed(actor)
	} else {
		event.RemoveConfirmed(actor.ID)
	}
	if err := s.events.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("record reconfirmation: %w", err)
	}
	return event, nil
}
