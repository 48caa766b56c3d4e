package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"rally/internal/domain"
	"rally/internal/domain/entities"
	"rally/internal/ports/output"
)

type VotingService struct {
	events output.EventRepository
	noise  output.BallotNoise // nil in production wiring
	logger *zap.Logger
	clock  func() time.Time
}

func NewVotingService(events output.EventRepository, noise output.BallotNoise, logger *zap.Logger) *VotingService {
	return &VotingService{
		events: events,
		noise:  noise,
		logger: logger,
		clock:  time.Now,
	}
}

// SubmitBallot tallies the actor's ballot (and, when a noise source is
// wired, simulated ballots after it), then persists the derived status,
// locations and final location as one versioned write.
func (s *VotingService) SubmitBallot(ctx context.Context, eventID string, actor entities.Participant, votes []string, veto string) (*entities.Event, error) {
	ballot := domain.Ballot{VoterID: actor.ID, Votes: votes, Veto: veto}
	if ballot.Empty() {
		// An empty submission is not a veto withdrawal; that is its own
		// explicit action.
		return nil, domain.ErrInvalidState
	}
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	// The effective status drives the guard: a past event reads as ended
	// and accepts no more ballots, whatever is stored.
	if domain.EffectiveStatus(event, s.clock()) != domain.StatusVoting {
		return nil, domain.ErrInvalidState
	}
	if !event.HasParticipant(actor.ID) {
		return nil, domain.ErrNotParticipant
	}

	res, err := domain.Resolve(event.RecommendedLocations, ballot)
	if err != nil {
		return nil, err
	}
	if s.noise != nil {
		for _, extra := range s.noise.Ballots(res.Locations, actor.ID) {
			next, err := domain.Resolve(res.Locations, extra)
			if err != nil {
				s.logger.Warn("simulated ballot rejected",
					zap.String("event_id", eventID),
					zap.String("voter_id", extra.VoterID),
					zap.Error(err))
				continue
			}
			res = next
		}
	}

	event.RecommendedLocations = res.Locations
	if res.AllVetoed {
		event.Status = domain.StatusAllVetoed
		event.AllVetoed = true
	} else {
		final := res.Winner.Clone()
		event.Status = domain.StatusResultsReady
		event.FinalLocation = &final
		event.AllVetoed = false
		// Reconfirmation starts over from the current participant list.
		event.ConfirmedParticipants = append([]entities.Participant(nil), event.Participants...)
	}
	if err := s.events.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("persist ballot: %w", err)
	}
	return event, nil
}

func (s *VotingService) WithdrawVeto(ctx context.Context, eventID, actorID string) (*entities.Event, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if domain.EffectiveStatus(event, s.clock()) != domain.StatusVoting {
		return nil, domain.ErrInvalidState
	}
	locations, changed := domain.WithdrawVeto(event.RecommendedLocations, actorID)
	if !changed {
		return nil, domain.ErrInvalidState
	}
	event.RecommendedLocations = locations
	if err := s.events.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("withdraw veto: %w", err)
	}
	return event, nil
}
