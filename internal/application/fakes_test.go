package application

import (
	"context"
	"sort"

	"rally/internal/domain"
	"rally/internal/domain/entities"
)

// fakeEventRepo is an in-memory EventRepository with the same
// compare-and-swap semantics as the Postgres implementation. Reads hand
// out deep copies so a caller's mutations only become visible through
// Update.
type fakeEventRepo struct {
	events    map[string]*entities.Event
	createErr error
	updateErr error
	updates   int
}

func newFakeEventRepo(events ...*entities.Event) *fakeEventRepo {
	r := &fakeEventRepo{events: make(map[string]*entities.Event)}
	for _, e := range events {
		if e.Version == 0 {
			e.Version = 1
		}
		r.events[e.ID] = cloneEvent(e)
	}
	return r
}

func (r *fakeEventRepo) Create(_ context.Context, e *entities.Event) error {
	if r.createErr != nil {
		return r.createErr
	}
	e.Version = 1
	r.events[e.ID] = cloneEvent(e)
	return nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, id string) (*entities.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return cloneEvent(e), nil
}

func (r *fakeEventRepo) FindAll(_ context.Context) ([]entities.Event, error) {
	out := make([]entities.Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, *cloneEvent(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *fakeEventRepo) Update(_ context.Context, e *entities.Event) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	stored, ok := r.events[e.ID]
	if !ok {
		return domain.ErrEventNotFound
	}
	if stored.Version != e.Version {
		return domain.ErrVersionConflict
	}
	e.Version++
	r.events[e.ID] = cloneEvent(e)
	r.updates++
	return nil
}

// stored returns the repository's own copy, for asserting what was
// actually persisted.
func (r *fakeEventRepo) stored(id string) *entities.Event {
	return r.events[id]
}

func cloneEvent(e *entities.Event) *entities.Event {
	c := *e
	c.Participants = append([]entities.Participant(nil), e.Participants...)
	c.ConfirmedParticipants = append([]entities.Participant(nil), e.ConfirmedParticipants...)
	c.RecommendedLocations = make([]entities.Location, len(e.RecommendedLocations))
	for i, loc := range e.RecommendedLocations {
		c.RecommendedLocations[i] = loc.Clone()
	}
	if e.FinalLocation != nil {
		final := e.FinalLocation.Clone()
		c.FinalLocation = &final
	}
	if e.RSVPStatuses != nil {
		c.RSVPStatuses = make(map[string]string, len(e.RSVPStatuses))
		for k, v := range e.RSVPStatuses {
			c.RSVPStatuses[k] = v
		}
	}
	if e.ReconfirmationStatuses != nil {
		c.ReconfirmationStatuses = make(map[string]string, len(e.ReconfirmationStatuses))
		for k, v := range e.ReconfirmationStatuses {
			c.ReconfirmationStatuses[k] = v
		}
	}
	return &c
}

// fakeNoise replays a fixed set of ballots regardless of input.
type fakeNoise struct {
	ballots []domain.Ballot
	calls   int
}

func (n *fakeNoise) Ballots(_ []entities.Location, _ string) []domain.Ballot {
	n.calls++
	return n.ballots
}
