package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"rally/internal/domain"
	"rally/internal/domain/entities"
	"rally/internal/ports/input"
	"rally/pkg/tz"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, tz.Shanghai)

func newTestEventService(repo *fakeEventRepo) *EventService {
	s := NewEventService(repo)
	s.clock = func() time.Time { return testNow }
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s
}

func initiator() entities.Participant {
	return entities.Participant{ID: "u-init", Name: "小明", Avatar: "/placeholder.svg?height=32&width=32"}
}

func TestCreateEventEnrollsInitiator(t *testing.T) {
	repo := newFakeEventRepo()
	svc := newTestEventService(repo)

	event, err := svc.CreateEvent(context.Background(), input.CreateEventInput{
		Name:      " 周末剧本杀 ",
		Date:      testNow.Add(48 * time.Hour),
		Initiator: initiator(),
		Locations: []entities.Location{{Name: "A馆"}, {Name: "B馆"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if event.Name != "周末剧本杀" {
		t.Fatalf("expected trimmed name, got %q", event.Name)
	}
	if event.Status != domain.StatusAwaitingResponse {
		t.Fatalf("expected awaiting_response, got %q", event.Status)
	}
	if !event.HasParticipant("u-init") || !event.HasConfirmed("u-init") {
		t.Fatal("initiator must be enrolled and reconfirmed")
	}
	if event.RSVPStatuses["u-init"] != domain.RSVPAttending {
		t.Fatalf("expected initiator rsvp attending, got %q", event.RSVPStatuses["u-init"])
	}
	if event.ReconfirmationStatuses["u-init"] != domain.ReconfirmConfirmed {
		t.Fatalf("expected initiator reconfirmed, got %q", event.ReconfirmationStatuses["u-init"])
	}
	for _, loc := range event.RecommendedLocations {
		if loc.ID == "" {
			t.Fatalf("candidate without an assigned id: %+v", loc)
		}
	}
	if repo.stored(event.ID) == nil {
		t.Fatal("event not persisted")
	}
}

func TestCreateEventValidation(t *testing.T) {
	svc := newTestEventService(newFakeEventRepo())

	tests := []struct {
		name string
		in   input.CreateEventInput
		err  error
	}{
		{
			name: "blank name",
			in:   input.CreateEventInput{Name: "  ", Date: testNow.Add(time.Hour), Initiator: initiator()},
			err:  domain.ErrInvalidState,
		},
		{
			name: "missing date",
			in:   input.CreateEventInput{Name: "聚会", Initiator: initiator()},
			err:  domain.ErrInvalidState,
		},
		{
			name: "date in the past",
			in:   input.CreateEventInput{Name: "聚会", Date: testNow.Add(-time.Hour), Initiator: initiator()},
			err:  domain.ErrDateTimeInPast,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateEvent(context.Background(), tt.in); !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestListEventsTabs(t *testing.T) {
	past := &entities.Event{ID: "e-past", InitiatorID: "u-init", Date: testNow.Add(-72 * time.Hour)}
	today := &entities.Event{ID: "e-today", InitiatorID: "u-other", Date: testNow.Add(2 * time.Hour)}
	future := &entities.Event{ID: "e-future", InitiatorID: "u-init", Date: testNow.Add(96 * time.Hour)}
	svc := newTestEventService(newFakeEventRepo(past, today, future))

	tests := []struct {
		tab  string
		want []string
	}{
		{input.TabAll, []string{"e-future", "e-today", "e-past"}},
		{input.TabInProgress, []string{"e-future", "e-today"}},
		{input.TabHistory, []string{"e-past"}},
		{input.TabMine, []string{"e-future", "e-past"}},
	}

	for _, tt := range tests {
		t.Run(tt.tab, func(t *testing.T) {
			events, err := svc.ListEvents(context.Background(), tt.tab, "u-init")
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			got := make([]string, len(events))
			for i, e := range events {
				got[i] = e.ID
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestSetLocationsResetsTallies(t *testing.T) {
	event := &entities.Event{
		ID:          "e1",
		InitiatorID: "u-init",
		Status:      domain.StatusAwaitingResponse,
		Date:        testNow.Add(48 * time.Hour),
	}
	repo := newFakeEventRepo(event)
	svc := newTestEventService(repo)

	updated, err := svc.SetLocations(context.Background(), "e1", "u-init", []entities.Location{
		{Name: "A馆", Votes: 7, VetoedBy: []string{"ghost"}},
	})
	if err != nil {
		t.Fatalf("set locations: %v", err)
	}
	loc := updated.RecommendedLocations[0]
	if loc.Votes != 0 || loc.Vetoed() {
		t.Fatalf("expected a clean tally, got %+v", loc)
	}
	if loc.ID == "" {
		t.Fatal("expected an assigned id")
	}
}

func TestSetLocationsGuards(t *testing.T) {
	event := &entities.Event{ID: "e1", InitiatorID: "u-init", Status: domain.StatusVoting}
	svc := newTestEventService(newFakeEventRepo(event))

	if _, err := svc.SetLocations(context.Background(), "e1", "u-stranger", nil); !errors.Is(err, domain.ErrNotInitiator) {
		t.Fatalf("expected ErrNotInitiator, got %v", err)
	}
	if _, err := svc.SetLocations(context.Background(), "e1", "u-init", nil); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState once voting started, got %v", err)
	}
	if _, err := svc.SetLocations(context.Background(), "missing", "u-init", nil); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestStartVoting(t *testing.T) {
	ready := &entities.Event{
		ID:                   "e1",
		InitiatorID:          "u-init",
		Status:               domain.StatusAwaitingResponse,
		RecommendedLocations: []entities.Location{{ID: "loc1", Name: "A馆"}},
	}
	empty := &entities.Event{ID: "e2", InitiatorID: "u-init", Status: domain.StatusAwaitingResponse}
	repo := newFakeEventRepo(ready, empty)
	svc := newTestEventService(repo)

	event, err := svc.StartVoting(context.Background(), "e1", "u-init")
	if err != nil {
		t.Fatalf("start voting: %v", err)
	}
	if event.Status != domain.StatusVoting {
		t.Fatalf("expected voting, got %q", event.Status)
	}
	if repo.stored("e1").Status != domain.StatusVoting {
		t.Fatal("status change not persisted")
	}

	if _, err := svc.StartVoting(context.Background(), "e2", "u-init"); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState without candidates, got %v", err)
	}
	if _, err := svc.StartVoting(context.Background(), "e1", "u-stranger"); !errors.Is(err, domain.ErrNotInitiator) {
		t.Fatalf("expected ErrNotInitiator, got %v", err)
	}
}

func TestLifecycleActionsRejectedOnceEventEnded(t *testing.T) {
	awaiting := &entities.Event{
		ID:                   "e1",
		InitiatorID:          "u-init",
		Status:               domain.StatusAwaitingResponse,
		Date:                 testNow.Add(-72 * time.Hour),
		RecommendedLocations: []entities.Location{{ID: "loc1", Name: "A馆"}},
	}
	deadlocked := &entities.Event{
		ID:                   "e2",
		InitiatorID:          "u-init",
		Status:               domain.StatusAllVetoed,
		Date:                 testNow.Add(-72 * time.Hour),
		RecommendedLocations: []entities.Location{{ID: "loc1", Name: "A馆", VetoedBy: []string{"u2"}}},
	}
	repo := newFakeEventRepo(awaiting, deadlocked)
	svc := newTestEventService(repo)

	if _, err := svc.StartVoting(context.Background(), "e1", "u-init"); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState starting voting on an ended event, got %v", err)
	}
	if _, err := svc.SetLocations(context.Background(), "e1", "u-init", []entities.Location{{Name: "B馆"}}); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState setting locations on an ended event, got %v", err)
	}
	if _, err := svc.ChooseFinalLocation(context.Background(), "e2", "u-init", "loc1"); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState choosing a location on an ended event, got %v", err)
	}
	if repo.updates != 0 {
		t.Fatal("an ended event must not be written")
	}
}

func TestChooseFinalLocationBreaksDeadlock(t *testing.T) {
	event := &entities.Event{
		ID:          "e1",
		InitiatorID: "u-init",
		Status:      domain.StatusAllVetoed,
		AllVetoed:   true,
		Participants: []entities.Participant{
			{ID: "u-init", Name: "小明"},
			{ID: "u2", Name: "小红"},
		},
		ConfirmedParticipants: []entities.Participant{{ID: "u-init", Name: "小明"}},
		RecommendedLocations: []entities.Location{
			{ID: "loc1", Name: "A馆", VetoedBy: []string{"u2"}},
			{ID: "loc2", Name: "B馆", VetoedBy: []string{"u-init"}},
		},
	}
	repo := newFakeEventRepo(event)
	svc := newTestEventService(repo)

	updated, err := svc.ChooseFinalLocation(context.Background(), "e1", "u-init", "loc2")
	if err != nil {
		t.Fatalf("choose final location: %v", err)
	}
	if updated.Status != domain.StatusResultsReady {
		t.Fatalf("expected results_ready, got %q", updated.Status)
	}
	if updated.FinalLocation == nil || updated.FinalLocation.ID != "loc2" {
		t.Fatalf("expected final location loc2, got %+v", updated.FinalLocation)
	}
	if updated.AllVetoed {
		t.Fatal("all-vetoed flag must clear")
	}
	// Reconfirmation restarts from the full participant list.
	if len(updated.ConfirmedParticipants) != 2 {
		t.Fatalf("expected confirmed list reset to participants, got %v", updated.ConfirmedParticipants)
	}
}

func TestChooseFinalLocationGuards(t *testing.T) {
	deadlocked := &entities.Event{
		ID:                   "e1",
		InitiatorID:          "u-init",
		Status:               domain.StatusAllVetoed,
		RecommendedLocations: []entities.Location{{ID: "loc1"}},
	}
	voting := &entities.Event{
		ID:                   "e2",
		InitiatorID:          "u-init",
		Status:               domain.StatusVoting,
		RecommendedLocations: []entities.Location{{ID: "loc1"}},
	}
	svc := newTestEventService(newFakeEventRepo(deadlocked, voting))

	if _, err := svc.ChooseFinalLocation(context.Background(), "e1", "u-stranger", "loc1"); !errors.Is(err, domain.ErrNotInitiator) {
		t.Fatalf("expected ErrNotInitiator, got %v", err)
	}
	if _, err := svc.ChooseFinalLocation(context.Background(), "e2", "u-init", "loc1"); !errors.Is(err, domain.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState outside the deadlock, got %v", err)
	}
	if _, err := svc.ChooseFinalLocation(context.Background(), "e1", "u-init", "nope"); !errors.Is(err, domain.ErrLocationNotFound) {
		t.Fatalf("expected ErrLocationNotFound, got %v", err)
	}
}
