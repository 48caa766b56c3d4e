package entities

import "time"

// Event is the central record: one gathering with its participants,
// candidate locations and everything derived from the voting round.
//
// RSVPStatuses and ReconfirmationStatuses are keyed by user ID, one
// entry per (event, user) pair. Version increases by one on every
// persisted write and is checked with a compare-and-swap at the storage
// boundary.
type Event struct {
	ID                     string
	Name                   string
	Date                   time.Time // zero = not set
	Status                 string
	Description            string
	BudgetRange            string
	InitiatorID            string
	InitiatorName          string
	Participants           []Participant
	RecommendedLocations   []Location
	FinalLocation          *Location
	ConfirmedParticipants  []Participant
	AllVetoed              bool
	RSVPDeadline           time.Time // zero = no deadline
	ReconfirmationDeadline time.Time // zero = no deadline
	RSVPStatuses           map[string]string
	ReconfirmationStatuses map[string]string
	Version                int64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// HasParticipant reports whether the user is currently in the
// participant list.
func (e *Event) HasParticipant(userID string) bool {
	for _, p := range e.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// AddParticipant appends p unless a participant with the same ID is
// already present.
func (e *Event) AddParticipant(p Participant) {
	if e.HasParticipant(p.ID) {
		return
	}
	e.Participants = append(e.Participants, p)
}

// RemoveParticipant removes the user from the participant list if
// present.
func (e *Event) RemoveParticipant(userID string) {
	out := e.Participants[:0]
	for _, p := range e.Participants {
		if p.ID != userID {
			out = append(out, p)
		}
	}
	e.Participants = out
}

// HasConfirmed reports whether the user is in the reconfirmed list.
func (e *Event) HasConfirmed(userID string) bool {
	for _, p := range e.ConfirmedParticipants {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// AddConfirmed appends p to the reconfirmed list unless already present.
func (e *Event) AddConfirmed(p Participant) {
	if e.HasConfirmed(p.ID) {
		return
	}
	e.ConfirmedParticipants = append(e.ConfirmedParticipants, p)
}

// RemoveConfirmed removes the user from the reconfirmed list if present.
func (e *Event) RemoveConfirmed(userID string) {
	out := e.ConfirmedParticipants[:0]
	for _, p := range e.ConfirmedParticipants {
		if p.ID != userID {
			out = append(out, p)
		}
	}
	e.ConfirmedParticipants = out
}

// LocationByID returns the candidate with the given ID, or nil.
func (e *Event) LocationByID(id string) *Location {
	for i := range e.RecommendedLocations {
		if e.RecommendedLocations[i].ID == id {
			return &e.RecommendedLocations[i]
		}
	}
	return nil
}
