package entities

// Participant is a user's appearance inside an event record. Two
// participants are the same person iff their IDs match; the avatar is
// display-only.
type Participant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}
