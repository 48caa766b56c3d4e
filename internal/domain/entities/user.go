package entities

import "time"

// User is an account in the identity store. The password hash never
// leaves the auth service.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Avatar       string
	CreatedAt    time.Time
}

// AsParticipant projects the account into the shape stored on event
// records.
func (u *User) AsParticipant() Participant {
	return Participant{ID: u.ID, Name: u.Username, Avatar: u.Avatar}
}
