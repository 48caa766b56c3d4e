package domain

import "errors"

// Domain errors.
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrLocationNotFound   = errors.New("location not found")
	ErrDateTimeInPast     = errors.New("the date and time must be in the future")
	ErrNotInitiator       = errors.New("only the initiator can perform this action")
	ErrNotParticipant     = errors.New("only a participant can perform this action")
	ErrDeadlinePassed     = errors.New("the deadline for this action has passed")
	ErrAlreadyDecided     = errors.New("a reconfirmation was already recorded and cannot be changed")
	ErrInvalidState       = errors.New("the event is not in a state that allows this action")
	ErrVetoHeld           = errors.New("a veto is already held; withdraw it before vetoing another location")
	ErrVersionConflict    = errors.New("the event was modified concurrently")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotLoggedIn        = errors.New("no valid session")
)

// Code maps a domain error to a stable code used by adapters to pick
// HTTP statuses and localized messages. Unknown errors map to "".
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEventNotFound):
		return "event_not_found"
	case errors.Is(err, ErrLocationNotFound):
		return "location_not_found"
	case errors.Is(err, ErrDateTimeInPast):
		return "datetime_in_past"
	case errors.Is(err, ErrNotInitiator):
		return "not_initiator"
	case errors.Is(err, ErrNotParticipant):
		return "not_participant"
	case errors.Is(err, ErrDeadlinePassed):
		return "deadline_passed"
	case errors.Is(err, ErrAlreadyDecided):
		return "already_decided"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrVetoHeld):
		return "veto_held"
	case errors.Is(err, ErrVersionConflict):
		return "version_conflict"
	case errors.Is(err, ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, ErrUserExists):
		return "user_exists"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrNotLoggedIn):
		return "not_logged_in"
	default:
		return ""
	}
}
