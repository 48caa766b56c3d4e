package domain

import (
	"time"

	"rally/internal/domain/entities"
	"rally/pkg/tz"
)

// Stored event statuses. StatusEnded is never written; it is derived at
// read time from the event date.
const (
	StatusAwaitingResponse = "awaiting_response"
	StatusVoting           = "voting"
	StatusResultsReady     = "results_ready"
	StatusAllVetoed        = "all_vetoed"
	StatusEnded            = "ended"
)

// RSVP statuses, one per (event, user).
const (
	RSVPAttending = "attending"
	RSVPTentative = "tentative"
	RSVPDeclined  = "declined"
)

// Reconfirmation statuses, one per (event, user), recorded at most once.
const (
	ReconfirmConfirmed = "confirmed"
	ReconfirmDeclined  = "declined"
)

// ValidRSVPStatus reports whether s is one of the three RSVP answers.
func ValidRSVPStatus(s string) bool {
	return s == RSVPAttending || s == RSVPTentative || s == RSVPDeclined
}

// ValidReconfirmStatus reports whether s is a reconfirmation answer.
func ValidReconfirmStatus(s string) bool {
	return s == ReconfirmConfirmed || s == ReconfirmDeclined
}

// DateBeforeToday reports whether t, truncated to day granularity in
// Asia/Shanghai, is strictly before the day of now. The same predicate
// drives both the derived Ended status and list filtering.
func DateBeforeToday(t, now time.Time) bool {
	if t.IsZero() {
		return false
	}
	td := t.In(tz.Shanghai)
	nd := now.In(tz.Shanghai)
	ty, tm, tdd := td.Date()
	ny, nm, ndd := nd.Date()
	a := time.Date(ty, tm, tdd, 0, 0, 0, 0, tz.Shanghai)
	b := time.Date(ny, nm, ndd, 0, 0, 0, 0, tz.Shanghai)
	return a.Before(b)
}

// EffectiveStatus is the status to show and evaluate rules against: a
// past event reads as ended regardless of the stored status, which is
// left untouched in storage.
func EffectiveStatus(e *entities.Event, now time.Time) string {
	if DateBeforeToday(e.Date, now) {
		return StatusEnded
	}
	return e.Status
}

// DeadlinePassed reports whether a deadline is set and now is past it.
// Deadlines are minute-precision wall-clock instants, not day-truncated.
func DeadlinePassed(deadline, now time.Time) bool {
	return !deadline.IsZero() && now.After(deadline)
}
