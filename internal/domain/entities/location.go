package entities

// Location is a candidate venue inside an event's voting round.
// Field names follow the stored JSON shape of the original records.
type Location struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Votes    int      `json:"votes"`
	VetoedBy []string `json:"vetoedBy,omitempty"`
}

// Vetoed reports whether at least one participant vetoed the location.
func (l Location) Vetoed() bool {
	return len(l.VetoedBy) > 0
}

// VetoedByUser reports whether the given user currently holds a veto on
// the location.
func (l Location) VetoedByUser(userID string) bool {
	for _, id := range l.VetoedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, so tallies can be recomputed without
// mutating the stored slice.
func (l Location) Clone() Location {
	out := l
	if l.VetoedBy != nil {
		out.VetoedBy = append([]string(nil), l.VetoedBy...)
	}
	return out
}
