package domain

import "rally/internal/domain/entities"

// Ballot is one participant's submission for a voting round: a set of
// location IDs to vote for and at most one location ID to veto.
type Ballot struct {
	VoterID string
	Votes   []string
	Veto    string // empty = no veto
}

// Empty reports whether the ballot carries neither votes nor a veto.
func (b Ballot) Empty() bool {
	return len(b.Votes) == 0 && b.Veto == ""
}

// Resolution is the outcome of applying a ballot to the candidate list.
// Exactly one of Winner / AllVetoed is meaningful: when every candidate
// holds at least one veto, AllVetoed is true and Winner is nil;
// otherwise Winner is the non-vetoed candidate with the strictly
// highest vote count, ties broken by first occurrence in input order.
type Resolution struct {
	Locations []entities.Location
	Winner    *entities.Location
	AllVetoed bool
}

// Resolve applies a ballot to the candidate locations and computes the
// round outcome. It never mutates its input; the returned locations are
// deep copies.
//
// Rules:
//   - the ballot's votes are a set: one increment per distinct location,
//     repeated ids count once;
//   - an accepted veto appends the voter to the location's veto list;
//   - a vetoed location's vote count is pinned to zero for the rest of
//     the round, no matter how many votes it receives;
//   - a voter holding a veto on another location must withdraw it
//     before vetoing again (ErrVetoHeld);
//   - an empty candidate list is ErrInvalidState, a vote or veto for an
//     unknown location ID is ErrLocationNotFound.
func Resolve(locations []entities.Location, ballot Ballot) (Resolution, error) {
	if len(locations) == 0 {
		return Resolution{}, ErrInvalidState
	}

	index := make(map[string]int, len(locations))
	out := make([]entities.Location, len(locations))
	for i, loc := range locations {
		out[i] = loc.Clone()
		index[loc.ID] = i
	}

	voted := make(map[string]bool, len(ballot.Votes))
	for _, id := range ballot.Votes {
		if _, ok := index[id]; !ok {
			return Resolution{}, ErrLocationNotFound
		}
		voted[id] = true
	}
	if ballot.Veto != "" {
		if _, ok := index[ballot.Veto]; !ok {
			return Resolution{}, ErrLocationNotFound
		}
		for i := range out {
			if out[i].ID != ballot.Veto && out[i].VetoedByUser(ballot.VoterID) {
				return Resolution{}, ErrVetoHeld
			}
		}
	}

	for id := range voted {
		out[index[id]].Votes++
	}
	if ballot.Veto != "" {
		loc := &out[index[ballot.Veto]]
		if !loc.VetoedByUser(ballot.VoterID) {
			loc.VetoedBy = append(loc.VetoedBy, ballot.VoterID)
		}
	}

	// Vetoes are permanent for the round: once any participant vetoed a
	// location its count stays at zero.
	for i := range out {
		if out[i].Vetoed() {
			out[i].Votes = 0
		}
	}

	res := Resolution{Locations: out}
	winner := -1
	for i := range out {
		if out[i].Vetoed() {
			continue
		}
		if winner < 0 || out[i].Votes > out[winner].Votes {
			winner = i
		}
	}
	if winner < 0 {
		res.AllVetoed = true
		return res, nil
	}
	res.Winner = &out[winner]
	return res, nil
}

// WithdrawVeto removes the voter from every veto list they appear in
// and reports whether anything changed. Zeroed vote counts are not
// restored; withdrawal only reopens the location for future vetoes and
// the all-vetoed check.
func WithdrawVeto(locations []entities.Location, voterID string) ([]entities.Location, bool) {
	out := make([]entities.Location, len(locations))
	changed := false
	for i, loc := range locations {
		out[i] = loc.Clone()
		if !out[i].VetoedByUser(voterID) {
			continue
		}
		kept := out[i].VetoedBy[:0]
		for _, id := range out[i].VetoedBy {
			if id != voterID {
				kept = append(kept, id)
			}
		}
		if len(kept) == 0 {
			kept = nil
		}
		out[i].VetoedBy = kept
		changed = true
	}
	return out, changed
}
