package output

import (
	"rally/internal/domain"
	"rally/internal/domain/entities"
)

// BallotNoise produces extra ballots simulating other participants'
// activity in a voting round. The original client injected this noise
// inline with Math.random(); here it is a separately seeded collaborator
// so resolution itself stays deterministic. Production wiring leaves it
// nil.
type BallotNoise interface {
	// Ballots returns well-formed ballots (one veto per simulated voter
	// at most) against the given candidates. excludeVoterID is the real
	// actor, never impersonated.
	Ballots(locations []entities.Location, excludeVoterID string) []domain.Ballot
}
