package simulation

import (
	"fmt"
	"math/rand"

	"rally/internal/domain"
	"rally/internal/domain/entities"
	"rally/internal/ports/output"
)

var _ output.BallotNoise = (*SimulatedVoters)(nil)

// SimulatedVoters replays the demo behaviour the browser client mixed
// into resolution: a small chance that some other participant vetoes a
// location, otherwise a few extra votes. Factored out here so the
// resolution engine stays deterministic; the randomness is fully
// determined by the seed.
type SimulatedVoters struct {
	rng *rand.Rand
}

func NewSimulatedVoters(seed int64) *SimulatedVoters {
	return &SimulatedVoters{rng: rand.New(rand.NewSource(seed))}
}

// Ballots emits one ballot per simulated voter: a single vote, or a
// veto for at most one voter per location, honouring the set and
// one-veto rules the engine enforces.
func (s *SimulatedVoters) Ballots(locations []entities.Location, excludeVoterID string) []domain.Ballot {
	var ballots []domain.Ballot
	voter := 0
	next := func() string {
		voter++
		return fmt.Sprintf("sim-voter-%d", voter)
	}
	for _, loc := range locations {
		if loc.Vetoed() {
			continue
		}
		if s.rng.Float64() < 0.1 {
			if id := next(); id != excludeVoterID {
				ballots = append(ballots, domain.Ballot{VoterID: id, Veto: loc.ID})
			}
			continue
		}
		if s.rng.Float64() < 0.5 {
			for i, n := 0, s.rng.Intn(3); i < n; i++ {
				if id := next(); id != excludeVoterID {
					ballots = append(ballots, domain.Ballot{VoterID: id, Votes: []string{loc.ID}})
				}
			}
		}
	}
	return ballots
}
