package input

import (
	"context"

	"rally/internal/domain/entities"
)

type VotingUseCase interface {
	// SubmitBallot applies the actor's votes and optional veto, resolves
	// the round and persists the derived state in one write.
	SubmitBallot(ctx context.Context, eventID string, actor entities.Participant, votes []string, veto string) (*entities.Event, error)
	// WithdrawVeto explicitly releases the actor's held veto; withdrawal
	// is never inferred from an empty ballot.
	WithdrawVeto(ctx context.Context, eventID, actorID string) (*entities.Event, error)
}
