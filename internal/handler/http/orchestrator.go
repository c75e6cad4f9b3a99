package http

import (
	"context"

	"github.com/Aaryan658/proof-of-life/internal/domain"
	"github.com/Aaryan658/proof-of-life/internal/orchestrator"
)

// Orchestrator is the slice of orchestrator.Orchestrator the HTTP handlers
// depend on, so tests can supply a stub without a full vision/storage stack.
type Orchestrator interface {
	GenerateChallenge(ctx context.Context) (domain.Challenge, error)
	Verify(ctx context.Context, challengeID string, frames []string) (domain.VerificationResult, error)
	AttackSim(ctx context.Context, frames []string) (orchestrator.AttackSimResult, error)
}
