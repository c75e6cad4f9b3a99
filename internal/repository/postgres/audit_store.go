package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Aaryan658/proof-of-life/internal/domain"
)

type AuditStore struct {
	db *pgxpool.Pool
}

func NewAuditStore(db *pgxpool.Pool) *AuditStore {
	return &AuditStore{db: db}
}

func (s *AuditStore) Record(ctx context.Context, attempt domain.VerificationAttempt) error {
	details, err := json.Marshal(attempt.StepDetails)
	if err != nil {
		return fmt.Errorf("marshal step details: %w", err)
	}

	var challengeID interface{}
	if attempt.ChallengeID != "" {
		challengeID = attempt.ChallengeID
	}

	const query = `
		INSERT INTO verification_attempts (id, challenge_id, liveness_score, passed, step_details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = s.db.Exec(ctx, query, attempt.ID, challengeID, attempt.LivenessScore, attempt.Passed, details, attempt.CreatedAt)
	if err != nil {
		return fmt.Errorf("record verification attempt: %w", err)
	}
	return nil
}
