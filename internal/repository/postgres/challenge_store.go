package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Aaryan658/proof-of-life/internal/apperrors"
	"github.com/Aaryan658/proof-of-life/internal/domain"
)

type ChallengeStore struct {
	db *pgxpool.Pool
}

func NewChallengeStore(db *pgxpool.Pool) *ChallengeStore {
	return &ChallengeStore{db: db}
}

func (s *ChallengeStore) Create(ctx context.Context, c domain.Challenge) error {
	steps := make([]string, len(c.Steps))
	for i, t := range c.Steps {
		steps[i] = string(t)
	}

	const query = `
		INSERT INTO challenges (id, steps, created_at, expires_at, used)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := s.db.Exec(ctx, query, c.ID, steps, c.CreatedAt, c.ExpiresAt, c.Used)
	if err != nil {
		return fmt.Errorf("create challenge: %w", err)
	}
	return nil
}

// Consume is the single conditional UPDATE spec.md §5 requires: exactly
// one of two concurrent calls against the same id observes a row
// affected; the other observes zero rows and must distinguish "doesn't
// exist", "already used", and "expired" with follow-up reads.
func (s *ChallengeStore) Consume(ctx context.Context, id string, now time.Time) (domain.Challenge, error) {
	const updateQuery = `
		UPDATE challenges
		SET used = true
		WHERE id = $1 AND used = false AND expires_at > $2
		RETURNING id, steps, created_at, expires_at, used`

	row := s.db.QueryRow(ctx, updateQuery, id, now)
	c, err := scanChallenge(row)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Challenge{}, fmt.Errorf("consume challenge: %w", err)
	}

	// No row was updated: find out why, without racing the update itself.
	const lookupQuery = `SELECT id, steps, created_at, expires_at, used FROM challenges WHERE id = $1`
	lookupRow := s.db.QueryRow(ctx, lookupQuery, id)
	existing, lookupErr := scanChallenge(lookupRow)
	if errors.Is(lookupErr, pgx.ErrNoRows) {
		return domain.Challenge{}, apperrors.ErrChallengeNotFound
	}
	if lookupErr != nil {
		return domain.Challenge{}, fmt.Errorf("lookup challenge after failed consume: %w", lookupErr)
	}
	if existing.Used {
		return domain.Challenge{}, apperrors.ErrChallengeAlreadyUsed
	}
	return domain.Challenge{}, apperrors.ErrChallengeExpired
}

func (s *ChallengeStore) Sweep(ctx context.Context, now time.Time, grace time.Duration) (int64, error) {
	cutoff := now.Add(-grace)
	const query = `DELETE FROM challenges WHERE expires_at < $1`
	tag, err := s.db.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("sweep challenges: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanChallenge(row pgx.Row) (domain.Challenge, error) {
	var c domain.Challenge
	var steps []string
	if err := row.Scan(&c.ID, &steps, &c.CreatedAt, &c.ExpiresAt, &c.Used); err != nil {
		return domain.Challenge{}, err
	}
	c.Steps = make([]domain.GestureTag, len(steps))
	for i, st := range steps {
		c.Steps[i] = domain.GestureTag(st)
	}
	return c, nil
}
