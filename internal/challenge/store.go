// Package challenge implements the Challenge Store: create, atomic
// consume, and expiry sweep, per spec.md §4.4.
package challenge

import (
	"context"
	"time"

	"github.com/Aaryan658/proof-of-life/internal/domain"
)

// Store is the keyed mapping from challenge id to challenge record. Create
// and Consume must be safe for concurrent use; Consume in particular must
// be atomic so that two concurrent calls against the same id produce
// exactly one success (spec.md §5).
type Store interface {
	// Create persists a new challenge.
	Create(ctx context.Context, c domain.Challenge) error

	// Consume atomically reads the record, verifies it is unused and
	// unexpired as of now, and marks it used. Returns
	// apperrors.ErrChallengeNotFound, ErrChallengeExpired, or
	// ErrChallengeAlreadyUsed on failure.
	Consume(ctx context.Context, id string, now time.Time) (domain.Challenge, error)

	// Sweep deletes records whose expiry plus grace has passed as of now.
	// Best-effort; not on the critical path.
	Sweep(ctx context.Context, now time.Time, grace time.Duration) (int64, error)
}
