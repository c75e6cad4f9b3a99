// Package memory provides mutex-guarded, in-process implementations of the
// challenge, token, and audit stores, used by unit tests and by the
// "memory" storage backend for local/dev runs. The consume operation
// below performs its check-and-set under a single critical section,
// mirroring the atomicity the Postgres conditional UPDATE provides in
// production — grounded in the teacher pack's store_memory.go convention
// (kibshh-zero-trust-iot-gateway/backend/internal/device/store_memory.go).
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Aaryan658/proof-of-life/internal/apperrors"
	"github.com/Aaryan658/proof-of-life/internal/domain"
)

type ChallengeStore struct {
	mu         sync.Mutex
	challenges map[string]domain.Challenge
}

func NewChallengeStore() *ChallengeStore {
	return &ChallengeStore{challenges: make(map[string]domain.Challenge)}
}

func (s *ChallengeStore) Create(ctx context.Context, c domain.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[c.ID] = c
	return nil
}

func (s *ChallengeStore) Consume(ctx context.Context, id string, now time.Time) (domain.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.challenges[id]
	if !ok {
		return domain.Challenge{}, apperrors.ErrChallengeNotFound
	}
	if c.Used {
		return domain.Challenge{}, apperrors.ErrChallengeAlreadyUsed
	}
	if c.Expired(now) {
		// Used is left untouched so sweep can still reclaim it later,
		// per spec.md §4.7.
		return domain.Challenge{}, apperrors.ErrChallengeExpired
	}

	c.Used = true
	s.challenges[id] = c
	return c, nil
}

func (s *ChallengeStore) Sweep(ctx context.Context, now time.Time, grace time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, c := range s.challenges {
		if now.After(c.ExpiresAt.Add(grace)) {
			delete(s.challenges, id)
			removed++
		}
	}
	return removed, nil
}
