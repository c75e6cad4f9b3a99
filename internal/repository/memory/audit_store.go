package memory

import (
	"context"
	"sync"

	"github.com/Aaryan658/proof-of-life/internal/domain"
)

type AuditStore struct {
	mu       sync.Mutex
	attempts []domain.VerificationAttempt
}

func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

func (s *AuditStore) Record(ctx context.Context, attempt domain.VerificationAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, attempt)
	return nil
}

// Attempts returns a snapshot of recorded attempts, for tests.
func (s *AuditStore) Attempts() []domain.VerificationAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.VerificationAttempt, len(s.attempts))
	copy(out, s.attempts)
	return out
}
