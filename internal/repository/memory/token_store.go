package memory

import (
	"context"
	"sync"

	"github.com/Aaryan658/proof-of-life/internal/apperrors"
	"github.com/Aaryan658/proof-of-life/internal/domain"
)

type TokenStore struct {
	mu     sync.Mutex
	tokens map[string]domain.TokenRecord
}

func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: make(map[string]domain.TokenRecord)}
}

func (s *TokenStore) Save(ctx context.Context, rec domain.TokenRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[rec.Hash] = rec
	return nil
}

func (s *TokenStore) FindByHash(ctx context.Context, hash string) (domain.TokenRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.tokens[hash]
	if !ok {
		return domain.TokenRecord{}, apperrors.ErrTokenUnknown
	}
	return rec, nil
}

func (s *TokenStore) Revoke(ctx context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.tokens[hash]
	if !ok {
		return apperrors.ErrTokenUnknown
	}
	rec.Revoked = true
	s.tokens[hash] = rec
	return nil
}
