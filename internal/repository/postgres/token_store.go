package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Aaryan658/proof-of-life/internal/apperrors"
	"github.com/Aaryan658/proof-of-life/internal/domain"
)

type TokenStore struct {
	db *pgxpool.Pool
}

func NewTokenStore(db *pgxpool.Pool) *TokenStore {
	return &TokenStore{db: db}
}

func (s *TokenStore) Save(ctx context.Context, rec domain.TokenRecord) error {
	const query = `
		INSERT INTO tokens (hash, subject, issued_at, expires_at, revoked)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := s.db.Exec(ctx, query, rec.Hash, rec.Subject, rec.IssuedAt, rec.ExpiresAt, rec.Revoked)
	if err != nil {
		return fmt.Errorf("save token record: %w", err)
	}
	return nil
}

func (s *TokenStore) FindByHash(ctx context.Context, hash string) (domain.TokenRecord, error) {
	const query = `SELECT hash, subject, issued_at, expires_at, revoked FROM tokens WHERE hash = $1`
	var rec domain.TokenRecord
	err := s.db.QueryRow(ctx, query, hash).Scan(&rec.Hash, &rec.Subject, &rec.IssuedAt, &rec.ExpiresAt, &rec.Revoked)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.TokenRecord{}, apperrors.ErrTokenUnknown
	}
	if err != nil {
		return domain.TokenRecord{}, fmt.Errorf("find token record: %w", err)
	}
	return rec, nil
}

func (s *TokenStore) Revoke(ctx context.Context, hash string) error {
	const query = `UPDATE tokens SET revoked = true WHERE hash = $1`
	tag, err := s.db.Exec(ctx, query, hash)
	if err != nil {
		return fmt.Errorf("revoke token record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTokenUnknown
	}
	return nil
}
