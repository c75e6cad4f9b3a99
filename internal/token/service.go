package token

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Aaryan658/proof-of-life/internal/apperrors"
	"github.com/Aaryan658/proof-of-life/internal/clock"
	"github.com/Aaryan658/proof-of-life/internal/domain"
)

// Claims is the JWT payload embedded in issued access tokens. Subject
// ties the token back to the challenge id it was issued for, per
// spec.md §3.
type Claims struct {
	jwt.RegisteredClaims
}

// Service issues signed bearer tokens on a successful verification and
// validates/revokes them afterward. The signature makes tokens
// self-verifying and cheap to reject early; the backing Store enables
// server-side revocation and rejects forged tokens that have a valid
// signature but no matching record (spec.md §4.5).
type Service struct {
	store  Store
	clock  clock.Clock
	secret []byte
	issuer string
}

// NewService builds a Service signing/validating HS256 tokens with secret,
// matching original_source's JWT_SECRET + HS256 configuration.
func NewService(store Store, clk clock.Clock, secret, issuer string) *Service {
	return &Service{store: store, clock: clk, secret: []byte(secret), issuer: issuer}
}

// Issue mints a new bearer token bound to subject, valid for ttl, and
// persists only its hash plus metadata.
func (s *Service) Issue(ctx context.Context, subject string, ttl time.Duration) (string, domain.TokenRecord, error) {
	now := s.clock.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", domain.TokenRecord{}, fmt.Errorf("sign token: %w", err)
	}

	rec := domain.TokenRecord{
		Hash:      HashToken(signed),
		Subject:   subject,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}
	if err := s.store.Save(ctx, rec); err != nil {
		return "", domain.TokenRecord{}, fmt.Errorf("persist token record: %w", err)
	}
	return signed, rec, nil
}

// Validate verifies signature and expiry on the string itself, then looks
// up the record by hash and rejects if missing or revoked, per spec.md
// §4.5's dual-check rationale. It returns the token's subject.
func (s *Service) Validate(ctx context.Context, tokenString string) (string, error) {
	rec, err := s.Inspect(ctx, tokenString)
	if err != nil {
		return "", err
	}
	return rec.Subject, nil
}

// Inspect behaves like Validate but returns the full persisted record, for
// callers (e.g. GET /api/protected) that need issued_at/expires_at as well
// as the subject.
func (s *Service) Inspect(ctx context.Context, tokenString string) (domain.TokenRecord, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.TokenRecord{}, apperrors.ErrTokenExpired
		}
		return domain.TokenRecord{}, apperrors.ErrTokenInvalidSignature
	}

	rec, err := s.store.FindByHash(ctx, HashToken(tokenString))
	if err != nil {
		return domain.TokenRecord{}, apperrors.ErrTokenUnknown
	}
	if rec.Revoked {
		return domain.TokenRecord{}, apperrors.ErrTokenRevoked
	}
	if !s.clock.Now().Before(rec.ExpiresAt) {
		return domain.TokenRecord{}, apperrors.ErrTokenExpired
	}

	return rec, nil
}

// Revoke marks the token record identified by hash as revoked.
func (s *Service) Revoke(ctx context.Context, hash string) error {
	return s.store.Revoke(ctx, hash)
}

// HashToken computes the digest used as the Store lookup key. The raw
// token string is never persisted; only this hash is.
func HashToken(tokenString string) string {
	sum := sha256.Sum256([]byte(tokenString))
	return hex.EncodeToString(sum[:])
}
