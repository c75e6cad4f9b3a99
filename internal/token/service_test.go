package token

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aaryan658/proof-of-life/internal/apperrors"
	"github.com/Aaryan658/proof-of-life/internal/clock"
	"github.com/Aaryan658/proof-of-life/internal/repository/memory"
)

func TestService_IssueThenValidateRoundTrip(t *testing.T) {
	store := memory.NewTokenStore()
	clk := clock.NewFixed(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	svc := NewService(store, clk, "test-secret", "proof-of-life")

	signed, rec, err := svc.Issue(context.Background(), "challenge-1", 5*time.Minute)
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.Equal(t, "challenge-1", rec.Subject)

	subject, err := svc.Validate(context.Background(), signed)
	require.NoError(t, err)
	assert.Equal(t, "challenge-1", subject)
}

func TestService_ValidateRejectsTamperedSignature(t *testing.T) {
	store := memory.NewTokenStore()
	clk := clock.NewFixed(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	svc := NewService(store, clk, "test-secret", "proof-of-life")

	signed, _, err := svc.Issue(context.Background(), "challenge-1", 5*time.Minute)
	require.NoError(t, err)

	_, err = svc.Validate(context.Background(), signed+"tampered")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalidSignature)
}

func TestService_ValidateRejectsExpiredToken(t *testing.T) {
	store := memory.NewTokenStore()
	clk := clock.NewFixed(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	svc := NewService(store, clk, "test-secret", "proof-of-life")

	signed, _, err := svc.Issue(context.Background(), "challenge-1", time.Minute)
	require.NoError(t, err)

	clk.Advance(2 * time.Minute)

	_, err = svc.Validate(context.Background(), signed)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestService_ValidateRejectsRevokedToken(t *testing.T) {
	store := memory.NewTokenStore()
	clk := clock.NewFixed(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	svc := NewService(store, clk, "test-secret", "proof-of-life")

	signed, rec, err := svc.Issue(context.Background(), "challenge-1", 5*time.Minute)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(context.Background(), rec.Hash))

	_, err = svc.Validate(context.Background(), signed)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestService_ValidateRejectsUnknownToken(t *testing.T) {
	store := memory.NewTokenStore()
	clk := clock.NewFixed(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	other := NewService(memory.NewTokenStore(), clk, "test-secret", "proof-of-life")
	svc := NewService(store, clk, "test-secret", "proof-of-life")

	signed, _, err := other.Issue(context.Background(), "challenge-1", 5*time.Minute)
	require.NoError(t, err)

	_, err = svc.Validate(context.Background(), signed)
	assert.ErrorIs(t, err, apperrors.ErrTokenUnknown)
}

func TestHashToken_IsDeterministicAndDistinct(t *testing.T) {
	h1 := HashToken("token-a")
	h2 := HashToken("token-a")
	h3 := HashToken("token-b")
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
}
