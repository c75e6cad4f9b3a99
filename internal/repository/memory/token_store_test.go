package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aaryan658/proof-of-life/internal/apperrors"
	"github.com/Aaryan658/proof-of-life/internal/domain"
)

func TestTokenStore_SaveAndFind(t *testing.T) {
	store := NewTokenStore()
	now := time.Now().UTC()
	rec := domain.TokenRecord{Hash: "abc", Subject: "challenge-1", IssuedAt: now, ExpiresAt: now.Add(time.Minute)}

	require.NoError(t, store.Save(context.Background(), rec))

	found, err := store.FindByHash(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, rec.Subject, found.Subject)
}

func TestTokenStore_FindUnknownHash(t *testing.T) {
	store := NewTokenStore()
	_, err := store.FindByHash(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrTokenUnknown)
}

func TestTokenStore_Revoke(t *testing.T) {
	store := NewTokenStore()
	now := time.Now().UTC()
	rec := domain.TokenRecord{Hash: "abc", Subject: "challenge-1", IssuedAt: now, ExpiresAt: now.Add(time.Minute)}
	require.NoError(t, store.Save(context.Background(), rec))

	require.NoError(t, store.Revoke(context.Background(), "abc"))

	found, err := store.FindByHash(context.Background(), "abc")
	require.NoError(t, err)
	assert.True(t, found.Revoked)
}

func TestTokenStore_RevokeUnknownHash(t *testing.T) {
	store := NewTokenStore()
	err := store.Revoke(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrTokenUnknown)
}
