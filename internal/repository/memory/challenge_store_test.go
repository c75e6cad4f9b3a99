package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aaryan658/proof-of-life/internal/apperrors"
	"github.com/Aaryan658/proof-of-life/internal/domain"
)

func testChallenge(now time.Time) domain.Challenge {
	return domain.Challenge{
		ID:        "challenge-1",
		Steps:     []domain.GestureTag{domain.GestureBlink, domain.GestureSmile},
		CreatedAt: now,
		ExpiresAt: now.Add(2 * time.Minute),
	}
}

func TestChallengeStore_ConsumeSucceedsOnce(t *testing.T) {
	store := NewChallengeStore()
	now := time.Now().UTC()
	require.NoError(t, store.Create(context.Background(), testChallenge(now)))

	c, err := store.Consume(context.Background(), "challenge-1", now)
	require.NoError(t, err)
	assert.Equal(t, "challenge-1", c.ID)

	_, err = store.Consume(context.Background(), "challenge-1", now)
	assert.ErrorIs(t, err, apperrors.ErrChallengeAlreadyUsed)
}

func TestChallengeStore_ConsumeUnknownID(t *testing.T) {
	store := NewChallengeStore()
	_, err := store.Consume(context.Background(), "missing", time.Now().UTC())
	assert.ErrorIs(t, err, apperrors.ErrChallengeNotFound)
}

func TestChallengeStore_ConsumeExpired(t *testing.T) {
	store := NewChallengeStore()
	now := time.Now().UTC()
	require.NoError(t, store.Create(context.Background(), testChallenge(now)))

	_, err := store.Consume(context.Background(), "challenge-1", now.Add(5*time.Minute))
	assert.ErrorIs(t, err, apperrors.ErrChallengeExpired)
}

func TestChallengeStore_ConcurrentConsumeExactlyOneWinner(t *testing.T) {
	store := NewChallengeStore()
	now := time.Now().UTC()
	require.NoError(t, store.Create(context.Background(), testChallenge(now)))

	const attempts = 50
	var wg sync.WaitGroup
	var successes int32
	var mu sync.Mutex
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			if _, err := store.Consume(context.Background(), "challenge-1", now); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, successes)
}

func TestChallengeStore_SweepRemovesOnlyPastGrace(t *testing.T) {
	store := NewChallengeStore()
	now := time.Now().UTC()
	require.NoError(t, store.Create(context.Background(), testChallenge(now)))

	removed, err := store.Sweep(context.Background(), now.Add(90*time.Second), time.Minute)
	require.NoError(t, err)
	assert.Zero(t, removed)

	removed, err = store.Sweep(context.Background(), now.Add(4*time.Minute), time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
}
