package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aaryan658/proof-of-life/internal/domain"
)

func TestAuditStore_RecordAppendsAttempts(t *testing.T) {
	store := NewAuditStore()
	now := time.Now().UTC()

	require.NoError(t, store.Record(context.Background(), domain.VerificationAttempt{ID: "1", CreatedAt: now}))
	require.NoError(t, store.Record(context.Background(), domain.VerificationAttempt{ID: "2", CreatedAt: now}))

	attempts := store.Attempts()
	require.Len(t, attempts, 2)
	assert.Equal(t, "1", attempts[0].ID)
	assert.Equal(t, "2", attempts[1].ID)
}
