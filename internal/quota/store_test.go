package quota_test

import (
	"testing"
	"time"

	"github.com/jordan/postboard/internal/quota"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Ceiling(t *testing.T) {
	store := quota.NewMemoryStore(3, time.Hour)
	defer store.Stop()

	// The first ceiling calls are allowed, the next is not.
	for i := 0; i < 3; i++ {
		assert.True(t, store.Consume("user-a"), "call %d should be allowed", i+1)
	}
	assert.False(t, store.Consume("user-a"), "call above ceiling should be rejected")

	// Other identities are unaffected.
	assert.True(t, store.Consume("user-b"))
}

func TestMemoryStore_Reset(t *testing.T) {
	store := quota.NewMemoryStore(1, time.Hour)
	defer store.Stop()

	require.True(t, store.Consume("user-a"))
	require.False(t, store.Consume("user-a"))

	store.Reset()

	assert.True(t, store.Consume("user-a"), "counter should clear on reset")
}

func TestMemoryStore_NextReset(t *testing.T) {
	store := quota.NewMemoryStore(1, time.Hour)
	defer store.Stop()

	next := store.NextReset()
	assert.True(t, next.After(time.Now()), "next reset should be in the future")
	assert.WithinDuration(t, time.Now().Add(time.Hour), next, time.Minute)
}

func TestMemoryStore_SweepClearsAllCounters(t *testing.T) {
	store := quota.NewMemoryStore(1, 50*time.Millisecond)
	defer store.Stop()

	require.True(t, store.Consume("user-a"))
	require.True(t, store.Consume("user-b"))
	require.False(t, store.Consume("user-a"))

	// Wait out the window; the sweep resets every identity at once.
	time.Sleep(120 * time.Millisecond)

	assert.True(t, store.Consume("user-a"))
	assert.True(t, store.Consume("user-b"))
}

func TestMemoryStore_StopIsIdempotent(t *testing.T) {
	store := quota.NewMemoryStore(1, time.Hour)
	store.Stop()
	store.Stop()
}
