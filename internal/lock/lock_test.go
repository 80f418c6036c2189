package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLockerExclusive(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLocker()

	release, ok := l.Acquire(ctx, "browser1", time.Minute)
	require.True(t, ok)

	_, ok = l.Acquire(ctx, "browser1", time.Minute)
	assert.False(t, ok, "held lock must not be granted twice")

	_, ok = l.Acquire(ctx, "browser2", time.Minute)
	assert.True(t, ok, "different names do not contend")

	release()
	_, ok = l.Acquire(ctx, "browser1", time.Minute)
	assert.True(t, ok, "released lock is reacquirable")
}

func TestMemoryLockerExpiry(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLocker()
	now := time.Now()
	l.clock = func() time.Time { return now }

	_, ok := l.Acquire(ctx, "browser1", time.Minute)
	require.True(t, ok)

	now = now.Add(61 * time.Second)
	_, ok = l.Acquire(ctx, "browser1", time.Minute)
	assert.True(t, ok, "expired holds are superseded")
}

func TestMemoryLockerStaleReleaseKeepsSuccessorHold(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLocker()
	now := time.Now()
	l.clock = func() time.Time { return now }

	staleRelease, ok := l.Acquire(ctx, "browser1", time.Minute)
	require.True(t, ok)

	// The first holder outlives its TTL and a successor takes the slot.
	now = now.Add(61 * time.Second)
	successorRelease, ok := l.Acquire(ctx, "browser1", time.Minute)
	require.True(t, ok)

	staleRelease()
	_, ok = l.Acquire(ctx, "browser1", time.Minute)
	assert.False(t, ok, "a stale release must not free the successor's lock")

	successorRelease()
	_, ok = l.Acquire(ctx, "browser1", time.Minute)
	assert.True(t, ok, "the successor's own release frees the slot")
}
