package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRateLimiter(start time.Time) (*RateLimitService, *time.Time) {
	clock := start
	svc := NewRateLimitService(newFakeRateLimitRepo())
	svc.now = func() time.Time { return clock }
	return svc, &clock
}

func TestRateLimitAllowsUpToLimit(t *testing.T) {
	svc, _ := newTestRateLimiter(time.Now())

	for i := 0; i < 5; i++ {
		result, err := svc.Check("user:u1", "like:toggle", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 5-(i+1), result.Remaining)
	}

	result, err := svc.Check("user:u1", "like:toggle", 5, time.Minute)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
}

func TestRateLimitRequireReturnsRetryAfter(t *testing.T) {
	svc, _ := newTestRateLimiter(time.Now())

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Require("user:u1", "report:create", 3, time.Minute))
	}

	err := svc.Require("user:u1", "report:create", 3, time.Minute)
	require.Error(t, err)

	var limited *RateLimitedError
	require.ErrorAs(t, err, &limited)
	assert.GreaterOrEqual(t, limited.RetryAfter, 1)
	assert.LessOrEqual(t, limited.RetryAfter, 60)
}

func TestRateLimitRetryAfterFollowsServiceClock(t *testing.T) {
	// A fixed epoch far from the wall clock: retry-after must come out of
	// the service clock, not time.Now
	start := time.Unix(1_700_000_000, 0)
	svc, clock := newTestRateLimiter(start)

	require.NoError(t, svc.Require("user:u1", "comment:create", 1, time.Minute))

	*clock = start.Add(45 * time.Second)

	err := svc.Require("user:u1", "comment:create", 1, time.Minute)
	var limited *RateLimitedError
	require.ErrorAs(t, err, &limited)
	assert.Equal(t, 15, limited.RetryAfter)
}

func TestRateLimitWindowReset(t *testing.T) {
	svc, clock := newTestRateLimiter(time.Now())

	for i := 0; i < 2; i++ {
		require.NoError(t, svc.Require("user:u1", "follow:toggle", 2, time.Minute))
	}
	require.Error(t, svc.Require("user:u1", "follow:toggle", 2, time.Minute))

	// Advance past the window boundary; the counter starts fresh
	*clock = clock.Add(time.Minute + time.Millisecond)
	require.NoError(t, svc.Require("user:u1", "follow:toggle", 2, time.Minute))
}

func TestRateLimitKeysAreIndependent(t *testing.T) {
	svc, _ := newTestRateLimiter(time.Now())

	require.NoError(t, svc.Require("user:u1", "like:toggle", 1, time.Minute))
	require.Error(t, svc.Require("user:u1", "like:toggle", 1, time.Minute))

	// A different actor and a different bucket are unaffected
	require.NoError(t, svc.Require("user:u2", "like:toggle", 1, time.Minute))
	require.NoError(t, svc.Require("user:u1", "bookmark:toggle", 1, time.Minute))
}

func TestRateLimitBucketIDEmbedsWindow(t *testing.T) {
	assert.Equal(t, "like:toggle:60000", bucketID("like:toggle", time.Minute))
	assert.Equal(t, "auth:attempt:900000", bucketID("auth:attempt", 15*time.Minute))
}

func TestRateLimitWindowChangeStartsFreshCounter(t *testing.T) {
	svc, _ := newTestRateLimiter(time.Now())

	require.NoError(t, svc.Require("user:u1", "like:toggle", 1, time.Minute))
	require.Error(t, svc.Require("user:u1", "like:toggle", 1, time.Minute))

	// Same bucket name under a different window is a different counter
	require.NoError(t, svc.Require("user:u1", "like:toggle", 1, 2*time.Minute))
}

func TestRateLimitActorKeys(t *testing.T) {
	assert.Equal(t, "user:abc", UserKey("abc"))
	assert.Equal(t, "ip:203.0.113.9", IPKey("203.0.113.9"))
}
