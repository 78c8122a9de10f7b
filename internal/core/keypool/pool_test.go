package keypool

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPool returns a pool with a controllable clock. The returned advance
// function moves the fake clock forward.
func newTestPool(keys ...string) (*Pool, func(time.Duration)) {
	p := New(keys)
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }
	p.sleep = func(d time.Duration) { now = now.Add(d) }
	advance := func(d time.Duration) { now = now.Add(d) }
	return p, advance
}

func TestRequestsPerMinuteLimit(t *testing.T) {
	p, advance := newTestPool("key-alpha")

	for i := 0; i < 15; i++ {
		key, ok := p.GetAvailableKey(100)
		require.True(t, ok, "call %d should succeed", i+1)
		assert.Equal(t, "key-alpha", key)
	}

	_, ok := p.GetAvailableKey(100)
	assert.False(t, ok, "16th call within the minute must be refused")

	advance(61 * time.Second)

	_, ok = p.GetAvailableKey(100)
	assert.True(t, ok, "window entries older than a minute must be purged")
}

func TestTokensPerMinuteLimit(t *testing.T) {
	p, advance := newTestPool("key-alpha")

	_, ok := p.GetAvailableKey(600_000)
	require.True(t, ok)

	_, ok = p.GetAvailableKey(600_000)
	assert.False(t, ok, "second request would push the minute window past 1M tokens")

	advance(61 * time.Second)

	_, ok = p.GetAvailableKey(600_000)
	assert.True(t, ok)
}

func TestDailyExhaustionAndRollover(t *testing.T) {
	p, advance := newTestPool("key-alpha")

	// 100 minutes of 15 requests each reaches the 1500/day cap.
	for i := 0; i < 100; i++ {
		for j := 0; j < 15; j++ {
			_, ok := p.GetAvailableKey(10)
			require.True(t, ok)
		}
		advance(61 * time.Second)
	}

	_, ok := p.GetAvailableKey(10)
	assert.False(t, ok, "daily cap must hold even with a fresh minute window")
	assert.True(t, p.usage["key-alpha"].exhausted)

	// Still exhausted later the same day.
	advance(2 * time.Hour)
	_, ok = p.GetAvailableKey(10)
	assert.False(t, ok)

	// Date rollover clears the counter and the exhausted flag.
	advance(24 * time.Hour)
	_, ok = p.GetAvailableKey(10)
	assert.True(t, ok)
	assert.Equal(t, 1, p.usage["key-alpha"].requestsToday)
	assert.False(t, p.usage["key-alpha"].exhausted)
}

func TestFallsBackToNextKey(t *testing.T) {
	p, _ := newTestPool("key-alpha", "key-beta")

	for i := 0; i < 15; i++ {
		key, ok := p.GetAvailableKey(10)
		require.True(t, ok)
		assert.Equal(t, "key-alpha", key)
	}

	key, ok := p.GetAvailableKey(10)
	require.True(t, ok)
	assert.Equal(t, "key-beta", key)
}

func TestWaitForAvailableKeyRecovers(t *testing.T) {
	p, advance := newTestPool("key-alpha")

	for i := 0; i < 15; i++ {
		_, ok := p.GetAvailableKey(10)
		require.True(t, ok)
	}
	advance(30 * time.Second)

	// The stubbed sleep advances the fake clock, so the backoff loop walks
	// past the window edge and the key frees up before the deadline.
	key, ok := p.WaitForAvailableKey(context.Background(), 10, DefaultMaxWait)
	assert.True(t, ok)
	assert.Equal(t, "key-alpha", key)
}

func TestWaitForAvailableKeyTimesOut(t *testing.T) {
	p, _ := newTestPool("key-alpha")

	// An estimate beyond the per-minute token limit can never be granted.
	_, ok := p.WaitForAvailableKey(context.Background(), 2_000_000, DefaultMaxWait)
	assert.False(t, ok)
}

func TestWaitForAvailableKeyEmptyPool(t *testing.T) {
	p, _ := newTestPool()

	start := time.Now()
	_, ok := p.WaitForAvailableKey(context.Background(), 10, DefaultMaxWait)
	assert.False(t, ok)
	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitForAvailableKeyHonorsContext(t *testing.T) {
	p, _ := newTestPool("key-alpha")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 15; i++ {
		_, ok := p.GetAvailableKey(10)
		require.True(t, ok)
	}

	_, ok := p.WaitForAvailableKey(ctx, 10, DefaultMaxWait)
	assert.False(t, ok)
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("hello")) // 1 * 1.3 truncated
	assert.Equal(t, 13, EstimateTokens("a b c d e f g h i j"))
}
