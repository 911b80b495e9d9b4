package revalidate

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time          { return f.now }
func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestCache(ttl time.Duration) (*Cache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)}
	return NewWithClock(ttl, clock.Now), clock
}

func TestFetch_MissThenHit(t *testing.T) {
	t.Parallel()
	cache, _ := newTestCache(time.Minute)
	ctx := context.Background()

	calls := 0
	fetch := func(ctx context.Context) (string, error) {
		calls++
		return "videos", nil
	}

	got, err := Fetch(ctx, cache, "videos", fetch)
	require.NoError(t, err)
	assert.Equal(t, "videos", got)

	got, err = Fetch(ctx, cache, "videos", fetch)
	require.NoError(t, err)
	assert.Equal(t, "videos", got)
	assert.Equal(t, 1, calls)
}

func TestFetch_ExpiryRefetches(t *testing.T) {
	t.Parallel()
	cache, clock := newTestCache(time.Minute)
	ctx := context.Background()

	calls := 0
	fetch := func(ctx context.Context) (int, error) {
		calls++
		return calls, nil
	}

	got, err := Fetch(ctx, cache, "acts", fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	clock.Advance(59 * time.Second)
	got, err = Fetch(ctx, cache, "acts", fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, got, "still fresh just under the TTL")

	clock.Advance(2 * time.Second)
	got, err = Fetch(ctx, cache, "acts", fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, got, "stale entry refetched")
}

func TestFetch_ErrorIsNotCached(t *testing.T) {
	t.Parallel()
	cache, _ := newTestCache(time.Minute)
	ctx := context.Background()

	calls := 0
	fetch := func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("db locked")
		}
		return "ok", nil
	}

	_, err := Fetch(ctx, cache, "clips", fetch)
	require.Error(t, err)

	got, err := Fetch(ctx, cache, "clips", fetch)
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 2, calls)
}

func TestInvalidate(t *testing.T) {
	t.Parallel()
	cache, _ := newTestCache(time.Hour)
	ctx := context.Background()

	calls := map[string]int{}
	fetcher := func(key string) func(ctx context.Context) (string, error) {
		return func(ctx context.Context) (string, error) {
			calls[key]++
			return key, nil
		}
	}

	_, err := Fetch(ctx, cache, "a", fetcher("a"))
	require.NoError(t, err)
	_, err = Fetch(ctx, cache, "b", fetcher("b"))
	require.NoError(t, err)

	cache.Invalidate("a")
	_, err = Fetch(ctx, cache, "a", fetcher("a"))
	require.NoError(t, err)
	_, err = Fetch(ctx, cache, "b", fetcher("b"))
	require.NoError(t, err)
	assert.Equal(t, 2, calls["a"])
	assert.Equal(t, 1, calls["b"])

	cache.InvalidateAll()
	_, err = Fetch(ctx, cache, "b", fetcher("b"))
	require.NoError(t, err)
	assert.Equal(t, 2, calls["b"])
}
