package jobdata

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobswipe-api/internal/common/database"
	"jobswipe-api/internal/common/logger"
)

// countingStore records backing-store calls for cache assertions.
type countingStore struct {
	suggestions     *LocationSuggestions
	suggestionCalls int
	searchCalls     int
}

func (c *countingStore) LocationSuggestions(_ context.Context, _ string) (*LocationSuggestions, error) {
	c.suggestionCalls++
	return c.suggestions, nil
}

func (c *countingStore) SearchJobs(_ context.Context, _ SearchQuery) (*SearchResult, error) {
	c.searchCalls++
	return &SearchResult{Jobs: []JobPosting{}}, nil
}

func newTestCache(t *testing.T, backing Store, ttl time.Duration) (*CachedStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := &database.RedisClient{
		Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}
	return NewCachedStore(backing, client, ttl, logger.NewTestLogger(t)), mr
}

func testSuggestions() *LocationSuggestions {
	return &LocationSuggestions{
		PrimaryJobs: []JobPosting{{
			ID: "job-1", Title: "Backend Engineer", Type: "full-time",
			Level: "mid", Location: "Milan", RemoteMode: RemoteModeOnsite,
			Company: "Acme",
		}},
		NearbyJobs: []JobPosting{},
		ProximityInfo: []ProximityInfo{
			{City: "Brescia", DistanceKm: 93, JobCount: 40},
		},
	}
}

func TestCachedStore_MissThenHit(t *testing.T) {
	backing := &countingStore{suggestions: testSuggestions()}
	cache, _ := newTestCache(t, backing, time.Minute)
	ctx := context.Background()

	first, err := cache.LocationSuggestions(ctx, "Milan")
	require.NoError(t, err)
	assert.Equal(t, 1, backing.suggestionCalls)

	second, err := cache.LocationSuggestions(ctx, "Milan")
	require.NoError(t, err)
	assert.Equal(t, 1, backing.suggestionCalls, "second lookup must be served from cache")
	assert.Equal(t, first, second)
}

func TestCachedStore_KeyIsCaseInsensitive(t *testing.T) {
	backing := &countingStore{suggestions: testSuggestions()}
	cache, _ := newTestCache(t, backing, time.Minute)
	ctx := context.Background()

	_, err := cache.LocationSuggestions(ctx, "Milan")
	require.NoError(t, err)
	_, err = cache.LocationSuggestions(ctx, "  MILAN ")
	require.NoError(t, err)

	assert.Equal(t, 1, backing.suggestionCalls)
}

func TestCachedStore_ExpiryRefetches(t *testing.T) {
	backing := &countingStore{suggestions: testSuggestions()}
	cache, mr := newTestCache(t, backing, time.Minute)
	ctx := context.Background()

	_, err := cache.LocationSuggestions(ctx, "Milan")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = cache.LocationSuggestions(ctx, "Milan")
	require.NoError(t, err)
	assert.Equal(t, 2, backing.suggestionCalls)
}

func TestCachedStore_CorruptEntryFallsThrough(t *testing.T) {
	backing := &countingStore{suggestions: testSuggestions()}
	cache, mr := newTestCache(t, backing, time.Minute)
	ctx := context.Background()

	key := suggestionKeyPrefix + "milan"
	require.NoError(t, mr.Set(key, "{not json"))

	got, err := cache.LocationSuggestions(ctx, "Milan")
	require.NoError(t, err)
	assert.Equal(t, 1, backing.suggestionCalls)
	assert.Equal(t, "Backend Engineer", got.PrimaryJobs[0].Title)

	// The corrupt entry was replaced with a fresh payload.
	cached, err := mr.Get(key)
	require.NoError(t, err)
	var roundTrip LocationSuggestions
	require.NoError(t, json.Unmarshal([]byte(cached), &roundTrip))
	assert.Equal(t, got.ProximityInfo, roundTrip.ProximityInfo)
}

func TestCachedStore_RedisDownFallsBack(t *testing.T) {
	backing := &countingStore{suggestions: testSuggestions()}
	cache, mr := newTestCache(t, backing, time.Minute)
	mr.Close()

	got, err := cache.LocationSuggestions(context.Background(), "Milan")
	require.NoError(t, err)
	assert.Equal(t, 1, backing.suggestionCalls)
	assert.Len(t, got.PrimaryJobs, 1)
}

func TestCachedStore_SearchJobsPassesThrough(t *testing.T) {
	backing := &countingStore{suggestions: testSuggestions()}
	cache, _ := newTestCache(t, backing, time.Minute)
	ctx := context.Background()

	_, err := cache.SearchJobs(ctx, SearchQuery{Location: "Milan"})
	require.NoError(t, err)
	_, err = cache.SearchJobs(ctx, SearchQuery{Location: "Milan"})
	require.NoError(t, err)

	assert.Equal(t, 2, backing.searchCalls)
}
