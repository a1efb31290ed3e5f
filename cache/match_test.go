package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dcode-github/property_chatbot/backend/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisMatchCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisMatchCache(client, time.Minute), mr
}

func TestKey(t *testing.T) {
	assert.True(t, strings.HasPrefix(Key(0, 500000), entryPrefix))
	assert.Equal(t, Key(0, 500000), Key(0, 500000.0))
	assert.NotEqual(t, Key(0, 500000), Key(0, 500001))
	assert.NotEqual(t, Key(0, 500000), Key(1, 500000))
}

func TestNop(t *testing.T) {
	var c MatchCache = Nop{}
	ctx := context.Background()

	c.Set(ctx, 0, 1, []models.Property{{ID: 1}})
	got, _, ok := c.Get(ctx, 1)
	assert.False(t, ok)
	assert.Nil(t, got)
	c.Invalidate(ctx)
}

func TestNewRedisMatchCacheDefaultsTTL(t *testing.T) {
	c := NewRedisMatchCache(nil, 0)
	assert.Equal(t, DefaultTTL, c.ttl)
}

func TestRedisMatchCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	want := []models.Property{{ID: 1, Name: "Sea View", Price: 500000}}

	_, gen, ok := c.Get(ctx, 500000)
	require.False(t, ok)
	assert.Equal(t, Generation(0), gen)

	c.Set(ctx, gen, 500000, want)

	got, _, ok := c.Get(ctx, 500000)
	require.True(t, ok)
	assert.Equal(t, want, got)

	_, _, ok = c.Get(ctx, 400000)
	assert.False(t, ok)

	assert.Equal(t, time.Minute, mr.TTL(Key(gen, 500000)))
}

func TestRedisMatchCacheEmptyResult(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, 0, 10, []models.Property{})

	got, _, ok := c.Get(ctx, 10)
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestRedisMatchCacheInvalidate(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, 0, 100, []models.Property{{ID: 1}})
	c.Set(ctx, 0, 200, []models.Property{{ID: 2}})
	require.NoError(t, mr.Set("unrelated", "kept"))

	c.Invalidate(ctx)

	assert.False(t, mr.Exists(Key(0, 100)))
	assert.False(t, mr.Exists(Key(0, 200)))
	assert.True(t, mr.Exists("unrelated"))

	_, gen, ok := c.Get(ctx, 100)
	assert.False(t, ok)
	assert.Equal(t, Generation(1), gen)
}

func TestRedisMatchCacheDropsResultComputedBeforeInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	// A reader misses and computes from the old listing...
	_, gen, ok := c.Get(ctx, 500000)
	require.False(t, ok)

	// ...an admin mutation lands before the reader stores its result.
	c.Invalidate(ctx)
	c.Set(ctx, gen, 500000, []models.Property{{ID: 1}})

	got, _, ok := c.Get(ctx, 500000)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestRedisMatchCacheUnavailable(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	c.Set(ctx, 0, 100, []models.Property{{ID: 1}})

	mr.Close()

	got, gen, ok := c.Get(ctx, 100)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.Less(t, int64(gen), int64(0))

	assert.NotPanics(t, func() {
		c.Set(ctx, gen, 100, []models.Property{{ID: 1}})
		c.Invalidate(ctx)
	})
}
