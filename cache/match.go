// Package cache memoizes matcher results between listing mutations.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/dcode-github/property_chatbot/backend/models"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix   = "match:"
	genKey      = keyPrefix + "gen"
	entryPrefix = keyPrefix + "entry:"
	scanPattern = entryPrefix + "*"
	scanCount   = 100

	DefaultTTL = 10 * time.Minute
)

// Generation identifies the listing state a cached result was computed from.
// Invalidate moves the cache to a new generation, so a result computed before
// a mutation but stored after it is filed under a generation nobody reads.
type Generation int64

// MatchCache stores match results keyed by budget. Implementations never
// fail the caller: backend errors are logged and reported as a miss.
//
// Callers pass the generation returned by Get to the following Set.
type MatchCache interface {
	Get(ctx context.Context, budget float64) ([]models.Property, Generation, bool)
	Set(ctx context.Context, gen Generation, budget float64, properties []models.Property)
	Invalidate(ctx context.Context)
}

// Nop is a MatchCache that never holds anything.
type Nop struct{}

func (Nop) Get(context.Context, float64) ([]models.Property, Generation, bool) {
	return nil, 0, false
}
func (Nop) Set(context.Context, Generation, float64, []models.Property) {}
func (Nop) Invalidate(context.Context)                                  {}

type RedisMatchCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisMatchCache(client *redis.Client, ttl time.Duration) *RedisMatchCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisMatchCache{client: client, ttl: ttl}
}

func (c *RedisMatchCache) generation(ctx context.Context) (Generation, error) {
	n, err := c.client.Get(ctx, genKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return Generation(n), nil
}

func (c *RedisMatchCache) Get(ctx context.Context, budget float64) ([]models.Property, Generation, bool) {
	gen, err := c.generation(ctx)
	if err != nil {
		log.Printf("Redis GET error for key %s: %v", genKey, err)
		return nil, -1, false
	}
	key := Key(gen, budget)

	cached, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Redis GET error for key %s: %v", key, err)
		}
		log.Printf("Cache Miss for key: %s", key)
		return nil, gen, false
	}

	var properties []models.Property
	if err := json.Unmarshal([]byte(cached), &properties); err != nil {
		log.Printf("Discarding unreadable cache entry %s: %v", key, err)
		return nil, gen, false
	}
	log.Printf("Cache Hit for key: %s", key)
	return properties, gen, true
}

// Set stores a result under gen. A negative generation means Get could not
// reach Redis and nothing is written.
func (c *RedisMatchCache) Set(ctx context.Context, gen Generation, budget float64, properties []models.Property) {
	if gen < 0 {
		return
	}
	key := Key(gen, budget)

	data, err := json.Marshal(properties)
	if err != nil {
		log.Printf("Failed to serialize match result for key %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("Failed to cache response for key %s: %v", key, err)
	}
}

// Invalidate advances the generation and removes every cached match result.
func (c *RedisMatchCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, genKey).Err(); err != nil {
		log.Printf("Error advancing match cache generation: %v", err)
	}

	var keysToDelete []string
	var cursor uint64

	for {
		keys, next, err := c.client.Scan(ctx, cursor, scanPattern, scanCount).Result()
		if err != nil {
			log.Printf("Error during Redis SCAN for pattern '%s': %v", scanPattern, err)
			return
		}
		keysToDelete = append(keysToDelete, keys...)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) == 0 {
		return
	}

	pipe := c.client.Pipeline()
	for _, key := range keysToDelete {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("Error deleting %d match cache keys: %v", len(keysToDelete), err)
		return
	}
	log.Printf("Match cache invalidated, deleted %d keys", len(keysToDelete))
}

// Key derives the cache key for a budget within a generation.
func Key(gen Generation, budget float64) string {
	sum := sha256.Sum256([]byte(strconv.FormatFloat(budget, 'g', -1, 64)))
	return fmt.Sprintf("%s%d:%s", entryPrefix, gen, hex.EncodeToString(sum[:]))
}
