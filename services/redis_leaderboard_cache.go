package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pickem-app-go/models"

	"github.com/redis/go-redis/v9"
)

// RedisLeaderboardCache stores standings as one JSON value shared by every
// server instance
type RedisLeaderboardCache struct {
	client *redis.Client
	key    string
	genKey string
	ttl    time.Duration
}

// RedisConfig holds connection settings for the standings cache
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// NewRedisLeaderboardCache connects to Redis and verifies the connection
func NewRedisLeaderboardCache(ctx context.Context, cfg RedisConfig, ttl time.Duration) (*RedisLeaderboardCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return newRedisLeaderboardCache(client, cfg.Prefix, ttl), nil
}

func newRedisLeaderboardCache(client *redis.Client, prefix string, ttl time.Duration) *RedisLeaderboardCache {
	if prefix == "" {
		prefix = "pickem"
	}
	return &RedisLeaderboardCache{
		client: client,
		key:    fmt.Sprintf("%s:leaderboard:season", prefix),
		genKey: fmt.Sprintf("%s:leaderboard:generation", prefix),
		ttl:    ttl,
	}
}

// Close closes the Redis connection
func (c *RedisLeaderboardCache) Close() error {
	return c.client.Close()
}

// Get returns the cached standings, reporting false on a miss
func (c *RedisLeaderboardCache) Get(ctx context.Context) ([]models.LeaderboardEntry, bool, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading standings: %w", err)
	}

	var entries []models.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false, fmt.Errorf("decoding standings: %w", err)
	}
	return entries, true, nil
}

// Generation returns the invalidation counter shared by every instance
func (c *RedisLeaderboardCache) Generation(ctx context.Context) (uint64, error) {
	gen, err := c.client.Get(ctx, c.genKey).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading standings generation: %w", err)
	}
	return gen, nil
}

// Set stores the standings with the configured TTL. The write runs in a
// transaction watching the generation key, so an Invalidate from any
// instance after gen was read discards it.
func (c *RedisLeaderboardCache) Set(ctx context.Context, gen uint64, entries []models.LeaderboardEntry) (bool, error) {
	raw, err := json.Marshal(entries)
	if err != nil {
		return false, fmt.Errorf("encoding standings: %w", err)
	}

	stored := false
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, c.genKey).Uint64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key, raw, c.ttl)
			return nil
		})
		stored = err == nil
		return err
	}, c.genKey)

	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("writing standings: %w", err)
	}
	return stored, nil
}

// Invalidate deletes the cached standings and advances the generation
func (c *RedisLeaderboardCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, c.key)
		pipe.Incr(ctx, c.genKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting standings: %w", err)
	}
	return nil
}
