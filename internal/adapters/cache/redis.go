package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"storetags/internal/domain"
)

// NewRedisClient parses url (redis://[:password@]host:port/db) and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

type redisTagCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisTagCache returns a domain.TagCache storing JSON encoded tags in Redis.
// Redis failures are logged and reported as cache misses.
//
// Each entry key embeds the generation read from its counter key. Invalidate
// increments the counters, so entries written under an older generation are
// never read again and expire with ttl. Counter keys have no expiry.
func NewRedisTagCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) domain.TagCache {
	return &redisTagCache{client: client, ttl: ttl, logger: logger}
}

func tagKey(id int64) string {
	return fmt.Sprintf("tag:%d", id)
}

func storeTagsKey(storeID int64) string {
	return fmt.Sprintf("store:%d:tags", storeID)
}

func genKey(key string) string {
	return key + ":gen"
}

func entryKey(key string, gen int64) string {
	return fmt.Sprintf("%s:v%d", key, gen)
}

func (c *redisTagCache) GetTag(ctx context.Context, id int64) (*domain.Tag, int64, bool) {
	var tag domain.Tag
	gen, ok := c.get(ctx, tagKey(id), &tag)
	if !ok {
		return nil, gen, false
	}
	return &tag, gen, true
}

func (c *redisTagCache) SetTag(ctx context.Context, tag *domain.Tag, gen int64) {
	c.set(ctx, tagKey(tag.ID), gen, tag)
}

func (c *redisTagCache) GetStoreTags(ctx context.Context, storeID int64) ([]*domain.Tag, int64, bool) {
	var tags []*domain.Tag
	gen, ok := c.get(ctx, storeTagsKey(storeID), &tags)
	if !ok {
		return nil, gen, false
	}
	return tags, gen, true
}

func (c *redisTagCache) SetStoreTags(ctx context.Context, storeID int64, tags []*domain.Tag, gen int64) {
	c.set(ctx, storeTagsKey(storeID), gen, tags)
}

func (c *redisTagCache) Invalidate(ctx context.Context, tagID, storeID int64) {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey(tagKey(tagID)))
		pipe.Incr(ctx, genKey(storeTagsKey(storeID)))
		return nil
	})
	if err != nil {
		c.logger.WarnContext(ctx, "cache invalidate failed", "tag_id", tagID, "store_id", storeID, "err", err)
	}
}

// get returns the current generation of key and whether its entry decoded into dest.
// The generation is -1 when Redis could not be read.
func (c *redisTagCache) get(ctx context.Context, key string, dest any) (int64, bool) {
	gen, err := c.client.Get(ctx, genKey(key)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "cache get failed", "key", genKey(key), "err", err)
		return -1, false
	}

	b, err := c.client.Get(ctx, entryKey(key, gen)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "cache get failed", "key", entryKey(key, gen), "err", err)
			return -1, false
		}
		return gen, false
	}
	if err := json.Unmarshal(b, dest); err != nil {
		c.logger.WarnContext(ctx, "cache entry corrupt", "key", entryKey(key, gen), "err", err)
		return gen, false
	}
	return gen, true
}

func (c *redisTagCache) set(ctx context.Context, key string, gen int64, v any) {
	if gen < 0 {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		c.logger.WarnContext(ctx, "cache encode failed", "key", entryKey(key, gen), "err", err)
		return
	}
	if err := c.client.Set(ctx, entryKey(key, gen), b, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "cache set failed", "key", entryKey(key, gen), "err", err)
	}
}
