package cache

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"time"

	"skill-matrix/internal/config"

	"github.com/redis/go-redis/v9"
)

// Cache wraps redis with a graceful bypass: when redis is not configured or
// unreachable, every lookup misses and every write is a no-op, so the caller
// falls through to the database without special-casing.
type Cache struct {
	client *redis.Client
	logger *log.Logger
}

func New(cfg config.RedisConfig, logger *log.Logger) *Cache {
	if cfg.Host == "" {
		return &Cache{logger: logger}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Printf("redis unreachable, caching disabled: %v", err)
		_ = client.Close()
		return &Cache{logger: logger}
	}

	return &Cache{client: client, logger: logger}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// GetJSON loads the cached value into dest. The bool reports a hit.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if !c.Enabled() {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Printf("cache get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Printf("cache decode %s: %v", key, err)
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) {
	if !c.Enabled() {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		c.logger.Printf("cache encode %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.logger.Printf("cache set %s: %v", key, err)
	}
}

// InvalidatePrefix drops every key under the prefix. Used when a decision or
// submission changes the data behind dashboard aggregates.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	if !c.Enabled() {
		return
	}
	iter := c.client.Scan(ctx, 0, prefix+"*", 200).Iterator()
	keys := make([]string, 0, 32)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Printf("cache scan %s: %v", prefix, err)
		return
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			c.logger.Printf("cache invalidate %s: %v", prefix, err)
		}
	}
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
