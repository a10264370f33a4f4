package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Client is a thin cache facade. When Redis is disabled every operation is a
// no-op miss, so callers never branch on availability.
type Client interface {
	Ping(ctx context.Context) error
	IsEnabled() bool
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

type Config struct {
	Host         string
	Port         int
	Password     string
	DB           int
	Enabled      bool
	PoolSize     int
	MinIdleConns int
}

type client struct {
	rdb    *redis.Client
	logger *zap.Logger
}

type disabledClient struct{}

// NewClient creates a Redis-backed cache client, or a disabled no-op client
// when cfg.Enabled is false.
func NewClient(cfg Config, logger *zap.Logger) Client {
	if !cfg.Enabled {
		return disabledClient{}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	return &client{rdb: rdb, logger: logger}
}

func (c *client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *client) IsEnabled() bool {
	return true
}

// Get unmarshals the cached value into dest; the bool reports a cache hit.
func (c *client) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		c.logger.Error("Failed to get cache entry",
			zap.String("key", key),
			zap.Error(err),
		)
		return false, err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// A corrupt entry is treated as a miss and evicted
		c.logger.Warn("Dropping unreadable cache entry",
			zap.String("key", key),
			zap.Error(err),
		)
		_ = c.rdb.Del(ctx, key).Err()
		return false, nil
	}

	return true, nil
}

func (c *client) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := c.rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Error("Failed to set cache entry",
			zap.String("key", key),
			zap.Duration("ttl", ttl),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (c *client) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *client) Close() error {
	return c.rdb.Close()
}

func (disabledClient) Ping(ctx context.Context) error { return nil }
func (disabledClient) IsEnabled() bool                { return false }
func (disabledClient) Get(ctx context.Context, key string, dest any) (bool, error) {
	return false, nil
}
func (disabledClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}
func (disabledClient) Delete(ctx context.Context, keys ...string) error { return nil }
func (disabledClient) Close() error                                     { return nil }
