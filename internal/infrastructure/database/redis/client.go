// Package redis provides the Redis-backed cache used to memoize the
// correlation analysis and exhibit tree between mutations.
package redis

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/BackCheck/justice-unveiled/internal/config"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/monitoring/logging"
	"github.com/BackCheck/justice-unveiled/pkg/errors"
)

var ErrClientClosed = errors.New(errors.ErrCodeInternal, "redis client is closed")

// Client wraps the go-redis client with lifecycle management.
type Client struct {
	rdb    *redis.Client
	logger logging.Logger

	mu     sync.RWMutex
	closed bool
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, cfg config.RedisConfig, log logging.Logger) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "redis connection failed").
			WithDetail(cfg.Addr)
	}

	log.Info("connected to redis",
		logging.String("addr", cfg.Addr),
		logging.Int("db", cfg.DB))

	return &Client{rdb: rdb, logger: log}, nil
}

// Raw exposes the underlying go-redis client for the cache layer.
func (c *Client) Raw() *redis.Client {
	return c.rdb
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return c.rdb.Ping(ctx).Err()
}

// Close releases the connection pool.  Safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.rdb.Close()
}
