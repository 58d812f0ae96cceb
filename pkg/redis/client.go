package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sectorlab/sectorpulse/pkg/config"
)

// ErrDisabled is returned by Ping when Redis is switched off in config.
var ErrDisabled = errors.New("redis disabled")

const connectTimeout = 5 * time.Second

// Client wraps go-redis behind the one switch the rest of the code
// cares about: when Redis is disabled in config every operation is a
// no-op, so callers never branch on availability themselves.
type Client struct {
	rdb *redis.Client
}

// New connects to Redis, or returns a disabled no-op client when
// REDIS_ENABLED is off.
func New(cfg *config.Config) (*Client, error) {
	if !cfg.Redis.Enabled {
		return &Client{}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Enabled reports whether a live connection is behind the wrapper
func (c *Client) Enabled() bool {
	return c.rdb != nil
}

// Ping checks the connection. Disabled clients report ErrDisabled so
// health output can distinguish "off" from "down".
func (c *Client) Ping(ctx context.Context) error {
	if c.rdb == nil {
		return ErrDisabled
	}
	return c.rdb.Ping(ctx).Err()
}

// Close closes the connection. Safe on a disabled client.
func (c *Client) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// Redis returns the underlying client for command access. Nil when
// disabled; callers go through Cache, which handles that.
func (c *Client) Redis() *redis.Client {
	return c.rdb
}
