package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

const (
	RedisBackend  = "redis"
	MemoryBackend = "memory"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Cache is a read-through store for derived views. Nothing in it is the
// source of truth; every value can be rebuilt from the database.
type Cache[V any] interface {
	// Get returns the value or ErrCacheMiss.
	Get(ctx context.Context, key string) (V, error)
	// Set stores value under key. Zero ttl means no expiration.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// MGet returns values in key order; misses carry ErrCacheMiss.
	MGet(ctx context.Context, keys ...string) ([]V, []error)
	MSet(ctx context.Context, kv map[string]V, ttl time.Duration) error
}

type Config struct {
	Backend       string        `env:"CACHE_BACKEND" env-default:"memory"`
	KeyPrefix     string        `env:"CACHE_KEY_PREFIX" env-default:"arena:"`
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB"`
	RedisPoolSize int           `env:"REDIS_POOL_SIZE" env-default:"20"`
	OpTimeout     time.Duration `env:"CACHE_OP_TIMEOUT" env-default:"50ms"`
}

func (c *Config) Validate() error {
	switch c.Backend {
	case MemoryBackend:
		return nil
	case RedisBackend:
		if c.RedisAddr == "" {
			return errors.New("cache: redis backend needs REDIS_ADDR")
		}
		return nil
	default:
		return fmt.Errorf("cache: unknown backend %q", c.Backend)
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Open builds the configured backend. The redis backend is pinged so a bad
// address fails at startup instead of on the first request.
func Open[V any](ctx context.Context, c *Config) (Cache[V], io.Closer, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	if c.Backend == MemoryBackend {
		mc := NewMemoryCache[V]()
		return mc, closerFunc(func() error { mc.Stop(); return nil }), nil
	}

	rc := NewRedisCache[V](&RedisOptions{
		Addr:      c.RedisAddr,
		Password:  c.RedisPassword,
		DB:        c.RedisDB,
		PoolSize:  c.RedisPoolSize,
		KeyPrefix: c.KeyPrefix,
		OpTimeout: c.OpTimeout,
	})
	if err := rc.Ping(ctx); err != nil {
		_ = rc.Close()
		return nil, nil, fmt.Errorf("cache: redis unreachable: %w", err)
	}
	return rc, rc, nil
}
