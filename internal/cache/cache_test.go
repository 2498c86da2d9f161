package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Memory(t *testing.T) {
	c, closer, err := Open[string](context.Background(), &Config{Backend: MemoryBackend})
	require.NoError(t, err)
	defer closer.Close()

	_, ok := c.(*MemoryCache[string])
	assert.True(t, ok)
}

func TestOpen_Redis(t *testing.T) {
	s := miniredis.RunT(t)
	ctx := context.Background()

	c, closer, err := Open[string](ctx, &Config{Backend: RedisBackend, RedisAddr: s.Addr(), KeyPrefix: "test:"})
	require.NoError(t, err)
	defer closer.Close()

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	assert.True(t, s.Exists("test:k"))
}

func TestOpen_Errors(t *testing.T) {
	ctx := context.Background()

	_, _, err := Open[string](ctx, &Config{Backend: "memcached"})
	assert.Error(t, err)

	_, _, err = Open[string](ctx, &Config{Backend: RedisBackend})
	assert.Error(t, err)

	s, err := miniredis.Run()
	require.NoError(t, err)
	addr := s.Addr()
	s.Close()
	_, _, err = Open[string](ctx, &Config{Backend: RedisBackend, RedisAddr: addr})
	assert.ErrorContains(t, err, "unreachable")
}
