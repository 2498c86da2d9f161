package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisCache(t *testing.T) (*RedisCache[string], *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	rc := NewRedisCache[string](&RedisOptions{
		Addr:      s.Addr(),
		PoolSize:  5,
		KeyPrefix: "arena:",
		OpTimeout: 200 * time.Millisecond,
	})
	t.Cleanup(func() { _ = rc.Close() })
	return rc, s
}

func TestRedisCache_GetSetDelete(t *testing.T) {
	rc, s := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, "market:epl-1", "snapshot", 0))
	assert.True(t, s.Exists("arena:market:epl-1"))

	v, err := rc.Get(ctx, "market:epl-1")
	require.NoError(t, err)
	assert.Equal(t, "snapshot", v)

	require.NoError(t, rc.Delete(ctx, "market:epl-1"))
	_, err = rc.Get(ctx, "market:epl-1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_TTL(t *testing.T) {
	rc, s := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, "principal", "p", time.Minute))
	assert.Equal(t, time.Minute, s.TTL("arena:principal"))

	s.FastForward(2 * time.Minute)
	_, err := rc.Get(ctx, "principal")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_MGetMSet(t *testing.T) {
	rc, s := setupRedisCache(t)
	ctx := context.Background()

	require.NoError(t, rc.MSet(ctx, map[string]string{"a": "1", "b": "2"}, time.Minute))
	require.NoError(t, s.Set("arena:broken", "{not json"))

	vals, errs := rc.MGet(ctx, "a", "missing", "b", "broken")
	require.Len(t, vals, 4)
	assert.Equal(t, "1", vals[0])
	assert.NoError(t, errs[0])
	assert.ErrorIs(t, errs[1], ErrCacheMiss)
	assert.Equal(t, "2", vals[2])
	assert.Error(t, errs[3])
	assert.NotErrorIs(t, errs[3], ErrCacheMiss)

	vals, errs = rc.MGet(ctx)
	assert.Empty(t, vals)
	assert.Empty(t, errs)
}

func TestRedisCache_ServerDown(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	rc := NewRedisCache[string](&RedisOptions{Addr: s.Addr(), OpTimeout: 200 * time.Millisecond})
	defer rc.Close()
	ctx := context.Background()
	s.Close()

	assert.Error(t, rc.Ping(ctx))
	_, err = rc.Get(ctx, "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)

	_, errs := rc.MGet(ctx, "a", "b")
	assert.Error(t, errs[0])
	assert.Error(t, errs[1])
}
