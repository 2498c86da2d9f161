package cache

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockCache is a testify mock of Cache[V]. Unset return values come back as
// the zero V.
type MockCache[V any] struct {
	mock.Mock
}

var _ Cache[string] = (*MockCache[string])(nil)

func (m *MockCache[V]) Get(ctx context.Context, key string) (V, error) {
	args := m.Called(ctx, key)
	v, _ := args.Get(0).(V)
	return v, args.Error(1)
}

func (m *MockCache[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCache[V]) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCache[V]) MGet(ctx context.Context, keys ...string) ([]V, []error) {
	args := m.Called(ctx, keys)
	values, _ := args.Get(0).([]V)
	errs, _ := args.Get(1).([]error)
	return values, errs
}

func (m *MockCache[V]) MSet(ctx context.Context, kv map[string]V, ttl time.Duration) error {
	return m.Called(ctx, kv, ttl).Error(0)
}
