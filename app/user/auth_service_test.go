package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/joefazee/arena/internal/cache"
	"github.com/joefazee/arena/models"
)

func TestGetPrincipal_CacheHit(t *testing.T) {
	repo := &MockRepo{}
	mockCache := &cache.MockCache[string]{}
	svc := NewAuthService(repo, mockCache, time.Minute, nil)

	userID := uuid.New()
	mockCache.On("Get", mock.Anything, "user:"+userID.String()+":principal").
		Return(`{"user_id":"`+userID.String()+`","address":"0x8000000000000000000000000000000000000011","active":true}`, nil)

	p, err := svc.GetPrincipal(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, userID, p.UserID)
	assert.Equal(t, "0x8000000000000000000000000000000000000011", p.Address)
	assert.True(t, p.Active)

	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	mockCache.AssertExpectations(t)
}

func TestGetPrincipal_CacheMissLoadsAndStores(t *testing.T) {
	repo := &MockRepo{}
	mockCache := &cache.MockCache[string]{}
	svc := NewAuthService(repo, mockCache, time.Minute, nil)

	userID := uuid.New()
	key := "user:" + userID.String() + ":principal"
	user := &models.User{ID: userID, Address: models.NewUserAddress(userID)}

	mockCache.On("Get", mock.Anything, key).Return("", cache.ErrCacheMiss)
	repo.On("GetByID", mock.Anything, userID).Return(user, nil)
	mockCache.On("Set", mock.Anything, key, mock.MatchedBy(func(v string) bool {
		return assert.Contains(t, v, user.Address)
	}), time.Minute).Return(nil)

	p, err := svc.GetPrincipal(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, user.Address, p.Address)
	assert.True(t, p.Active)

	repo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestGetPrincipal_CacheErrorsFallThrough(t *testing.T) {
	repo := &MockRepo{}
	mockCache := &cache.MockCache[string]{}
	svc := NewAuthService(repo, mockCache, time.Minute, nil)

	userID := uuid.New()
	inactive := false
	user := &models.User{ID: userID, Address: models.NewUserAddress(userID), IsActive: &inactive}

	mockCache.On("Get", mock.Anything, mock.Anything).Return("", errors.New("redis down"))
	repo.On("GetByID", mock.Anything, userID).Return(user, nil)
	mockCache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	p, err := svc.GetPrincipal(context.Background(), userID)
	require.NoError(t, err)
	assert.False(t, p.Active)
}

func TestGetPrincipal_CacheDisabled(t *testing.T) {
	repo := &MockRepo{}
	mockCache := &cache.MockCache[string]{}
	svc := NewAuthService(repo, mockCache, 0, nil)

	userID := uuid.New()
	repo.On("GetByID", mock.Anything, userID).Return(nil, models.ErrRecordNotFound)

	_, err := svc.GetPrincipal(context.Background(), userID)
	assert.ErrorIs(t, err, models.ErrRecordNotFound)
	mockCache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestGetPrincipal_MemoryCache(t *testing.T) {
	repo := &MockRepo{}
	mem := cache.NewMemoryCache[string]()
	t.Cleanup(mem.Stop)
	svc := NewAuthService(repo, mem, time.Minute, nil)

	userID := uuid.New()
	repo.On("GetByID", mock.Anything, userID).Return(&models.User{ID: userID, Address: models.NewUserAddress(userID)}, nil).Once()

	first, err := svc.GetPrincipal(context.Background(), userID)
	require.NoError(t, err)
	second, err := svc.GetPrincipal(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	repo.AssertExpectations(t)
}
