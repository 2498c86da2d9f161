package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/joefazee/arena/app/api"
	"github.com/joefazee/arena/models"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockRepository) ListByResource(ctx context.Context, resourceType, resourceID string, limit, offset int) ([]models.AuditLog, int64, error) {
	args := m.Called(ctx, resourceType, resourceID, limit, offset)
	return args.Get(0).([]models.AuditLog), args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) WithTx(_ *gorm.DB) Repository { return m }

func TestRecorder_Record(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	rec := NewRecorder(repo).WithTx(nil)

	entry := models.NewAuditLog("", models.AuditActionMarketLocked, models.AuditResourceMarket, "evt", nil, nil, models.RequestMeta{})
	repo.On("Create", ctx, entry).Return(nil).Once()
	require.NoError(t, rec.Record(ctx, entry))

	repo.On("Create", ctx, entry).Return(errors.New("db down")).Once()
	err := rec.Record(ctx, entry)
	assert.ErrorContains(t, err, "market.locked")
	repo.AssertExpectations(t)
}

func TestRecorder_History(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	rec := NewRecorder(repo)

	entries := []models.AuditLog{{Action: models.AuditActionMarketInitialized}, {Action: models.AuditActionBetPlaced}}
	repo.On("ListByResource", ctx, models.AuditResourceMarket, "evt", api.DefaultPerPage, 0).Return(entries, int64(2), nil)

	result, err := rec.History(ctx, models.AuditResourceMarket, "evt", &api.PageQuery{})
	require.NoError(t, err)
	assert.Len(t, result.Entries, 2)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, int64(2), result.Total)
}

func TestNopRecorder(t *testing.T) {
	var rec Recorder = NopRecorder{}
	assert.NoError(t, rec.WithTx(nil).Record(context.Background(), &models.AuditLog{}))

	result, err := rec.History(context.Background(), models.AuditResourceMarket, "evt", &api.PageQuery{})
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
}
