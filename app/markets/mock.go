package markets

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/joefazee/arena/models"
)

// MockService is a testify mock of Service
type MockService struct {
	mock.Mock
}

func (m *MockService) InitializeMarket(ctx context.Context, authority string, req *InitializeMarketRequest, meta models.RequestMeta) (*MarketResponse, error) {
	args := m.Called(ctx, authority, req, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MarketResponse), args.Error(1)
}

func (m *MockService) LockMarket(ctx context.Context, eventID, caller string, meta models.RequestMeta) (*MarketResponse, error) {
	args := m.Called(ctx, eventID, caller, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MarketResponse), args.Error(1)
}

func (m *MockService) SettleMarket(ctx context.Context, eventID, caller string, req *SettleMarketRequest, meta models.RequestMeta) (*MarketResponse, error) {
	args := m.Called(ctx, eventID, caller, req, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MarketResponse), args.Error(1)
}

func (m *MockService) GetMarket(ctx context.Context, eventID string) (*MarketResponse, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MarketResponse), args.Error(1)
}

func (m *MockService) GetMarkets(ctx context.Context, filters *MarketFilters) (*MarketListResponse, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MarketListResponse), args.Error(1)
}

func (m *MockService) LockExpired(ctx context.Context, operator string, limit int) (int, error) {
	args := m.Called(ctx, operator, limit)
	return args.Int(0), args.Error(1)
}

func (m *MockService) Invalidate(ctx context.Context, eventID string) {
	m.Called(ctx, eventID)
}
