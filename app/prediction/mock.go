package prediction

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/joefazee/arena/models"
)

// MockService is a testify mock of Service
type MockService struct {
	mock.Mock
}

func (m *MockService) PlaceBet(ctx context.Context, caller, eventID string, req *PlaceBetRequest, meta models.RequestMeta) (*PlaceBetResponse, error) {
	args := m.Called(ctx, caller, eventID, req, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PlaceBetResponse), args.Error(1)
}

func (m *MockService) ClaimWinnings(ctx context.Context, caller, eventID string, req *ClaimRequest, meta models.RequestMeta) (*ClaimResponse, error) {
	args := m.Called(ctx, caller, eventID, req, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ClaimResponse), args.Error(1)
}

func (m *MockService) QuoteClaim(ctx context.Context, caller, eventID string, req *ClaimRequest) (*ClaimQuoteResponse, error) {
	args := m.Called(ctx, caller, eventID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ClaimQuoteResponse), args.Error(1)
}

func (m *MockService) GetMyPosition(ctx context.Context, caller, eventID string) (*PositionResponse, error) {
	args := m.Called(ctx, caller, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PositionResponse), args.Error(1)
}
