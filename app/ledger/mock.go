package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/joefazee/arena/app/api"
	"github.com/joefazee/arena/models"
)

// MockService is a testify mock of Service. WithTx returns the same mock.
type MockService struct {
	mock.Mock
}

func (m *MockService) WithTx(_ *gorm.DB) Service {
	return m
}

func (m *MockService) Transfer(ctx context.Context, req *TransferRequest) (*TransferResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TransferResult), args.Error(1)
}

func (m *MockService) LockAccounts(ctx context.Context, addresses ...string) error {
	args := m.Called(ctx, addresses)
	return args.Error(0)
}

func (m *MockService) OpenUserAccount(ctx context.Context, userID uuid.UUID) (*models.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockService) OpenEscrow(ctx context.Context, address string) (*models.Account, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockService) GetBalance(ctx context.Context, address string) (uint64, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockService) GetAccount(ctx context.Context, address string) (*AccountResponse, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AccountResponse), args.Error(1)
}

func (m *MockService) GetEntries(ctx context.Context, address string, q *api.PageQuery) (*EntryListResponse, error) {
	args := m.Called(ctx, address, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*EntryListResponse), args.Error(1)
}

func (m *MockService) Deposit(ctx context.Context, address string, req *DepositRequest) (*OperationResponse, error) {
	args := m.Called(ctx, address, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OperationResponse), args.Error(1)
}
