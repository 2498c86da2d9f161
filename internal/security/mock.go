package security

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMaker is a testify mock of Maker
type MockMaker struct {
	mock.Mock
}

var _ Maker = (*MockMaker)(nil)

func (m *MockMaker) CreateToken(userID uuid.UUID, address string, duration time.Duration, version int64, scope string) (string, *Payload, error) {
	args := m.Called(userID, address, duration, version, scope)
	payload, _ := args.Get(1).(*Payload)
	return args.String(0), payload, args.Error(2)
}

func (m *MockMaker) VerifyToken(token string) (*Payload, error) {
	args := m.Called(token)
	payload, _ := args.Get(0).(*Payload)
	return payload, args.Error(1)
}
