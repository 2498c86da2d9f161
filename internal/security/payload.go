package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidToken = errors.New("invalid token")
)

// now is replaced in tests
var now = time.Now

// Payload is the encrypted body of a token
type Payload struct {
	ID        uuid.UUID `json:"jti"`
	UserID    uuid.UUID `json:"sub"`
	Address   string    `json:"address"`
	IssuedAt  time.Time `json:"iat"`
	ExpiredAt time.Time `json:"exp"`
	Version   int64     `json:"ver"`
	Scope     string    `json:"scope"`
}

func NewPayload(userID uuid.UUID, address string, duration time.Duration, version int64, scope string) (*Payload, error) {
	if scope != TokenScopeAccess && scope != TokenScopeRefresh {
		return nil, fmt.Errorf("unknown token scope %q", scope)
	}

	tokenID, err := uuid.NewRandom()
	if err != nil {
		return nil, err
	}

	issuedAt := now()
	return &Payload{
		ID:        tokenID,
		UserID:    userID,
		Address:   address,
		IssuedAt:  issuedAt,
		ExpiredAt: issuedAt.Add(duration),
		Version:   version,
		Scope:     scope,
	}, nil
}

// Valid rejects expired payloads and ones that were never issued by NewPayload
func (p *Payload) Valid() error {
	if p.ID == uuid.Nil || p.UserID == uuid.Nil {
		return ErrInvalidToken
	}
	if !now().Before(p.ExpiredAt) {
		return ErrExpiredToken
	}
	return nil
}
