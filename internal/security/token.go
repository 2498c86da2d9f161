package security

import (
	"time"

	"github.com/google/uuid"
)

// Token scopes. Only access tokens authenticate API calls.
const (
	TokenScopeAccess  = "access"
	TokenScopeRefresh = "refresh"
)

// Maker issues and verifies the bearer tokens handed out at login. A token
// binds the user to the ledger address they sign for; version lets a user
// row update invalidate older tokens.
type Maker interface {
	CreateToken(userID uuid.UUID, address string, duration time.Duration, version int64, scope string) (string, *Payload, error)

	// VerifyToken returns ErrInvalidToken for anything it cannot decrypt and
	// ErrExpiredToken once the payload is past its expiry.
	VerifyToken(token string) (*Payload, error)
}
