package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/joefazee/arena/internal/cache"
	"github.com/joefazee/arena/internal/logger"
)

// Principal is what the auth middleware needs to know about a token's user
type Principal struct {
	UserID  uuid.UUID `json:"user_id"`
	Address string    `json:"address"`
	Active  bool      `json:"active"`
}

type authService struct {
	repo   Repository
	cache  cache.Cache[string]
	ttl    time.Duration
	logger logger.Logger
}

func NewAuthService(repo Repository, cache cache.Cache[string], ttl time.Duration, log logger.Logger) AuthService {
	if log == nil {
		log = logger.NewNullLogger()
	}
	return &authService{repo: repo, cache: cache, ttl: ttl, logger: log}
}

func principalKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s:principal", userID)
}

func (s *authService) GetPrincipal(ctx context.Context, userID uuid.UUID) (*Principal, error) {
	if s.cache != nil && s.ttl > 0 {
		raw, err := s.cache.Get(ctx, principalKey(userID))
		if err == nil {
			var p Principal
			if err := json.Unmarshal([]byte(raw), &p); err == nil {
				return &p, nil
			}
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Error(err, map[string]interface{}{"user_id": userID.String(), "op": "cache_get"})
		}
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := &Principal{UserID: user.ID, Address: user.Address, Active: user.Active()}
	if s.cache != nil && s.ttl > 0 {
		if raw, err := json.Marshal(p); err == nil {
			if err := s.cache.Set(ctx, principalKey(userID), string(raw), s.ttl); err != nil {
				s.logger.Error(err, map[string]interface{}{"user_id": userID.String(), "op": "cache_set"})
			}
		}
	}
	return p, nil
}

