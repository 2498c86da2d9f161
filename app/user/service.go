package user

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/joefazee/arena/app/ledger"
	"github.com/joefazee/arena/internal/formatter"
	"github.com/joefazee/arena/internal/logger"
	"github.com/joefazee/arena/internal/security"
	"github.com/joefazee/arena/models"
)

// Dependencies are the collaborators the user service writes through
type Dependencies struct {
	DB         *gorm.DB
	Ledger     ledger.Service
	TokenMaker security.Maker
	Logger     logger.Logger
}

type service struct {
	repo       Repository
	config     *Config
	db         *gorm.DB
	ledger     ledger.Service
	tokenMaker security.Maker
	logger     logger.Logger
	now        func() time.Time
}

// NewService creates a new user service.
func NewService(repo Repository, config *Config, d Dependencies) Service {
	if d.Logger == nil {
		d.Logger = logger.NewNullLogger()
	}
	return &service{
		repo:       repo,
		config:     config,
		db:         d.DB,
		ledger:     d.Ledger,
		tokenMaker: d.TokenMaker,
		logger:     d.Logger,
		now:        time.Now,
	}
}

func (s *service) Register(ctx context.Context, req *RegisterUserRequest) (*Response, error) {
	hashedPassword, err := models.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	user := &models.User{
		ID:           id,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.PhoneNumber,
		PasswordHash: hashedPassword,
		Address:      models.NewUserAddress(id),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}
		_, err := s.ledger.WithTx(tx).OpenUserAccount(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", map[string]interface{}{
		"user_id": user.ID.String(),
		"address": user.Address,
	})
	return ToResponse(user), nil
}

func (s *service) Login(ctx context.Context, req *LoginRequest, ip string) (*LoginResponse, error) {
	user, err := s.findByIdentity(ctx, req.Identity)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			return nil, models.ErrInvalidLogin
		}
		return nil, err
	}

	now := s.now()
	if user.IsLocked(now) {
		return nil, models.ErrUserLocked
	}

	if !user.CheckPassword(req.Password) {
		user.IncrementFailedLogins(now)
		if err := s.repo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to record failed login: %w", err)
		}
		return nil, models.ErrInvalidLogin
	}

	if !user.Active() {
		return nil, models.ErrInactiveUser
	}

	user.UpdateLastLogin(net.ParseIP(ip), now)
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	version := user.UpdatedAt.UnixNano()
	if user.UpdatedAt.IsZero() {
		version = 0
	}

	accessToken, payload, err := s.tokenMaker.CreateToken(user.ID, user.Address, s.config.TokenTTL, version, security.TokenScopeAccess)
	if err != nil {
		return nil, err
	}

	resp := &LoginResponse{AccessToken: accessToken, User: *ToResponse(user)}
	if payload != nil {
		resp.ExpiresAt = payload.ExpiredAt
	}
	return resp, nil
}

func (s *service) findByIdentity(ctx context.Context, identity string) (*models.User, error) {
	if models.IsEmail(identity) {
		return s.repo.GetByEmail(ctx, strings.ToLower(identity))
	}
	phone, err := formatter.FormatPhone(identity, s.config.DefaultRegion)
	if err != nil {
		return nil, models.ErrRecordNotFound
	}
	return s.repo.GetByPhone(ctx, phone)
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &ProfileResponse{User: *ToResponse(user)}
	account, err := s.ledger.GetAccount(ctx, user.Address)
	switch {
	case err == nil:
		resp.Account = account
	case errors.Is(err, models.ErrRecordNotFound):
	default:
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return resp, nil
}
