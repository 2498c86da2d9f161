package user

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/joefazee/arena/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	WithTx(tx *gorm.DB) Repository
}

type Service interface {
	// Register creates the user together with their ledger account
	Register(ctx context.Context, req *RegisterUserRequest) (*Response, error)
	Login(ctx context.Context, req *LoginRequest, ip string) (*LoginResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileResponse, error)
}

// AuthService resolves the principal behind a verified token
type AuthService interface {
	GetPrincipal(ctx context.Context, userID uuid.UUID) (*Principal, error)
}
