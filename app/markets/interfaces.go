package markets

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/joefazee/arena/models"
)

// Repository defines the interface for market data operations
type Repository interface {
	Create(ctx context.Context, market *models.Market) error
	GetByEventID(ctx context.Context, eventID string) (*models.Market, error)
	// LockByEventID reads the market row with FOR UPDATE. It must be the
	// first row locked in any transaction that also touches bets or accounts.
	LockByEventID(ctx context.Context, eventID string) (*models.Market, error)
	ExistsByAddress(ctx context.Context, address string) (bool, error)
	Update(ctx context.Context, market *models.Market) error
	GetAll(ctx context.Context, filters *MarketFilters) ([]models.Market, error)
	Count(ctx context.Context, filters *MarketFilters) (int64, error)
	GetExpiredOpen(ctx context.Context, authority string, now time.Time, limit int) ([]models.Market, error)
	WithTx(tx *gorm.DB) Repository
}

// Service defines the interface for market business logic
type Service interface {
	InitializeMarket(ctx context.Context, authority string, req *InitializeMarketRequest, meta models.RequestMeta) (*MarketResponse, error)
	LockMarket(ctx context.Context, eventID, caller string, meta models.RequestMeta) (*MarketResponse, error)
	SettleMarket(ctx context.Context, eventID, caller string, req *SettleMarketRequest, meta models.RequestMeta) (*MarketResponse, error)

	GetMarket(ctx context.Context, eventID string) (*MarketResponse, error)
	GetMarkets(ctx context.Context, filters *MarketFilters) (*MarketListResponse, error)

	// LockExpired locks up to limit of the operator's open markets whose
	// end time has passed and returns how many were locked.
	LockExpired(ctx context.Context, operator string, limit int) (int, error)

	// Invalidate drops the cached snapshot after a mutation elsewhere
	Invalidate(ctx context.Context, eventID string)
}
