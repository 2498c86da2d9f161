package prediction

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/joefazee/arena/models"
)

// Repository defines the interface for bet and claim persistence
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	// LockBet reads one position with FOR UPDATE. Lock the market first.
	LockBet(ctx context.Context, eventID, owner string, slot uint8) (*models.UserBet, error)
	GetBetsByOwner(ctx context.Context, eventID, owner string) ([]models.UserBet, error)
	SaveBet(ctx context.Context, bet *models.UserBet) error

	CreateClaim(ctx context.Context, claim *models.Claim) error
	GetClaimByBet(ctx context.Context, betID uuid.UUID) (*models.Claim, error)
}

// Service defines the interface for betting business logic
type Service interface {
	PlaceBet(ctx context.Context, caller, eventID string, req *PlaceBetRequest, meta models.RequestMeta) (*PlaceBetResponse, error)
	ClaimWinnings(ctx context.Context, caller, eventID string, req *ClaimRequest, meta models.RequestMeta) (*ClaimResponse, error)

	QuoteClaim(ctx context.Context, caller, eventID string, req *ClaimRequest) (*ClaimQuoteResponse, error)
	GetMyPosition(ctx context.Context, caller, eventID string) (*PositionResponse, error)
}

// PayoutEngine defines the pure payout and odds calculations
type PayoutEngine interface {
	Split(stake, totalPool, winningPool uint64) (models.Payout, error)
	Payout(market *models.Market, bet *models.UserBet) (models.Payout, error)
	Estimate(market *models.Market, bet *models.UserBet) (models.Payout, error)
	Odds(market *models.Market) Odds
	Display(amount uint64) decimal.Decimal
}

// MarketCache is notified after a bet changes a market's pools
type MarketCache interface {
	Invalidate(ctx context.Context, eventID string)
}
