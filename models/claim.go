package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DevFeeDivisor yields the 10% platform fee taken from every payout
const DevFeeDivisor = 10

// Payout is the split of one winning claim
type Payout struct {
	Stake       uint64 `json:"stake"`
	TotalPool   uint64 `json:"total_pool"`
	WinningPool uint64 `json:"winning_pool"`
	TotalPayout uint64 `json:"total_payout"`
	DevFee      uint64 `json:"dev_fee"`
	UserPayout  uint64 `json:"user_payout"`
}

// Claim is the immutable receipt of a paid-out bet
type Claim struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MarketEventID string    `gorm:"type:varchar(32);not null;index:idx_claims_market" json:"market_event_id"`
	BetID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"bet_id"`
	Owner         string    `gorm:"type:varchar(42);not null;index" json:"owner"`
	Stake         uint64    `gorm:"type:bigint;not null" json:"stake"`
	TotalPool     uint64    `gorm:"type:bigint;not null" json:"total_pool"`
	WinningPool   uint64    `gorm:"type:bigint;not null" json:"winning_pool"`
	TotalPayout   uint64    `gorm:"type:bigint;not null" json:"total_payout"`
	DevFee        uint64    `gorm:"type:bigint;not null;default:0" json:"dev_fee"`
	UserPayout    uint64    `gorm:"type:bigint;not null;default:0" json:"user_payout"`
	DevWallet     string    `gorm:"type:varchar(42);not null" json:"dev_wallet"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for Claim model
func (*Claim) TableName() string {
	return "claims"
}

// BeforeCreate sets up the model before creation
func (c *Claim) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// NewClaim builds the receipt for a bet paid under market's settlement
func NewClaim(market *Market, bet *UserBet, p Payout) *Claim {
	return &Claim{
		MarketEventID: market.EventID,
		BetID:         bet.ID,
		Owner:         bet.Owner,
		Stake:         p.Stake,
		TotalPool:     p.TotalPool,
		WinningPool:   p.WinningPool,
		TotalPayout:   p.TotalPayout,
		DevFee:        p.DevFee,
		UserPayout:    p.UserPayout,
		DevWallet:     market.DevWallet,
	}
}

// Payout returns the split stored in the receipt
func (c *Claim) Payout() Payout {
	return Payout{
		Stake:       c.Stake,
		TotalPool:   c.TotalPool,
		WinningPool: c.WinningPool,
		TotalPayout: c.TotalPayout,
		DevFee:      c.DevFee,
		UserPayout:  c.UserPayout,
	}
}

// Validate performs validation on the claim receipt
func (c *Claim) Validate() error {
	if err := ValidateEventID(c.MarketEventID); err != nil {
		return err
	}
	if c.BetID == uuid.Nil {
		return ErrRecordNotFound
	}
	if c.Stake == 0 || c.WinningPool == 0 {
		return ErrInvalidBetAmount
	}
	if c.DevFee+c.UserPayout != c.TotalPayout {
		return ErrInconsistentState
	}
	if c.TotalPayout > c.TotalPool {
		return ErrInconsistentState
	}
	return nil
}
