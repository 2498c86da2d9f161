package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OutcomePolicy decides what happens when a bettor tops up a record with a
// different outcome than the one already stored.
type OutcomePolicy string

const (
	// OutcomePolicyOverwrite moves the whole accumulated stake to the new outcome.
	OutcomePolicyOverwrite OutcomePolicy = "overwrite"
	// OutcomePolicyReject refuses a top-up on the other side.
	OutcomePolicyReject OutcomePolicy = "reject"
	// OutcomePolicySplit keeps one independent record per side.
	OutcomePolicySplit OutcomePolicy = "split"
)

// Valid reports whether p is a known policy
func (p OutcomePolicy) Valid() bool {
	switch p {
	case OutcomePolicyOverwrite, OutcomePolicyReject, OutcomePolicySplit:
		return true
	default:
		return false
	}
}

// Slot returns the record slot a bet on outcome lands in. Single-record
// policies always use slot 0; split uses outcome+1.
func (p OutcomePolicy) Slot(outcome Outcome) uint8 {
	if p == OutcomePolicySplit {
		return uint8(outcome) + 1
	}
	return 0
}

// UserBet is one bettor's accumulated position in one market
type UserBet struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	MarketEventID string     `gorm:"type:varchar(32);not null;uniqueIndex:idx_user_bets_position" json:"market_event_id"`
	Owner         string     `gorm:"type:varchar(42);not null;uniqueIndex:idx_user_bets_position;index" json:"owner"`
	Slot          uint8      `gorm:"type:smallint;not null;default:0;uniqueIndex:idx_user_bets_position" json:"slot"`
	OutcomeID     Outcome    `gorm:"type:smallint;not null" json:"outcome_id"`
	Amount        uint64     `gorm:"type:bigint;not null;default:0" json:"amount"`
	Claimed       bool       `gorm:"not null;default:false" json:"claimed"`
	ClaimedAt     *time.Time `gorm:"type:timestamptz" json:"claimed_at"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Market *Market `gorm:"foreignKey:MarketEventID;references:EventID" json:"-"`
}

// TableName specifies the table name for UserBet model
func (*UserBet) TableName() string {
	return "user_bets"
}

// BeforeCreate sets up the model before creation
func (b *UserBet) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// NewUserBet opens an empty position for owner in the slot chosen by policy
func NewUserBet(eventID, owner string, outcome Outcome, policy OutcomePolicy) *UserBet {
	return &UserBet{
		MarketEventID: eventID,
		Owner:         owner,
		Slot:          policy.Slot(outcome),
		OutcomeID:     outcome,
	}
}

// IsNew reports whether the record has not been persisted yet
func (b *UserBet) IsNew() bool {
	return b.ID == uuid.Nil
}

// TopUp adds amount to the position. Under the overwrite policy the stored
// outcome follows the latest bet; under reject a different outcome fails.
func (b *UserBet) TopUp(outcome Outcome, amount uint64, policy OutcomePolicy) error {
	if !outcome.Valid() {
		return ErrInvalidOutcome
	}
	if amount == 0 {
		return ErrInvalidBetAmount
	}
	if b.Claimed {
		return ErrAlreadyClaimed
	}

	if b.Amount > 0 && b.OutcomeID != outcome {
		switch policy {
		case OutcomePolicyOverwrite:
		case OutcomePolicyReject:
			return ErrOutcomeMismatch
		case OutcomePolicySplit:
			// a split record only ever holds one side
			return ErrInconsistentState
		default:
			return ErrInvalidOutcomePolicy
		}
	}

	if amount > MaxAmount-b.Amount {
		return ErrArithmeticOverflow
	}

	b.OutcomeID = outcome
	b.Amount += amount
	return nil
}

// IsWinner reports whether the position backs the settled outcome
func (b *UserBet) IsWinner(market *Market) bool {
	return market.IsSettled() && b.OutcomeID == market.WinningOutcome
}

// CheckClaimable applies the claim preconditions in order
func (b *UserBet) CheckClaimable(market *Market) error {
	if b.MarketEventID != market.EventID {
		return ErrInconsistentState
	}
	if !market.IsSettled() {
		return ErrMarketNotSettled
	}
	if b.Claimed {
		return ErrAlreadyClaimed
	}
	if !b.IsWinner(market) {
		return ErrLostBet
	}
	return nil
}

// MarkClaimed flips the write-once claimed flag
func (b *UserBet) MarkClaimed(now time.Time) error {
	if b.Claimed {
		return ErrAlreadyClaimed
	}
	claimedAt := now.UTC()
	b.Claimed = true
	b.ClaimedAt = &claimedAt
	return nil
}

// Validate performs validation on the bet model
func (b *UserBet) Validate() error {
	if err := ValidateEventID(b.MarketEventID); err != nil {
		return err
	}
	if _, err := NormalizeAddress(b.Owner); err != nil {
		return err
	}
	if !b.OutcomeID.Valid() {
		return ErrInvalidOutcome
	}
	if b.Slot > 2 {
		return ErrInconsistentState
	}
	if b.Slot != 0 && b.Slot != uint8(b.OutcomeID)+1 {
		return ErrInconsistentState
	}
	if b.Amount == 0 {
		return ErrInvalidBetAmount
	}
	return nil
}
