package prediction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joefazee/arena/models"
)

// PlaceBetRequest represents the request to place a bet
// @Description Request payload for staking on one side of a market. Outcome is 0 or 1; amount is in base units.
type PlaceBetRequest struct {
	Outcome *uint8 `json:"outcome" example:"0"`
	Amount  uint64 `json:"amount" example:"1000000000"`
}

// ClaimRequest selects the position to claim or quote. OutcomeID is only
// needed when positions are split per side; it defaults to the winning side.
type ClaimRequest struct {
	OutcomeID *uint8 `json:"outcome_id,omitempty" form:"outcome_id" binding:"omitempty,lte=1"`
}

// Odds are implied by the current pools. A multiplier is the gross payout
// per unit staked, before the dev fee.
type Odds struct {
	ProbabilityA decimal.Decimal `json:"probability_a"`
	ProbabilityB decimal.Decimal `json:"probability_b"`
	MultiplierA  decimal.Decimal `json:"multiplier_a"`
	MultiplierB  decimal.Decimal `json:"multiplier_b"`
}

// BetResponse represents a position in API responses
type BetResponse struct {
	ID            uuid.UUID       `json:"id"`
	MarketEventID string          `json:"market_event_id"`
	Owner         string          `json:"owner"`
	Slot          uint8           `json:"slot"`
	Outcome       models.Outcome  `json:"outcome"`
	Amount        uint64          `json:"amount"`
	DisplayAmount decimal.Decimal `json:"display_amount"`
	Claimed       bool            `json:"claimed"`
	ClaimedAt     *time.Time      `json:"claimed_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// PlaceBetResponse is the position after the bet and the market's new pools
type PlaceBetResponse struct {
	Bet        BetResponse `json:"bet"`
	TransferID uuid.UUID   `json:"transfer_id"`
	PoolA      uint64      `json:"pool_a"`
	PoolB      uint64      `json:"pool_b"`
	TotalPool  uint64      `json:"total_pool"`
	Odds       Odds        `json:"odds"`
}

// PayoutResponse is the split of one claim
type PayoutResponse struct {
	Stake             uint64          `json:"stake"`
	TotalPool         uint64          `json:"total_pool"`
	WinningPool       uint64          `json:"winning_pool"`
	TotalPayout       uint64          `json:"total_payout"`
	DevFee            uint64          `json:"dev_fee"`
	UserPayout        uint64          `json:"user_payout"`
	DisplayUserPayout decimal.Decimal `json:"display_user_payout"`
}

// ClaimResponse is the receipt returned after a successful claim
type ClaimResponse struct {
	ClaimID   uuid.UUID      `json:"claim_id"`
	Bet       BetResponse    `json:"bet"`
	Payout    PayoutResponse `json:"payout"`
	DevWallet string         `json:"dev_wallet"`
	Transfers []uuid.UUID    `json:"transfers"`
}

// ClaimQuoteResponse previews a claim without changing state
type ClaimQuoteResponse struct {
	Claimable bool            `json:"claimable"`
	Reason    string          `json:"reason,omitempty"`
	Bet       BetResponse     `json:"bet"`
	Payout    *PayoutResponse `json:"payout,omitempty"`
}

// PositionEntry is one record with its payout if its side wins now
type PositionEntry struct {
	Bet      BetResponse     `json:"bet"`
	Estimate *PayoutResponse `json:"estimate,omitempty"`
}

// PositionResponse lists the caller's records in one market
type PositionResponse struct {
	MarketEventID string              `json:"market_event_id"`
	Status        models.MarketStatus `json:"status"`
	Positions     []PositionEntry     `json:"positions"`
	Odds          Odds                `json:"odds"`
}

// ToBetResponse converts models.UserBet to BetResponse
func ToBetResponse(bet *models.UserBet, engine PayoutEngine) BetResponse {
	return BetResponse{
		ID:            bet.ID,
		MarketEventID: bet.MarketEventID,
		Owner:         bet.Owner,
		Slot:          bet.Slot,
		Outcome:       bet.OutcomeID,
		Amount:        bet.Amount,
		DisplayAmount: engine.Display(bet.Amount),
		Claimed:       bet.Claimed,
		ClaimedAt:     bet.ClaimedAt,
		CreatedAt:     bet.CreatedAt,
		UpdatedAt:     bet.UpdatedAt,
	}
}

// ToPayoutResponse converts models.Payout to PayoutResponse
func ToPayoutResponse(p models.Payout, engine PayoutEngine) *PayoutResponse {
	return &PayoutResponse{
		Stake:             p.Stake,
		TotalPool:         p.TotalPool,
		WinningPool:       p.WinningPool,
		TotalPayout:       p.TotalPayout,
		DevFee:            p.DevFee,
		UserPayout:        p.UserPayout,
		DisplayUserPayout: engine.Display(p.UserPayout),
	}
}
