package markets

import (
	"time"

	"github.com/joefazee/arena/app/api"
	"github.com/joefazee/arena/models"
)

// InitializeMarketRequest represents the request to open a market
// @Description Request payload for initializing a two-outcome market
type InitializeMarketRequest struct {
	// EventID identifies the event; it also seeds the derived addresses
	EventID string `json:"event_id" binding:"required,max=32"`

	// OracleFeed is recorded for reference only
	OracleFeed string `json:"oracle_feed" binding:"required,eth_addr"`

	// DevWallet receives the fee on every payout
	DevWallet string `json:"dev_wallet" binding:"required,eth_addr"`

	// EndTime is the betting deadline in unix seconds
	EndTime int64 `json:"end_time" binding:"required,gt=0"`
}

// SettleMarketRequest carries the winning outcome
// @Description Request payload for settling a market
type SettleMarketRequest struct {
	// Outcome is 0 for A, 1 for B
	Outcome *uint8 `json:"outcome" binding:"required"`
}

// MarketFilters represents filters for market queries
type MarketFilters struct {
	Status    string `form:"status" binding:"omitempty,oneof=open locked settled"`
	Authority string `form:"authority" binding:"omitempty,eth_addr"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	api.PageQuery
}

// MarketResponse represents a market in API responses
type MarketResponse struct {
	EventID        string              `json:"event_id"`
	Address        string              `json:"address"`
	OracleFeed     string              `json:"oracle_feed"`
	DevWallet      string              `json:"dev_wallet"`
	PoolA          uint64              `json:"pool_a"`
	PoolB          uint64              `json:"pool_b"`
	TotalPool      uint64              `json:"total_pool"`
	EndTime        int64               `json:"end_time"`
	EndsAt         time.Time           `json:"ends_at"`
	Status         models.MarketStatus `json:"status"`
	Authority      string              `json:"authority"`
	WinningOutcome *models.Outcome     `json:"winning_outcome,omitempty"`
	EscrowAddress  string              `json:"escrow_address"`
	EscrowNonce    uint8               `json:"escrow_nonce"`
	SettledAt      *time.Time          `json:"settled_at,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// MarketListResponse represents paginated market list response
type MarketListResponse struct {
	Markets []MarketResponse `json:"markets"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
}

// ToMarketResponse converts models.Market to MarketResponse. The winning
// outcome is only exposed once the market is settled.
func ToMarketResponse(m *models.Market) *MarketResponse {
	resp := &MarketResponse{
		EventID:       m.EventID,
		Address:       m.Address,
		OracleFeed:    m.OracleFeed,
		DevWallet:     m.DevWallet,
		PoolA:         m.PoolA,
		PoolB:         m.PoolB,
		TotalPool:     m.TotalPool,
		EndTime:       m.EndTime,
		EndsAt:        m.EndsAt(),
		Status:        m.Status,
		Authority:     m.Authority,
		EscrowAddress: m.EscrowAddress,
		EscrowNonce:   m.EscrowNonce,
		SettledAt:     m.SettledAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	if m.IsSettled() {
		outcome := m.WinningOutcome
		resp.WinningOutcome = &outcome
	}

	return resp
}
