package models

import (
	"math"
	"regexp"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/joefazee/arena/internal/validator"
)

// MarketStatus represents the lifecycle stage of a market
type MarketStatus string

const (
	MarketStatusOpen    MarketStatus = "open"
	MarketStatusLocked  MarketStatus = "locked"
	MarketStatusSettled MarketStatus = "settled"
)

// Valid reports whether s is one of the three known statuses
func (s MarketStatus) Valid() bool {
	return validator.In(s, MarketStatusOpen, MarketStatusLocked, MarketStatusSettled)
}

// Outcome selects one side of a two-outcome market
type Outcome uint8

const (
	OutcomeA Outcome = 0
	OutcomeB Outcome = 1
)

// Valid reports whether o is 0 or 1
func (o Outcome) Valid() bool {
	return o <= OutcomeB
}

func (o Outcome) String() string {
	switch o {
	case OutcomeA:
		return "A"
	case OutcomeB:
		return "B"
	default:
		return "invalid"
	}
}

const (
	// MaxEventIDLength bounds the event id; it is also a derivation seed.
	MaxEventIDLength = 32

	// MaxAmount is the largest pool or stake the store can hold (signed bigint).
	MaxAmount uint64 = math.MaxInt64
)

var eventIDRgx = regexp.MustCompile(`^[A-Za-z0-9._:\-]+$`)

// Market is the record governing one predicted event
type Market struct {
	EventID        string       `gorm:"type:varchar(32);primaryKey" json:"event_id"`
	Address        string       `gorm:"type:varchar(42);not null;uniqueIndex" json:"address"`
	OracleFeed     string       `gorm:"type:varchar(42);not null" json:"oracle_feed"`
	DevWallet      string       `gorm:"type:varchar(42);not null" json:"dev_wallet"`
	PoolA          uint64       `gorm:"type:bigint;not null;default:0" json:"pool_a"`
	PoolB          uint64       `gorm:"type:bigint;not null;default:0" json:"pool_b"`
	TotalPool      uint64       `gorm:"type:bigint;not null;default:0" json:"total_pool"`
	EndTime        int64        `gorm:"not null;index" json:"end_time"`
	Status         MarketStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	Authority      string       `gorm:"type:varchar(42);not null;index" json:"authority"`
	WinningOutcome Outcome      `gorm:"type:smallint;not null;default:0" json:"winning_outcome"`
	EscrowAddress  string       `gorm:"type:varchar(42);not null;uniqueIndex" json:"escrow_address"`
	EscrowNonce    uint8        `gorm:"type:smallint;not null" json:"escrow_nonce"`
	SettledAt      *time.Time   `gorm:"type:timestamptz" json:"settled_at"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	Bets []UserBet `gorm:"foreignKey:MarketEventID" json:"-"`
}

// TableName specifies the table name for Market model
func (*Market) TableName() string {
	return "markets"
}

// EndsAt returns the betting deadline as a time
func (m *Market) EndsAt() time.Time {
	return time.Unix(m.EndTime, 0).UTC()
}

// IsExpired reports whether the betting deadline has been reached
func (m *Market) IsExpired(now time.Time) bool {
	return now.Unix() >= m.EndTime
}

// IsBalanced checks pool_a + pool_b == total_pool without overflowing
func (m *Market) IsBalanced() bool {
	if m.PoolA > math.MaxUint64-m.PoolB {
		return false
	}
	return m.PoolA+m.PoolB == m.TotalPool
}

// AcceptsBets checks status first, then the deadline
func (m *Market) AcceptsBets(now time.Time) error {
	switch m.Status {
	case MarketStatusOpen:
		if m.IsExpired(now) {
			return ErrMarketExpired
		}
		return nil
	case MarketStatusLocked, MarketStatusSettled:
		return ErrMarketNotOpen
	default:
		return ErrInconsistentState
	}
}

// AddStake applies a bet to the pools after every precondition passes
func (m *Market) AddStake(outcome Outcome, amount uint64, now time.Time) error {
	if err := m.AcceptsBets(now); err != nil {
		return err
	}
	if !outcome.Valid() {
		return ErrInvalidOutcome
	}
	if amount == 0 {
		return ErrInvalidBetAmount
	}
	if !m.IsBalanced() {
		return ErrInconsistentState
	}
	if amount > MaxAmount-m.TotalPool {
		return ErrArithmeticOverflow
	}

	switch outcome {
	case OutcomeA:
		m.PoolA += amount
	case OutcomeB:
		m.PoolB += amount
	}
	m.TotalPool += amount
	return nil
}

// IsAuthority reports whether caller is the market's stored authority
func (m *Market) IsAuthority(caller string) bool {
	if !common.IsHexAddress(caller) {
		return false
	}
	return common.HexToAddress(caller) == common.HexToAddress(m.Authority)
}

// Lock moves an open market to locked
func (m *Market) Lock(caller string) error {
	if !m.IsAuthority(caller) {
		return ErrUnauthorized
	}

	switch m.Status {
	case MarketStatusOpen:
		m.Status = MarketStatusLocked
		return nil
	case MarketStatusLocked, MarketStatusSettled:
		return ErrInconsistentState
	default:
		return ErrInconsistentState
	}
}

// Settle records the winning outcome. When requireLock is false an open
// market may be settled directly.
func (m *Market) Settle(caller string, outcome Outcome, requireLock bool, now time.Time) error {
	if !m.IsAuthority(caller) {
		return ErrUnauthorized
	}
	if !outcome.Valid() {
		return ErrInvalidOutcome
	}

	switch m.Status {
	case MarketStatusOpen:
		if requireLock {
			return ErrInconsistentState
		}
	case MarketStatusLocked:
	case MarketStatusSettled:
		return ErrInconsistentState
	default:
		return ErrInconsistentState
	}

	settledAt := now.UTC()
	m.Status = MarketStatusSettled
	m.WinningOutcome = outcome
	m.SettledAt = &settledAt
	return nil
}

// IsSettled reports whether the winning outcome is authoritative
func (m *Market) IsSettled() bool {
	return m.Status == MarketStatusSettled
}

// PoolFor returns the pool backing an outcome
func (m *Market) PoolFor(outcome Outcome) (uint64, error) {
	switch outcome {
	case OutcomeA:
		return m.PoolA, nil
	case OutcomeB:
		return m.PoolB, nil
	default:
		return 0, ErrInvalidOutcome
	}
}

// WinningPool returns the pool of the winning outcome; only valid once settled
func (m *Market) WinningPool() (uint64, error) {
	if !m.IsSettled() {
		return 0, ErrMarketNotSettled
	}
	pool, err := m.PoolFor(m.WinningOutcome)
	if err != nil {
		return 0, ErrInconsistentState
	}
	return pool, nil
}

// ValidateEventID checks the bounded, printable event identifier
func ValidateEventID(eventID string) error {
	if !validator.NotBlank(eventID) ||
		len(eventID) > MaxEventIDLength ||
		!validator.Matches(eventID, eventIDRgx) {
		return ErrInvalidEventID
	}
	return nil
}

// Validate performs validation on the market model
func (m *Market) Validate() error {
	if err := ValidateEventID(m.EventID); err != nil {
		return err
	}
	for _, addr := range []string{m.Address, m.OracleFeed, m.DevWallet, m.Authority, m.EscrowAddress} {
		if !common.IsHexAddress(addr) {
			return ErrInvalidAddress
		}
	}
	if m.EndTime <= 0 {
		return ErrInvalidEndTime
	}
	if !m.Status.Valid() {
		return ErrInvalidMarketStatus
	}
	if !m.IsBalanced() {
		return ErrUnbalancedPools
	}
	return nil
}
