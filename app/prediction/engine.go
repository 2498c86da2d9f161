package prediction

import (
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/joefazee/arena/app/ledger"
	"github.com/joefazee/arena/models"
)

// payoutEngine implements the PayoutEngine interface
type payoutEngine struct {
	config *Config
}

// NewPayoutEngine creates a new payout engine
func NewPayoutEngine(config *Config) PayoutEngine {
	return &payoutEngine{config: config}
}

// Split divides the pool for one winning stake. The product stake*totalPool
// is formed in 256 bits so it cannot wrap; the quotient is floored.
func (e *payoutEngine) Split(stake, totalPool, winningPool uint64) (models.Payout, error) {
	if winningPool == 0 {
		return models.Payout{}, models.ErrInconsistentState
	}
	if stake == 0 {
		return models.Payout{}, models.ErrInvalidBetAmount
	}
	if stake > winningPool || winningPool > totalPool {
		return models.Payout{}, models.ErrInconsistentState
	}

	total := new(uint256.Int).Mul(uint256.NewInt(stake), uint256.NewInt(totalPool))
	total.Div(total, uint256.NewInt(winningPool))
	if !total.IsUint64() {
		return models.Payout{}, models.ErrArithmeticOverflow
	}

	totalPayout := total.Uint64()
	devFee := totalPayout / models.DevFeeDivisor

	return models.Payout{
		Stake:       stake,
		TotalPool:   totalPool,
		WinningPool: winningPool,
		TotalPayout: totalPayout,
		DevFee:      devFee,
		UserPayout:  totalPayout - devFee,
	}, nil
}

// Payout computes the split owed on a settled, winning bet
func (e *payoutEngine) Payout(market *models.Market, bet *models.UserBet) (models.Payout, error) {
	winningPool, err := market.WinningPool()
	if err != nil {
		return models.Payout{}, err
	}
	return e.Split(bet.Amount, market.TotalPool, winningPool)
}

// Estimate computes what the bet would pay if its outcome won with the
// pools as they stand now
func (e *payoutEngine) Estimate(market *models.Market, bet *models.UserBet) (models.Payout, error) {
	pool, err := market.PoolFor(bet.OutcomeID)
	if err != nil {
		return models.Payout{}, err
	}
	return e.Split(bet.Amount, market.TotalPool, pool)
}

// Odds returns the implied probability and gross multiplier of each side
func (e *payoutEngine) Odds(market *models.Market) Odds {
	half := decimal.NewFromFloat(0.5)
	if market.TotalPool == 0 {
		return Odds{ProbabilityA: half, ProbabilityB: half, MultiplierA: decimal.Zero, MultiplierB: decimal.Zero}
	}

	total := decimal.NewFromUint64(market.TotalPool)
	side := func(pool uint64) (decimal.Decimal, decimal.Decimal) {
		if pool == 0 {
			return decimal.Zero, decimal.Zero
		}
		p := decimal.NewFromUint64(pool)
		return p.DivRound(total, 4), total.DivRound(p, 4)
	}

	probA, multA := side(market.PoolA)
	probB, multB := side(market.PoolB)
	return Odds{ProbabilityA: probA, ProbabilityB: probB, MultiplierA: multA, MultiplierB: multB}
}

// Display renders base units with the configured decimals
func (e *payoutEngine) Display(amount uint64) decimal.Decimal {
	return ledger.DisplayAmount(amount, e.config.AmountDecimals)
}
