package markets

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/joefazee/arena/internal/scheduler"
	"github.com/joefazee/arena/models"
)

// Config represents the configuration for the markets module
type Config struct {
	RequireLockBeforeSettle bool          `env:"MARKETS_REQUIRE_LOCK_BEFORE_SETTLE"`
	CacheTTL                time.Duration `env:"MARKETS_CACHE_TTL"`

	// SweepSchedule enables the expired-market locker when set
	SweepSchedule  string `env:"MARKET_SWEEP_SCHEDULE"`
	SweepOperator  string `env:"MARKET_SWEEP_OPERATOR"`
	SweepBatchSize int    `env:"MARKET_SWEEP_BATCH_SIZE"`
}

// SweepEnabled reports whether the locker job should be scheduled
func (c *Config) SweepEnabled() bool {
	return c.SweepSchedule != ""
}

// Validate validates the market configuration
func (c *Config) Validate() error {
	if c.CacheTTL < 0 {
		return models.ErrInvalidCacheTTL
	}

	if !c.SweepEnabled() {
		return nil
	}

	if err := scheduler.ValidateSpec(c.SweepSchedule); err != nil {
		return models.ErrInvalidSweepConfig
	}
	if !common.IsHexAddress(c.SweepOperator) || c.SweepBatchSize <= 0 {
		return models.ErrInvalidSweepConfig
	}

	return nil
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		RequireLockBeforeSettle: false,
		CacheTTL:                30 * time.Second,
		SweepSchedule:           "",
		SweepBatchSize:          50,
	}
}
