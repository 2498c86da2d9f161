package prediction

import (
	"github.com/joefazee/arena/models"
)

// Config represents the configuration for the betting module
type Config struct {
	// OutcomePolicy decides how a top-up on the other side is treated
	OutcomePolicy models.OutcomePolicy `env:"PREDICTION_OUTCOME_POLICY"`

	MinBetAmount uint64 `env:"PREDICTION_MIN_BET_AMOUNT"`

	// AmountDecimals is used only to render base units for display
	AmountDecimals int32 `env:"PREDICTION_AMOUNT_DECIMALS"`
}

func (c *Config) Validate() error {
	type validation struct {
		ok  bool
		err error
	}

	checks := []validation{
		{c.OutcomePolicy.Valid(), models.ErrInvalidOutcomePolicy},
		{c.MinBetAmount > 0, models.ErrInvalidBetAmount},
		{c.AmountDecimals >= 0 && c.AmountDecimals <= 18, models.ErrInvalidAmountDecimals},
	}

	for _, v := range checks {
		if !v.ok {
			return v.err
		}
	}
	return nil
}

// GetDefaultConfig returns the default betting configuration
func GetDefaultConfig() *Config {
	return &Config{
		OutcomePolicy:  models.OutcomePolicyOverwrite,
		MinBetAmount:   1,
		AmountDecimals: 9,
	}
}
