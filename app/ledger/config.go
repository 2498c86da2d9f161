package ledger

import "github.com/joefazee/arena/models"

// Config controls the ledger's faucet and how amounts are displayed
type Config struct {
	AllowDeposits    bool   `env:"LEDGER_ALLOW_DEPOSITS"`
	MaxDepositAmount uint64 `env:"LEDGER_MAX_DEPOSIT_AMOUNT"`
	DisplayDecimals  int32  `env:"LEDGER_DISPLAY_DECIMALS"`
}

func (c *Config) Validate() error {
	type validation struct {
		ok  bool
		err error
	}

	checks := []validation{
		{c.MaxDepositAmount > 0 && c.MaxDepositAmount <= models.MaxAmount, models.ErrInvalidTransactionAmount},
		{c.DisplayDecimals >= 0 && c.DisplayDecimals <= 18, models.ErrInvalidAmountDecimals},
	}

	for _, v := range checks {
		if !v.ok {
			return v.err
		}
	}
	return nil
}

// GetDefaultConfig returns the ledger defaults. Deposits are off.
func GetDefaultConfig() *Config {
	return &Config{
		AllowDeposits:    false,
		MaxDepositAmount: 1_000_000_000_000,
		DisplayDecimals:  9,
	}
}
