package escrow

import "github.com/joefazee/arena/models"

const minSeedLength = 32

// Config holds the program identity every derived address is bound to
type Config struct {
	ProgramSeed string `env:"ESCROW_PROGRAM_SEED" secret:"true"`
}

func (c *Config) Validate() error {
	if len(c.ProgramSeed) < minSeedLength {
		return models.ErrInvalidProgramSeed
	}
	return nil
}

// GetDefaultConfig returns a development seed. Production deployments must
// override it; changing it moves every escrow address.
func GetDefaultConfig() *Config {
	return &Config{
		ProgramSeed: "arena-escrow-program-development-seed",
	}
}
