package app

import (
	"context"
	"time"

	"github.com/joefazee/arena/app/database"
	"github.com/joefazee/arena/app/escrow"
	"github.com/joefazee/arena/app/ledger"
	"github.com/joefazee/arena/app/markets"
	"github.com/joefazee/arena/app/prediction"
	"github.com/joefazee/arena/app/user"
	"github.com/joefazee/arena/internal/cache"
	"github.com/joefazee/arena/internal/logger"
	"github.com/joefazee/arena/internal/nexus"
)

type Config struct {
	DB    database.Config
	Log   logger.Config
	Cache cache.Config

	User       user.Config
	Escrow     escrow.Config
	Ledger     ledger.Config
	Markets    markets.Config
	Prediction prediction.Config

	AppHost         string        `env:"APP_HOST" env-default:"localhost"`
	AppPort         string        `env:"APP_PORT" env-default:"8080"`
	Env             string        `env:"APP_ENV" env-default:"development"`
	MigrateOnStart  bool          `env:"APP_MIGRATE_ON_START"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" env-default:"15s"`
}

// IsProduction switches on the secret checks in the loader
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) Addr() string {
	return c.AppHost + ":" + c.AppPort
}

// Defaults gathers every module's GetDefaultConfig
func Defaults() *Config {
	return &Config{
		User:       *user.GetDefaultConfig(),
		Escrow:     *escrow.GetDefaultConfig(),
		Ledger:     *ledger.GetDefaultConfig(),
		Markets:    *markets.GetDefaultConfig(),
		Prediction: *prediction.GetDefaultConfig(),
	}
}

// LoadConfig loads the application configuration from environment variables or a config file.
func LoadConfig(ctx context.Context) (*Config, error) {
	c := &Config{}
	err := nexus.NewLoader().Load(ctx, c, Defaults())
	return c, err
}
