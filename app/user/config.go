package user

import (
	"errors"
	"time"

	"github.com/nyaruka/phonenumbers"
)

type Config struct {
	SymmetricKey      string        `env:"SYMMETRIC_KEY" secret:"true"`
	TokenTTL          time.Duration `env:"USER_TOKEN_TTL"`
	DefaultRegion     string        `env:"USER_DEFAULT_REGION"`
	PrincipalCacheTTL time.Duration `env:"USER_PRINCIPAL_CACHE_TTL"`
}

func (c *Config) Validate() error {
	type validation struct {
		ok  bool
		err error
	}

	checks := []validation{
		{len(c.SymmetricKey) == 32, errors.New("symmetric key must be exactly 32 characters")},
		{c.TokenTTL > 0, errors.New("token ttl must be positive")},
		{phonenumbers.GetCountryCodeForRegion(c.DefaultRegion) != 0, errors.New("default region is not a known phone region")},
		{c.PrincipalCacheTTL >= 0, errors.New("principal cache ttl cannot be negative")},
	}

	for _, v := range checks {
		if !v.ok {
			return v.err
		}
	}
	return nil
}

func GetDefaultConfig() *Config {
	return &Config{
		SymmetricKey:      "12345678901234567890123456789012",
		TokenTTL:          24 * time.Hour,
		DefaultRegion:     "NG",
		PrincipalCacheTTL: 5 * time.Minute,
	}
}
