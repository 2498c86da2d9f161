package nexus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feeConfig struct {
	MinBet uint64 `env:"TEST_MIN_BET"`
}

func (c *feeConfig) Validate() error {
	if c.MinBet == 0 {
		return errors.New("min bet must be positive")
	}
	return nil
}

type rootConfig struct {
	Fees    feeConfig
	Seed    string        `env:"TEST_SEED" secret:"true"`
	Host    string        `env:"TEST_HOST" validate:"required"`
	Timeout time.Duration `env:"TEST_TIMEOUT"`
	Settle  bool          `env:"TEST_SETTLE"`
	Env     string        `env:"TEST_ENV"`
}

func (c *rootConfig) IsProduction() bool { return c.Env == "production" }

func defaults() *rootConfig {
	return &rootConfig{
		Fees:    feeConfig{MinBet: 1},
		Seed:    "development-seed-value-0000000000",
		Host:    "localhost",
		Timeout: 5 * time.Second,
		Settle:  true,
	}
}

func load(t *testing.T, opts ...LoaderOption) (*rootConfig, error) {
	t.Helper()
	cfg := &rootConfig{}
	err := NewLoader(append([]LoaderOption{WithOnlyEnvironment()}, opts...)...).Load(context.Background(), cfg, defaults())
	return cfg, err
}

func TestLoad_DefaultsThenEnvironment(t *testing.T) {
	t.Setenv("TEST_TIMEOUT", "250ms")
	t.Setenv("TEST_SETTLE", "false")

	cfg, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, uint64(1), cfg.Fees.MinBet)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.False(t, cfg.Settle, "environment overrides a true default")
}

func TestLoad_NestedValidate(t *testing.T) {
	t.Setenv("TEST_MIN_BET", "0")

	_, err := load(t)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.ErrorContains(t, err, "Fees: min bet must be positive")
}

func TestLoad_StructTags(t *testing.T) {
	cfg := &rootConfig{}
	err := NewLoader(WithOnlyEnvironment()).Load(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestLoad_ProductionSecrets(t *testing.T) {
	t.Setenv("TEST_ENV", "production")

	_, err := load(t)
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeSecurityCheck, ce.Code)
	assert.ErrorContains(t, err, "Seed")

	t.Setenv("TEST_SEED", "12345678901234567890")
	_, err = load(t)
	assert.ErrorContains(t, err, "placeholder")

	t.Setenv("TEST_SEED", "q8Zr3vXk1pLm9TwY4nBc7HdJ2sFg6Ea0")
	_, err = load(t)
	assert.NoError(t, err)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(file, []byte("host: file-host\nfees:\n  minbet: 5\n"), 0o600))
	t.Setenv("TEST_MIN_BET", "7")

	cfg := &rootConfig{}
	err := NewLoader(WithFileName(file)).Load(context.Background(), cfg, defaults())
	require.NoError(t, err)
	assert.Equal(t, "file-host", cfg.Host)
	assert.Equal(t, uint64(7), cfg.Fees.MinBet)
}

func TestLoad_RejectsNonPointer(t *testing.T) {
	err := NewLoader().Load(context.Background(), rootConfig{}, nil)
	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrCodeInvalidType, ce.Code)
}

func TestIsSequence(t *testing.T) {
	assert.True(t, isSequence("12345678901234567890123456789012"))
	assert.False(t, isSequence("1234567"))
	assert.False(t, isSequence("12345679"))
}
