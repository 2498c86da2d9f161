package markets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/joefazee/arena/models"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		err    error
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "negative ttl", modify: func(c *Config) { c.CacheTTL = -time.Second }, err: models.ErrInvalidCacheTTL},
		{name: "sweep enabled", modify: func(c *Config) {
			c.SweepSchedule = "@every 1m"
			c.SweepOperator = testAuthority
		}},
		{name: "sweep without operator", modify: func(c *Config) {
			c.SweepSchedule = "@every 1m"
		}, err: models.ErrInvalidSweepConfig},
		{name: "sweep with bad schedule", modify: func(c *Config) {
			c.SweepSchedule = "whenever"
			c.SweepOperator = testAuthority
		}, err: models.ErrInvalidSweepConfig},
		{name: "sweep with zero batch", modify: func(c *Config) {
			c.SweepSchedule = "@every 1m"
			c.SweepOperator = testAuthority
			c.SweepBatchSize = 0
		}, err: models.ErrInvalidSweepConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := GetDefaultConfig()
			tt.modify(c)
			err := c.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestGetDefaultConfig(t *testing.T) {
	c := GetDefaultConfig()
	assert.False(t, c.RequireLockBeforeSettle)
	assert.False(t, c.SweepEnabled())
}
