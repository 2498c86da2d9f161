package markets

import (
	"context"

	"github.com/joefazee/arena/internal/logger"
	"github.com/joefazee/arena/internal/scheduler"
)

// Sweeper periodically locks the operator's markets whose betting window
// has closed. It acts only as the configured operator, so markets owned by
// other authorities are never touched.
type Sweeper struct {
	service Service
	config  *Config
	logger  logger.Logger
}

func NewSweeper(service Service, config *Config, log logger.Logger) *Sweeper {
	return &Sweeper{service: service, config: config, logger: log}
}

// Register schedules the sweep. It is a no-op when no schedule is configured.
func (s *Sweeper) Register(r *scheduler.Runner) error {
	if !s.config.SweepEnabled() {
		return nil
	}
	_, err := r.Add(s.config.SweepSchedule, s.Run)
	return err
}

// Run performs one sweep
func (s *Sweeper) Run(ctx context.Context) {
	locked, err := s.service.LockExpired(ctx, s.config.SweepOperator, s.config.SweepBatchSize)
	if err != nil {
		s.logger.Error(err, map[string]interface{}{"job": "market-sweeper"})
		return
	}
	if locked > 0 {
		s.logger.Info("expired markets locked", map[string]interface{}{
			"count":    locked,
			"operator": s.config.SweepOperator,
		})
	}
}
