package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/joefazee/arena/internal/logger"
)

// Job is a unit of scheduled work. It receives the runner's base context,
// which is cancelled on shutdown.
type Job func(ctx context.Context)

type Runner struct {
	cron    *cron.Cron
	logger  logger.Logger
	baseCtx context.Context
}

// New creates a runner whose specs accept an optional seconds field.
// Overlapping runs of the same job are skipped and panics are logged.
func New(log logger.Logger, baseCtx context.Context) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	if log == nil {
		log = logger.NewNullLogger()
	}
	adapter := cronLogger{log: log}
	return &Runner{
		cron: cron.New(
			cron.WithParser(specParser),
			cron.WithLogger(adapter),
			cron.WithChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter)),
		),
		logger:  log,
		baseCtx: baseCtx,
	}
}

var specParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidateSpec reports whether spec would be accepted by Add
func ValidateSpec(spec string) error {
	if _, err := specParser.Parse(spec); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return nil
}

// Add registers job under a cron spec
func (r *Runner) Add(spec string, job Job) (cron.EntryID, error) {
	id, err := r.cron.AddFunc(spec, func() {
		job(r.baseCtx)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to schedule %q: %w", spec, err)
	}
	return id, nil
}

// Entries returns the number of registered jobs
func (r *Runner) Entries() int {
	return len(r.cron.Entries())
}

func (r *Runner) Start() {
	r.logger.Info("scheduler started", map[string]interface{}{"jobs": r.Entries()})
	r.cron.Start()
}

// Stop halts the scheduler and waits for running jobs to finish
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("scheduler stopped", nil)
}

// Run starts the scheduler and blocks until ctx is done
func (r *Runner) Run(ctx context.Context) error {
	r.Start()
	<-ctx.Done()
	r.Stop()
	return nil
}

// cronLogger adapts logger.Logger to cron's key/value logger
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(msg, toFields(keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := toFields(keysAndValues)
	fields["msg"] = msg
	l.log.Error(err, fields)
}

func toFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
