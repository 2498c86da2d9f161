package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joefazee/arena/internal/logger"
)

func TestRunner_Add(t *testing.T) {
	r := New(logger.NewNullLogger(), context.Background())

	_, err := r.Add("*/5 * * * * *", func(context.Context) {})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Entries())

	_, err = r.Add("not a spec", func(context.Context) {})
	assert.Error(t, err)
	assert.Equal(t, 1, r.Entries())
}

func TestRunner_RunsJobsWithBaseContext(t *testing.T) {
	type ctxKey struct{}
	base := context.WithValue(context.Background(), ctxKey{}, "base")

	r := New(nil, base)
	var calls atomic.Int32
	var seen atomic.Value
	_, err := r.Add("@every 1s", func(ctx context.Context) {
		seen.Store(ctx.Value(ctxKey{}))
		calls.Add(1)
	})
	require.NoError(t, err)

	r.Start()
	defer r.Stop()

	assert.Eventually(t, func() bool { return calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	assert.Equal(t, "base", seen.Load())
}

func TestRunner_RunStopsOnCancel(t *testing.T) {
	r := New(logger.NewNullLogger(), nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}
}

type recordingLogger struct {
	logger.NullLogger
	errs atomic.Int32
}

func (l *recordingLogger) Error(_ error, _ map[string]interface{}) { l.errs.Add(1) }

func TestRunner_RecoversPanics(t *testing.T) {
	log := &recordingLogger{}
	r := New(log, context.Background())
	_, err := r.Add("@every 1s", func(context.Context) { panic(errors.New("boom")) })
	require.NoError(t, err)

	r.Start()
	defer r.Stop()

	assert.Eventually(t, func() bool { return log.errs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestToFields(t *testing.T) {
	fields := toFields([]interface{}{"entry", 1, "next", "soon", "dangling"})
	assert.Equal(t, map[string]interface{}{"entry": 1, "next": "soon"}, fields)
}

func TestValidateSpec(t *testing.T) {
	assert.NoError(t, ValidateSpec("@every 1m"))
	assert.NoError(t, ValidateSpec("*/30 * * * * *"))
	assert.NoError(t, ValidateSpec("0 * * * *"))
	assert.Error(t, ValidateSpec("every minute"))
	assert.Error(t, ValidateSpec(""))
}
