package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingExecutor struct {
	mu       sync.Mutex
	executed []*Job
	err      error
}

func (e *recordingExecutor) Execute(_ context.Context, job *Job) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.executed = append(e.executed, job)
	return e.err
}

func (e *recordingExecutor) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.executed)
}

func TestDefaultSchedulerConfig(t *testing.T) {
	config := DefaultSchedulerConfig()

	assert.True(t, config.Enabled)
	assert.Equal(t, 2, config.MaxConcurrentJobs)
	assert.Equal(t, 5*time.Minute, config.JobTimeout)
	assert.Equal(t, 3, config.RetryAttempts)
	assert.Equal(t, 30*time.Second, config.RetryDelay)
}

func TestJob_Lifecycle(t *testing.T) {
	t.Run("start marks running", func(t *testing.T) {
		job := NewJob(time.Now(), 3)
		assert.Equal(t, JobStatusPending, job.Status)
		assert.Nil(t, job.StartedAt)

		job.Start()

		assert.Equal(t, JobStatusRunning, job.Status)
		assert.NotNil(t, job.StartedAt)
	})

	t.Run("complete marks success", func(t *testing.T) {
		job := NewJob(time.Now(), 3)
		job.Start()
		job.Complete()

		assert.Equal(t, JobStatusSuccess, job.Status)
		assert.NotNil(t, job.CompletedAt)
	})

	t.Run("fail records error", func(t *testing.T) {
		job := NewJob(time.Now(), 3)
		job.Start()
		job.Fail("sweep blew up")

		assert.Equal(t, JobStatusFailed, job.Status)
		assert.Equal(t, "sweep blew up", job.Error)
		assert.NotNil(t, job.CompletedAt)
	})

	t.Run("retry bookkeeping", func(t *testing.T) {
		job := NewJob(time.Now(), 2)
		job.Start()
		job.Fail("first failure")

		require.True(t, job.ShouldRetry())
		job.ScheduleRetry(time.Minute)

		assert.Equal(t, 1, job.RetryCount)
		assert.Equal(t, JobStatusPending, job.Status)
		assert.NotNil(t, job.NextRetryAt)
		assert.Empty(t, job.Error)

		job.Start()
		job.Fail("second failure")
		require.True(t, job.ShouldRetry())
		job.ScheduleRetry(time.Minute)

		job.Start()
		job.Fail("third failure")
		assert.False(t, job.ShouldRetry())
	})
}

func TestScheduler_SubmitJob_NotRunning(t *testing.T) {
	s := NewScheduler(DefaultSchedulerConfig(), &recordingExecutor{}, zap.NewNop())

	err := s.SubmitSweep(time.Now())

	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
}

func TestScheduler_ExecutesSubmittedJobs(t *testing.T) {
	executor := &recordingExecutor{}
	s := NewScheduler(DefaultSchedulerConfig(), executor, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, s.Start(ctx))

	cutoff := time.Now()
	require.NoError(t, s.SubmitSweep(cutoff))

	assert.Eventually(t, func() bool {
		return executor.count() == 1
	}, 2*time.Second, 10*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))

	executor.mu.Lock()
	defer executor.mu.Unlock()
	require.Len(t, executor.executed, 1)
	assert.Equal(t, JobStatusSuccess, executor.executed[0].Status)
	assert.WithinDuration(t, cutoff, executor.executed[0].Cutoff, time.Second)
}

func TestScheduler_StartIdempotent(t *testing.T) {
	s := NewScheduler(DefaultSchedulerConfig(), &recordingExecutor{}, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Start(ctx))

	stopCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))
	require.NoError(t, s.Stop(stopCtx))
}

func TestDefaultSweepTriggerConfig(t *testing.T) {
	config := DefaultSweepTriggerConfig()

	assert.True(t, config.Enabled)
	assert.Equal(t, time.Minute, config.Interval)
	assert.NoError(t, config.Validate())
}

func TestSweepTriggerConfig_Validate(t *testing.T) {
	config := SweepTriggerConfig{Enabled: true, Interval: 0}

	assert.ErrorIs(t, config.Validate(), ErrInvalidConfig)
}

func TestSweepTrigger_TriggerNow_NotRunning(t *testing.T) {
	s := NewScheduler(DefaultSchedulerConfig(), &recordingExecutor{}, zap.NewNop())
	trigger := NewSweepTrigger(DefaultSweepTriggerConfig(), s, zap.NewNop())

	err := trigger.TriggerNow()

	assert.ErrorIs(t, err, ErrSchedulerNotRunning)
}

func TestSweepTrigger_SubmitsOnInterval(t *testing.T) {
	executor := &recordingExecutor{}
	s := NewScheduler(DefaultSchedulerConfig(), executor, zap.NewNop())

	ctx := context.Background()
	require.NoError(t, s.Start(ctx))
	defer func() {
		stopCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		_ = s.Stop(stopCtx)
	}()

	trigger := NewSweepTrigger(SweepTriggerConfig{Enabled: true, Interval: 20 * time.Millisecond}, s, zap.NewNop())
	require.NoError(t, trigger.Start(ctx))
	defer trigger.Stop()

	assert.Eventually(t, func() bool {
		return executor.count() >= 2
	}, 2*time.Second, 10*time.Millisecond)

	status := trigger.GetStatus()
	assert.Equal(t, true, status["running"])
	assert.Contains(t, status, "last_run_at")
}
