package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SweepTriggerConfig holds sweep trigger configuration
type SweepTriggerConfig struct {
	Enabled  bool
	Interval time.Duration
}

// DefaultSweepTriggerConfig returns default sweep trigger configuration
func DefaultSweepTriggerConfig() SweepTriggerConfig {
	return SweepTriggerConfig{
		Enabled:  true,
		Interval: time.Minute,
	}
}

// Validate checks the trigger configuration
func (c SweepTriggerConfig) Validate() error {
	if c.Interval <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// SweepTrigger periodically submits expiry sweep jobs to the scheduler
type SweepTrigger struct {
	config    SweepTriggerConfig
	scheduler *Scheduler
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	lastRunAt time.Time
}

// NewSweepTrigger creates a new sweep trigger
func NewSweepTrigger(config SweepTriggerConfig, scheduler *Scheduler, logger *zap.Logger) *SweepTrigger {
	return &SweepTrigger{
		config:    config,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Start begins the periodic sweep loop
func (t *SweepTrigger) Start(ctx context.Context) error {
	if err := t.config.Validate(); err != nil {
		return err
	}

	t.mu.Lock()
	if t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = true
	t.mu.Unlock()

	if !t.config.Enabled {
		t.logger.Info("Sweep trigger disabled")
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel

	t.wg.Add(1)
	go t.run(ctx)

	t.logger.Info("Sweep trigger started",
		zap.Duration("interval", t.config.Interval),
	)

	return nil
}

// Stop stops the periodic sweep loop
func (t *SweepTrigger) Stop() {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return
	}
	t.isRunning = false
	t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}
	t.wg.Wait()

	t.logger.Info("Sweep trigger stopped")
}

// TriggerNow submits a sweep job immediately
func (t *SweepTrigger) TriggerNow() error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	t.lastRunAt = time.Now()
	t.mu.Unlock()

	return t.scheduler.SubmitSweep(time.Now())
}

// GetStatus returns the current state of the trigger
func (t *SweepTrigger) GetStatus() map[string]interface{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	status := map[string]interface{}{
		"running":  t.isRunning,
		"enabled":  t.config.Enabled,
		"interval": t.config.Interval.String(),
	}
	if !t.lastRunAt.IsZero() {
		status["last_run_at"] = t.lastRunAt.Format(time.RFC3339)
	}
	return status
}

func (t *SweepTrigger) run(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.mu.Lock()
			t.lastRunAt = time.Now()
			t.mu.Unlock()

			if err := t.scheduler.SubmitSweep(time.Now()); err != nil {
				t.logger.Warn("Failed to submit sweep job", zap.Error(err))
			}
		}
	}
}
