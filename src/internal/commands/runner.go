package commands

import (
	"context"
	"fmt"
	"sync"
	"time"

	kerrors "github.com/maksimkurb/keen-tray/src/internal/errors"
	"github.com/maksimkurb/keen-tray/src/internal/log"
)

// RestartableRunner runs a long-lived loop (the API server, the watch loop)
// in a goroutine and restarts it with exponential backoff when it returns an
// error or panics.
type RestartableRunner struct {
	name           string
	runFunc        func(ctx context.Context) error
	mu             sync.RWMutex
	running        bool
	ctx            context.Context
	cancel         context.CancelFunc
	done           chan struct{}
	lastError      error
	restartCount   int
	maxRestarts    int           // 0 means unlimited
	restartBackoff time.Duration // Initial backoff duration
	maxBackoff     time.Duration // Maximum backoff duration
}

// RunnerConfig contains configuration for RestartableRunner.
type RunnerConfig struct {
	Name           string
	MaxRestarts    int           // 0 = unlimited restarts
	RestartBackoff time.Duration // Initial backoff (default: 1s)
	MaxBackoff     time.Duration // Max backoff (default: 30s)
}

// NewRestartableRunner creates a new restartable runner.
func NewRestartableRunner(cfg RunnerConfig, runFunc func(ctx context.Context) error) *RestartableRunner {
	if cfg.RestartBackoff == 0 {
		cfg.RestartBackoff = 1 * time.Second
	}
	if cfg.MaxBackoff == 0 {
		cfg.MaxBackoff = 30 * time.Second
	}

	return &RestartableRunner{
		name:           cfg.Name,
		runFunc:        runFunc,
		maxRestarts:    cfg.MaxRestarts,
		restartBackoff: cfg.RestartBackoff,
		maxBackoff:     cfg.MaxBackoff,
	}
}

// Start starts the runner in a goroutine.
func (r *RestartableRunner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return fmt.Errorf("%s is already running", r.name)
	}

	r.ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})
	r.running = true
	r.restartCount = 0
	r.lastError = nil

	go r.runLoop()

	return nil
}

// Stop stops the runner gracefully.
func (r *RestartableRunner) Stop() error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}

	cancel := r.cancel
	done := r.done
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	// Wait for the runner to finish
	select {
	case <-done:
		// Runner finished
	case <-time.After(30 * time.Second):
		return fmt.Errorf("%s: timeout waiting for stop", r.name)
	}

	r.mu.Lock()
	r.running = false
	r.mu.Unlock()

	return nil
}

// Done is closed when the loop has stopped for good: it exited cleanly, its
// context was cancelled or it ran out of restarts. It is nil before Start.
func (r *RestartableRunner) Done() <-chan struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.done
}

// IsRunning returns true if the runner is currently running.
func (r *RestartableRunner) IsRunning() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.running
}

// LastError returns the last error that occurred.
func (r *RestartableRunner) LastError() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastError
}

// RestartCount returns the number of restarts that have occurred.
func (r *RestartableRunner) RestartCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.restartCount
}

// runLoop runs the loop until it exits cleanly, its context is cancelled
// or the restart limit is reached.
func (r *RestartableRunner) runLoop() {
	defer close(r.done)

	backoff := r.restartBackoff
	for r.ctx.Err() == nil {
		err := r.runWithRecovery()

		r.mu.Lock()
		r.lastError = err
		r.mu.Unlock()

		if err == nil {
			log.Infof("%s: exited cleanly", r.name)
			return
		}
		if r.ctx.Err() != nil {
			log.Debugf("%s: stopped while failing: %v", r.name, err)
			return
		}

		restarts := r.recordRestart()
		code := failureCode(err)
		if r.maxRestarts > 0 && restarts >= r.maxRestarts {
			log.Errorf("%s: giving up after %d restarts, last failure [%s]: %v", r.name, restarts, code, err)
			return
		}
		log.Errorf("%s: failed [%s]: %v. Restart #%d in %v", r.name, code, err, restarts, backoff)

		select {
		case <-r.ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, r.maxBackoff)
	}
	log.Infof("%s: context cancelled, stopping", r.name)
}

func (r *RestartableRunner) recordRestart() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.restartCount++
	return r.restartCount
}

// runWithRecovery runs the loop once. A panic is returned as an internal
// error.
func (r *RestartableRunner) runWithRecovery() (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = kerrors.NewInternalError(fmt.Sprintf("panic: %v", recovered), nil)
		}
	}()

	return r.runFunc(r.ctx)
}

// failureCode names the kind of failure for the restart log: the error code
// when err carries one, INTERNAL_ERROR otherwise.
func failureCode(err error) kerrors.ErrorCode {
	if code := kerrors.CodeOf(err); code != "" {
		return code
	}
	return kerrors.ErrCodeInternal
}
