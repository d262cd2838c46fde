package word

import (
	"log/slog"
	"time"

	"github.com/acarlini/wordled/internal/dependencies/clock"
)

// Rotator drives the recurring rotation of the secret word. The first
// firing is scheduled for the remaining time on the restored word's expiry
// (immediately if already expired), then firings repeat at the manager's
// rotation period, which keeps rotation continuous across restarts.
type Rotator struct {
	manager *Manager
	clock   clock.Clock
	logger  *slog.Logger

	failed  chan error
	stop    chan struct{}
	stopped chan struct{}
}

// NewRotator creates a Rotator for the given manager.
func NewRotator(manager *Manager, clk clock.Clock, logger *slog.Logger) *Rotator {
	return &Rotator{
		manager: manager,
		clock:   clk,
		logger:  logger,
		failed:  make(chan error, 1),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start launches the rotation loop on its own goroutine.
func (r *Rotator) Start() {
	go r.run()
}

// Failed reports an unrecoverable rotation failure, such as an exhausted
// dictionary. The game cannot continue past it, so the serve loop treats
// it as fatal.
func (r *Rotator) Failed() <-chan error {
	return r.failed
}

// Stop requests the loop to end and waits until it has fully stopped.
// Safe to call once; the shutdown coordinator is the only caller.
func (r *Rotator) Stop() {
	close(r.stop)
	<-r.stopped
}

func (r *Rotator) run() {
	defer close(r.stopped)

	now := r.clock.Now()
	current := r.manager.Current()
	var initial time.Duration
	if !current.Expired(now) {
		initial = current.ExpiresAt.Sub(now)
	}

	timer := time.NewTimer(initial)
	defer timer.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-timer.C:
			if _, err := r.manager.Rotate(r.clock.Now()); err != nil {
				r.logger.Error("rotation failed", slog.String("error", err.Error()))
				r.failed <- err
				return
			}
			timer.Reset(r.manager.period)
		}
	}
}
