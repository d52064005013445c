package store

import (
	"sync"
	"time"

	"github.com/wonny/signaldeck/pkg/logger"
)

// DefaultPollInterval is used when Start is given a non-positive interval
const DefaultPollInterval = 30 * time.Second

// Poller drives a refresh function on a fixed interval.
// Two states: IDLE and RUNNING. Start is restart-safe, Stop is
// idempotent. Ticks never wait for a prior refresh to finish, so
// overlapping refreshes are possible; the stores' last-completion-wins
// protocol absorbs that.
type Poller struct {
	mu      sync.Mutex
	stopCh  chan struct{}
	running bool
	refresh func()
	logger  *logger.Logger
}

// NewPoller creates an idle poller
func NewPoller(refresh func(), log *logger.Logger) *Poller {
	return &Poller{
		refresh: refresh,
		logger:  log,
	}
}

// Start begins polling at the given interval. If already running,
// the existing timer is stopped first so timers never overlap.
// One immediate refresh fires before the timer is armed.
func (p *Poller) Start(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	p.mu.Lock()
	if p.running {
		close(p.stopCh)
	}
	stopCh := make(chan struct{})
	p.stopCh = stopCh
	p.running = true
	p.mu.Unlock()

	p.logger.WithField("interval", interval).Info("Poller started")

	// Immediate refresh, off the caller's goroutine
	go p.refresh()

	go p.loop(interval, stopCh)
}

// Stop cancels the timer. No-op when idle.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.stopCh = nil
	p.running = false

	p.logger.Info("Poller stopped")
}

// Running reports whether the poller is in the RUNNING state
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// loop owns the ticker until its stop channel closes
func (p *Poller) loop(interval time.Duration, stopCh chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Fire and forget: a slow refresh must not delay the next tick
			go p.refresh()
		}
	}
}
