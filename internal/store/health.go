package store

import (
	"context"
	"sync"
	"time"

	"github.com/wonny/signaldeck/internal/dataclient"
	"github.com/wonny/signaldeck/pkg/logger"
)

// HealthStore owns system-health state and the polling loop that
// keeps it fresh
// ⭐ SSOT: 시스템 헬스 상태는 이 스토어에서만 변경
type HealthStore struct {
	client DataClient
	logger *logger.Logger

	health Resource[dataclient.SystemHealth]
	status Resource[dataclient.DataStatus]

	compositeMu sync.Mutex
	composite   int // active RefreshAll calls

	poller *Poller

	hookMu    sync.RWMutex
	onRefresh []func()
}

// NewHealthStore creates a health store and its poller
func NewHealthStore(client DataClient, log *logger.Logger) *HealthStore {
	s := &HealthStore{
		client: client,
		logger: log,
	}
	s.poller = NewPoller(func() {
		s.RefreshAll(context.Background())
	}, log)
	return s
}

// FetchHealth refreshes the system health slot
func (s *HealthStore) FetchHealth(ctx context.Context) error {
	return s.health.run(ctx, "Failed to fetch system health", s.client.FetchSystemHealth)
}

// FetchDataStatus refreshes the data status slot
func (s *HealthStore) FetchDataStatus(ctx context.Context) error {
	return s.status.run(ctx, "Failed to fetch data status", s.client.FetchDataStatus)
}

// Health returns the system health slot snapshot
func (s *HealthStore) Health() ResourceState[dataclient.SystemHealth] {
	return s.health.State()
}

// DataStatus returns the data status slot snapshot
func (s *HealthStore) DataStatus() ResourceState[dataclient.DataStatus] {
	return s.status.State()
}

// LastFetch returns the time of the last successful health refresh
func (s *HealthStore) LastFetch() time.Time {
	return s.health.State().LastFetch
}

// Loading reports whether a composite refresh is in flight
func (s *HealthStore) Loading() bool {
	s.compositeMu.Lock()
	defer s.compositeMu.Unlock()
	return s.composite > 0
}

// OnRefresh registers a hook invoked after every composite refresh
// settles. Used by the websocket hub and by tests.
func (s *HealthStore) OnRefresh(fn func()) {
	s.hookMu.Lock()
	s.onRefresh = append(s.onRefresh, fn)
	s.hookMu.Unlock()
}

// RefreshAll fetches health and data status concurrently and fires
// the refresh hooks once both have settled.
func (s *HealthStore) RefreshAll(ctx context.Context) {
	s.compositeMu.Lock()
	s.composite++
	s.compositeMu.Unlock()

	defer func() {
		s.compositeMu.Lock()
		s.composite--
		s.compositeMu.Unlock()
	}()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := s.FetchHealth(ctx); err != nil {
			s.logger.WithError(err).Error("System health refresh failed")
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.FetchDataStatus(ctx); err != nil {
			s.logger.WithError(err).Error("Data status refresh failed")
		}
	}()

	wg.Wait()

	s.hookMu.RLock()
	hooks := s.onRefresh
	s.hookMu.RUnlock()
	for _, fn := range hooks {
		fn()
	}
}

// StartPolling starts the periodic refresh loop
func (s *HealthStore) StartPolling(interval time.Duration) {
	s.poller.Start(interval)
}

// StopPolling stops the periodic refresh loop
func (s *HealthStore) StopPolling() {
	s.poller.Stop()
}

// Polling reports whether the poller is running
func (s *HealthStore) Polling() bool {
	return s.poller.Running()
}
