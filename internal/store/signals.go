package store

import (
	"context"
	"sync"
	"time"

	"github.com/wonny/signaldeck/internal/dataclient"
	"github.com/wonny/signaldeck/internal/domain"
	"github.com/wonny/signaldeck/internal/normalize"
	"github.com/wonny/signaldeck/internal/view"
	"github.com/wonny/signaldeck/pkg/logger"
)

// SignalStore owns the signal list and its dashboard companions
// ⭐ SSOT: 시그널 목록 상태는 이 스토어에서만 변경
type SignalStore struct {
	client DataClient
	logger *logger.Logger
	now    func() time.Time

	signals Resource[[]domain.Signal]
	gate    Resource[dataclient.MarketGate]
	kpis    Resource[dataclient.BacktestKPIs]
	prices  Resource[map[string]dataclient.PriceQuote]

	specMu sync.RWMutex
	filter domain.FilterSpec
	sort   domain.SortSpec

	compositeMu sync.Mutex
	composite   int // active RefreshAll calls
}

// NewSignalStore creates a signal store with default filter and sort
func NewSignalStore(client DataClient, log *logger.Logger) *SignalStore {
	return &SignalStore{
		client: client,
		logger: log,
		now:    time.Now,
		filter: domain.DefaultFilter(),
		sort:   domain.DefaultSort(),
	}
}

// FetchSignals fetches the raw scan result and commits the
// normalized list.
func (s *SignalStore) FetchSignals(ctx context.Context) error {
	return s.signals.run(ctx, "Failed to fetch signals", func(ctx context.Context) (*[]domain.Signal, error) {
		payload, err := s.client.FetchSignals(ctx)
		if err != nil {
			return nil, err
		}
		normalized := normalize.Signals(payload, s.now())
		return &normalized, nil
	})
}

// FetchMarketGate refreshes the market gate status
func (s *SignalStore) FetchMarketGate(ctx context.Context) error {
	return s.gate.run(ctx, "Failed to fetch market gate", s.client.FetchMarketGate)
}

// FetchBacktestKPIs refreshes the headline backtest metrics
func (s *SignalStore) FetchBacktestKPIs(ctx context.Context) error {
	return s.kpis.run(ctx, "Failed to fetch backtest KPIs", s.client.FetchBacktestKPIs)
}

// FetchRealtimePrices refreshes quotes for the given tickers
func (s *SignalStore) FetchRealtimePrices(ctx context.Context, tickers []string) error {
	return s.prices.run(ctx, "Failed to fetch realtime prices", func(ctx context.Context) (*map[string]dataclient.PriceQuote, error) {
		quotes, err := s.client.FetchRealtimePrices(ctx, tickers)
		if err != nil {
			return nil, err
		}
		return &quotes, nil
	})
}

// Signals returns the signal slot snapshot
func (s *SignalStore) Signals() ResourceState[[]domain.Signal] {
	return s.signals.State()
}

// MarketGate returns the market gate slot snapshot
func (s *SignalStore) MarketGate() ResourceState[dataclient.MarketGate] {
	return s.gate.State()
}

// BacktestKPIs returns the backtest KPI slot snapshot
func (s *SignalStore) BacktestKPIs() ResourceState[dataclient.BacktestKPIs] {
	return s.kpis.State()
}

// RealtimePrices returns the realtime price slot snapshot
func (s *SignalStore) RealtimePrices() ResourceState[map[string]dataclient.PriceQuote] {
	return s.prices.State()
}

// View recomputes the filtered, sorted signal list from current
// state. Pull-based: no cached derived state.
func (s *SignalStore) View() []domain.Signal {
	state := s.signals.State()
	if state.Data == nil {
		return []domain.Signal{}
	}

	s.specMu.RLock()
	filter, sortSpec := s.filter, s.sort
	s.specMu.RUnlock()

	return view.Apply(*state.Data, filter, sortSpec)
}

// ViewTickers returns the tickers of the current derived view,
// used to scope realtime price refreshes.
func (s *SignalStore) ViewTickers() []string {
	signals := s.View()
	tickers := make([]string, 0, len(signals))
	for _, sig := range signals {
		tickers = append(tickers, sig.Ticker)
	}
	return tickers
}

// Filter returns the current filter specification
func (s *SignalStore) Filter() domain.FilterSpec {
	s.specMu.RLock()
	defer s.specMu.RUnlock()
	return s.filter
}

// SetFilter merges a partial filter update
func (s *SignalStore) SetFilter(patch domain.FilterPatch) {
	s.specMu.Lock()
	s.filter = s.filter.Merge(patch)
	s.specMu.Unlock()
}

// ResetFilter restores the default filter
func (s *SignalStore) ResetFilter() {
	s.specMu.Lock()
	s.filter = domain.DefaultFilter()
	s.specMu.Unlock()
}

// Sort returns the current sort specification
func (s *SignalStore) Sort() domain.SortSpec {
	s.specMu.RLock()
	defer s.specMu.RUnlock()
	return s.sort
}

// SetSortKey changes the sort key, keeping the direction
func (s *SignalStore) SetSortKey(key domain.SortKey) {
	s.specMu.Lock()
	s.sort.By = key
	s.specMu.Unlock()
}

// ToggleSortOrder flips asc/desc
func (s *SignalStore) ToggleSortOrder() {
	s.specMu.Lock()
	s.sort = s.sort.Toggle()
	s.specMu.Unlock()
}

// Loading reports whether a composite refresh is in flight
func (s *SignalStore) Loading() bool {
	s.compositeMu.Lock()
	defer s.compositeMu.Unlock()
	return s.composite > 0
}

// RefreshAll runs the store's fetches concurrently and returns when
// all have settled. Each slot commits independently as it completes,
// so partial updates are visible before this returns.
func (s *SignalStore) RefreshAll(ctx context.Context) {
	s.compositeMu.Lock()
	s.composite++
	s.compositeMu.Unlock()

	defer func() {
		s.compositeMu.Lock()
		s.composite--
		s.compositeMu.Unlock()
	}()

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		if err := s.FetchSignals(ctx); err != nil {
			s.logger.WithError(err).Error("Signal refresh failed")
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.FetchMarketGate(ctx); err != nil {
			s.logger.WithError(err).Error("Market gate refresh failed")
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.FetchBacktestKPIs(ctx); err != nil {
			s.logger.WithError(err).Error("Backtest KPI refresh failed")
		}
	}()

	wg.Wait()

	// Prices are scoped to the view, so they follow the signal commit
	if tickers := s.ViewTickers(); len(tickers) > 0 {
		if err := s.FetchRealtimePrices(ctx, tickers); err != nil {
			s.logger.WithError(err).Error("Realtime price refresh failed")
		}
	}
}
