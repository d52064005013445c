package store

import (
	"context"
	"sync"

	"github.com/wonny/signaldeck/internal/dataclient"
	"github.com/wonny/signaldeck/pkg/logger"
)

// StockDetailStore owns the per-stock detail view state
// ⭐ SSOT: 종목 상세 상태는 이 스토어에서만 변경
type StockDetailStore struct {
	client DataClient
	logger *logger.Logger

	detail   Resource[dataclient.StockDetail]
	chart    Resource[dataclient.ChartData]
	analysis Resource[dataclient.AIAnalysis]

	compositeMu sync.Mutex
	composite   int // active RefreshAll calls
}

// NewStockDetailStore creates a stock detail store
func NewStockDetailStore(client DataClient, log *logger.Logger) *StockDetailStore {
	return &StockDetailStore{
		client: client,
		logger: log,
	}
}

// FetchDetail refreshes the stock detail slot
func (s *StockDetailStore) FetchDetail(ctx context.Context, ticker string) error {
	return s.detail.run(ctx, "Failed to fetch stock detail", func(ctx context.Context) (*dataclient.StockDetail, error) {
		return s.client.FetchStockDetail(ctx, ticker)
	})
}

// FetchChart refreshes the chart slot for one period
func (s *StockDetailStore) FetchChart(ctx context.Context, ticker, period string) error {
	return s.chart.run(ctx, "Failed to fetch stock chart", func(ctx context.Context) (*dataclient.ChartData, error) {
		return s.client.FetchStockChart(ctx, ticker, period)
	})
}

// FetchAnalysis refreshes the AI analysis slot. Best-effort: a
// failure is logged but never surfaces a user-visible error and
// never touches the other slots.
func (s *StockDetailStore) FetchAnalysis(ctx context.Context, ticker string) error {
	s.analysis.begin()

	data, err := s.client.FetchAIAnalysis(ctx, ticker)
	if err != nil {
		s.analysis.settle()
		s.logger.WithError(err).WithField("ticker", ticker).Warn("AI analysis fetch failed (best-effort)")
		return err
	}

	s.analysis.commit(data, nowFunc())
	return nil
}

// Detail returns the detail slot snapshot
func (s *StockDetailStore) Detail() ResourceState[dataclient.StockDetail] {
	return s.detail.State()
}

// Chart returns the chart slot snapshot
func (s *StockDetailStore) Chart() ResourceState[dataclient.ChartData] {
	return s.chart.State()
}

// Analysis returns the AI analysis slot snapshot
func (s *StockDetailStore) Analysis() ResourceState[dataclient.AIAnalysis] {
	return s.analysis.State()
}

// Loading reports whether a composite refresh is in flight
func (s *StockDetailStore) Loading() bool {
	s.compositeMu.Lock()
	defer s.compositeMu.Unlock()
	return s.composite > 0
}

// Clear resets every slot to its initial empty value.
// 상세 화면을 벗어날 때 호출
func (s *StockDetailStore) Clear() {
	s.detail.reset()
	s.chart.reset()
	s.analysis.reset()
}

// RefreshAll fetches detail, chart and analysis concurrently and
// returns once all have settled. The aggregate loading flag stays
// true for the whole composite call; individual slots still commit
// as soon as they complete.
func (s *StockDetailStore) RefreshAll(ctx context.Context, ticker, period string) {
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
		if err := s.FetchDetail(ctx, ticker); err != nil {
			s.logger.WithError(err).WithField("ticker", ticker).Error("Stock detail refresh failed")
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.FetchChart(ctx, ticker, period); err != nil {
			s.logger.WithError(err).WithField("ticker", ticker).Error("Stock chart refresh failed")
		}
	}()
	go func() {
		defer wg.Done()
		// Best-effort; error already observed inside
		_ = s.FetchAnalysis(ctx, ticker)
	}()

	wg.Wait()
}
