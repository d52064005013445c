package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/wonny/signaldeck/internal/dataclient"
)

// fakeClient lets each test script individual fetches.
// nil 필드는 성공 기본값 반환
type fakeClient struct {
	signals        func(ctx context.Context) (*dataclient.SignalsPayload, error)
	marketGate     func(ctx context.Context) (*dataclient.MarketGate, error)
	backtestKPIs   func(ctx context.Context) (*dataclient.BacktestKPIs, error)
	realtimePrices func(ctx context.Context, tickers []string) (map[string]dataclient.PriceQuote, error)
	stockDetail    func(ctx context.Context, ticker string) (*dataclient.StockDetail, error)
	stockChart     func(ctx context.Context, ticker, period string) (*dataclient.ChartData, error)
	aiAnalysis     func(ctx context.Context, ticker string) (*dataclient.AIAnalysis, error)
	systemHealth   func(ctx context.Context) (*dataclient.SystemHealth, error)
	dataStatus     func(ctx context.Context) (*dataclient.DataStatus, error)
}

func (f *fakeClient) FetchSignals(ctx context.Context) (*dataclient.SignalsPayload, error) {
	if f.signals != nil {
		return f.signals(ctx)
	}
	return &dataclient.SignalsPayload{
		Candidates: []json.RawMessage{
			json.RawMessage(`{"ticker": "005930", "total_score": 9, "grade": "S"}`),
			json.RawMessage(`{"ticker": "000660", "total_score": 5, "grade": "B"}`),
		},
	}, nil
}

func (f *fakeClient) FetchMarketGate(ctx context.Context) (*dataclient.MarketGate, error) {
	if f.marketGate != nil {
		return f.marketGate(ctx)
	}
	return &dataclient.MarketGate{Status: "OPEN", Level: 1, UpdatedAt: time.Now()}, nil
}

func (f *fakeClient) FetchBacktestKPIs(ctx context.Context) (*dataclient.BacktestKPIs, error) {
	if f.backtestKPIs != nil {
		return f.backtestKPIs(ctx)
	}
	return &dataclient.BacktestKPIs{Period: "1y", WinRate: 0.61, SharpeRatio: 1.4}, nil
}

func (f *fakeClient) FetchRealtimePrices(ctx context.Context, tickers []string) (map[string]dataclient.PriceQuote, error) {
	if f.realtimePrices != nil {
		return f.realtimePrices(ctx, tickers)
	}
	quotes := make(map[string]dataclient.PriceQuote, len(tickers))
	for _, t := range tickers {
		quotes[t] = dataclient.PriceQuote{Ticker: t, Price: 10000, Timestamp: time.Now()}
	}
	return quotes, nil
}

func (f *fakeClient) FetchStockDetail(ctx context.Context, ticker string) (*dataclient.StockDetail, error) {
	if f.stockDetail != nil {
		return f.stockDetail(ctx, ticker)
	}
	return &dataclient.StockDetail{Ticker: ticker, Name: "삼성전자", Market: "KOSPI", Price: 70000}, nil
}

func (f *fakeClient) FetchStockChart(ctx context.Context, ticker, period string) (*dataclient.ChartData, error) {
	if f.stockChart != nil {
		return f.stockChart(ctx, ticker, period)
	}
	return &dataclient.ChartData{Ticker: ticker, Period: period, Candles: []dataclient.Candle{{Date: "2026-08-31", Close: 70000}}}, nil
}

func (f *fakeClient) FetchAIAnalysis(ctx context.Context, ticker string) (*dataclient.AIAnalysis, error) {
	if f.aiAnalysis != nil {
		return f.aiAnalysis(ctx, ticker)
	}
	return &dataclient.AIAnalysis{Ticker: ticker, Summary: "strong momentum", Confidence: 0.8}, nil
}

func (f *fakeClient) FetchSystemHealth(ctx context.Context) (*dataclient.SystemHealth, error) {
	if f.systemHealth != nil {
		return f.systemHealth(ctx)
	}
	return &dataclient.SystemHealth{Status: "healthy", CheckedAt: time.Now()}, nil
}

func (f *fakeClient) FetchDataStatus(ctx context.Context) (*dataclient.DataStatus, error) {
	if f.dataStatus != nil {
		return f.dataStatus(ctx)
	}
	return &dataclient.DataStatus{StockCount: 920, LastCollectedAt: time.Now()}, nil
}
