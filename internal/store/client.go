package store

import (
	"context"

	"github.com/wonny/signaldeck/internal/dataclient"
)

// DataClient is the slice of the data access client the stores need.
// Stores are constructed with an injected client; tests swap in fakes.
type DataClient interface {
	FetchSignals(ctx context.Context) (*dataclient.SignalsPayload, error)
	FetchMarketGate(ctx context.Context) (*dataclient.MarketGate, error)
	FetchBacktestKPIs(ctx context.Context) (*dataclient.BacktestKPIs, error)
	FetchRealtimePrices(ctx context.Context, tickers []string) (map[string]dataclient.PriceQuote, error)
	FetchStockDetail(ctx context.Context, ticker string) (*dataclient.StockDetail, error)
	FetchStockChart(ctx context.Context, ticker, period string) (*dataclient.ChartData, error)
	FetchAIAnalysis(ctx context.Context, ticker string) (*dataclient.AIAnalysis, error)
	FetchSystemHealth(ctx context.Context) (*dataclient.SystemHealth, error)
	FetchDataStatus(ctx context.Context) (*dataclient.DataStatus, error)
}
