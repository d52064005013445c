package dataclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/wonny/signaldeck/pkg/config"
	"github.com/wonny/signaldeck/pkg/httputil"
	"github.com/wonny/signaldeck/pkg/logger"
)

// Client fetches typed payloads from the upstream signal backend
// ⭐ SSOT: 백엔드 API 호출은 이 클라이언트를 통해서만
type Client struct {
	http    *httputil.Client
	baseURL string
	logger  *logger.Logger
}

// New creates a new data access client
func New(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(cfg.Backend.BaseURL, "/"),
		logger:  log,
	}
}

// FetchSignals fetches the raw signal scan result.
// The payload shape is ambiguous; callers run it through normalize.
func (c *Client) FetchSignals(ctx context.Context) (*SignalsPayload, error) {
	var payload SignalsPayload
	if err := c.http.GetJSON(ctx, c.baseURL+"/api/v1/signals", &payload); err != nil {
		return nil, fmt.Errorf("fetch signals failed: %w", err)
	}
	return &payload, nil
}

// FetchMarketGate fetches the market gate status
func (c *Client) FetchMarketGate(ctx context.Context) (*MarketGate, error) {
	var gate MarketGate
	if err := c.http.GetJSON(ctx, c.baseURL+"/api/v1/market/gate", &gate); err != nil {
		return nil, fmt.Errorf("fetch market gate failed: %w", err)
	}
	return &gate, nil
}

// FetchBacktestKPIs fetches the headline backtest metrics
func (c *Client) FetchBacktestKPIs(ctx context.Context) (*BacktestKPIs, error) {
	var kpis BacktestKPIs
	if err := c.http.GetJSON(ctx, c.baseURL+"/api/v1/backtest/kpis", &kpis); err != nil {
		return nil, fmt.Errorf("fetch backtest KPIs failed: %w", err)
	}
	return &kpis, nil
}

// FetchRealtimePrices fetches realtime quotes for a set of tickers
func (c *Client) FetchRealtimePrices(ctx context.Context, tickers []string) (map[string]PriceQuote, error) {
	if len(tickers) == 0 {
		return map[string]PriceQuote{}, nil
	}

	endpoint := fmt.Sprintf("%s/api/v1/prices?tickers=%s",
		c.baseURL, url.QueryEscape(strings.Join(tickers, ",")))

	var prices map[string]PriceQuote
	if err := c.http.GetJSON(ctx, endpoint, &prices); err != nil {
		return nil, fmt.Errorf("fetch realtime prices failed: %w", err)
	}
	return prices, nil
}

// FetchStockDetail fetches the detail payload for one stock
func (c *Client) FetchStockDetail(ctx context.Context, ticker string) (*StockDetail, error) {
	var detail StockDetail
	endpoint := fmt.Sprintf("%s/api/v1/stocks/%s", c.baseURL, url.PathEscape(ticker))
	if err := c.http.GetJSON(ctx, endpoint, &detail); err != nil {
		return nil, fmt.Errorf("fetch stock detail failed: %w", err)
	}
	return &detail, nil
}

// FetchStockChart fetches chart data for one stock and period
func (c *Client) FetchStockChart(ctx context.Context, ticker, period string) (*ChartData, error) {
	var chart ChartData
	endpoint := fmt.Sprintf("%s/api/v1/stocks/%s/chart?period=%s",
		c.baseURL, url.PathEscape(ticker), url.QueryEscape(period))
	if err := c.http.GetJSON(ctx, endpoint, &chart); err != nil {
		return nil, fmt.Errorf("fetch stock chart failed: %w", err)
	}
	return &chart, nil
}

// FetchAIAnalysis fetches the AI commentary for one stock
func (c *Client) FetchAIAnalysis(ctx context.Context, ticker string) (*AIAnalysis, error) {
	var analysis AIAnalysis
	endpoint := fmt.Sprintf("%s/api/v1/stocks/%s/analysis", c.baseURL, url.PathEscape(ticker))
	if err := c.http.GetJSON(ctx, endpoint, &analysis); err != nil {
		return nil, fmt.Errorf("fetch AI analysis failed: %w", err)
	}
	return &analysis, nil
}

// FetchSystemHealth fetches the backend health snapshot
func (c *Client) FetchSystemHealth(ctx context.Context) (*SystemHealth, error) {
	var health SystemHealth
	if err := c.http.GetJSON(ctx, c.baseURL+"/api/v1/system/health", &health); err != nil {
		return nil, fmt.Errorf("fetch system health failed: %w", err)
	}
	return &health, nil
}

// FetchDataStatus fetches collection freshness of the upstream pipeline
func (c *Client) FetchDataStatus(ctx context.Context) (*DataStatus, error) {
	var status DataStatus
	if err := c.http.GetJSON(ctx, c.baseURL+"/api/v1/system/data-status", &status); err != nil {
		return nil, fmt.Errorf("fetch data status failed: %w", err)
	}
	return &status, nil
}
