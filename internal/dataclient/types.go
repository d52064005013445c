package dataclient

import (
	"encoding/json"
	"time"
)

// SignalsPayload is the raw, schema-ambiguous signals response.
// Newer backends return fully-shaped signals; older scanners return
// candidate records that still need reconciliation.
type SignalsPayload struct {
	Signals    []json.RawMessage `json:"signals"`
	Candidates []json.RawMessage `json:"candidates"`
	ScannedAt  string            `json:"scanned_at,omitempty"`
}

// MarketGate is the market-wide go/no-go state
type MarketGate struct {
	Status    string    `json:"status"` // OPEN, CAUTION, CLOSED
	Level     int       `json:"level"`
	Reason    string    `json:"reason,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BacktestKPIs are the headline backtest metrics shown on the dashboard
type BacktestKPIs struct {
	Period      string  `json:"period"`
	WinRate     float64 `json:"win_rate"`
	AvgReturn   float64 `json:"avg_return"`
	MaxDrawdown float64 `json:"max_drawdown"`
	SharpeRatio float64 `json:"sharpe_ratio"`
	TradeCount  int     `json:"trade_count"`
}

// PriceQuote is a realtime price snapshot for one ticker
type PriceQuote struct {
	Ticker     string    `json:"ticker"`
	Price      float64   `json:"price"`
	Change     float64   `json:"change"`
	ChangeRate float64   `json:"change_rate"`
	Volume     int64     `json:"volume"`
	Timestamp  time.Time `json:"timestamp"`
}

// StockDetail is the per-stock detail payload
type StockDetail struct {
	Ticker     string             `json:"ticker"`
	Name       string             `json:"name"`
	Market     string             `json:"market"`
	Price      float64            `json:"price"`
	ChangeRate float64            `json:"change_rate"`
	Volume     int64              `json:"volume"`
	MarketCap  int64              `json:"market_cap"`
	Indicators map[string]float64 `json:"indicators,omitempty"`
}

// Candle is one OHLCV bar
type Candle struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// ChartData is the per-stock chart payload for one period
type ChartData struct {
	Ticker  string   `json:"ticker"`
	Period  string   `json:"period"` // day, week, month
	Candles []Candle `json:"candles"`
}

// AIAnalysis is the optional AI commentary for a stock.
// 베스트에포트: 실패해도 상세 화면은 정상 동작해야 함
type AIAnalysis struct {
	Ticker      string    `json:"ticker"`
	Summary     string    `json:"summary"`
	Opinion     string    `json:"opinion"`
	Confidence  float64   `json:"confidence"`
	GeneratedAt time.Time `json:"generated_at"`
}

// SystemHealth is the backend health snapshot
type SystemHealth struct {
	Status     string            `json:"status"` // healthy, degraded, down
	Components map[string]string `json:"components,omitempty"`
	Version    string            `json:"version,omitempty"`
	CheckedAt  time.Time         `json:"checked_at"`
}

// DataStatus reports collection freshness of the upstream pipeline
type DataStatus struct {
	LastCollectedAt time.Time          `json:"last_collected_at"`
	StockCount      int                `json:"stock_count"`
	Coverage        map[string]float64 `json:"coverage,omitempty"`
	Stale           bool               `json:"stale"`
}
