package dataclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/signaldeck/pkg/config"
	"github.com/wonny/signaldeck/pkg/httputil"
	"github.com/wonny/signaldeck/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Backend: config.BackendConfig{
			BaseURL: srv.URL,
			Timeout: 0,
		},
	}
	log := logger.NewNop()

	return New(cfg, httputil.New(cfg, log).DisableRetry(), log)
}

func TestFetchSignals(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/signals", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": [{"ticker": "005930", "total_score": 9}]}`))
	}))

	payload, err := client.FetchSignals(context.Background())
	require.NoError(t, err)
	assert.Len(t, payload.Candidates, 1)
	assert.Empty(t, payload.Signals)
}

func TestFetchRealtimePricesQuery(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/prices", r.URL.Path)
		assert.Equal(t, "005930,000660", r.URL.Query().Get("tickers"))
		w.Write([]byte(`{"005930": {"ticker": "005930", "price": 70000}}`))
	}))

	prices, err := client.FetchRealtimePrices(context.Background(), []string{"005930", "000660"})
	require.NoError(t, err)
	assert.Equal(t, 70000.0, prices["005930"].Price)
}

func TestFetchRealtimePricesEmptyTickerSet(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty ticker set")
	}))

	prices, err := client.FetchRealtimePrices(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, prices)
}

func TestFetchStockChartPath(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/stocks/005930/chart", r.URL.Path)
		assert.Equal(t, "week", r.URL.Query().Get("period"))
		w.Write([]byte(`{"ticker": "005930", "period": "week", "candles": []}`))
	}))

	chart, err := client.FetchStockChart(context.Background(), "005930", "week")
	require.NoError(t, err)
	assert.Equal(t, "week", chart.Period)
}

func TestFetchErrorCarriesMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "scanner offline", http.StatusServiceUnavailable)
	}))

	_, err := client.FetchSystemHealth(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "scanner offline")
}

func TestFetchDecodeError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))

	_, err := client.FetchDataStatus(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
