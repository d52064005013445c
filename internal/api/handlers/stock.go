package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/signaldeck/internal/store"
	"github.com/wonny/signaldeck/pkg/logger"
)

// StockHandler exposes the per-stock detail view
// SSOT: 종목 상세 API 핸들러는 이 구조체에서만
type StockHandler struct {
	store  *store.StockDetailStore
	logger *logger.Logger
}

// NewStockHandler creates a new stock handler
func NewStockHandler(s *store.StockDetailStore, log *logger.Logger) *StockHandler {
	return &StockHandler{store: s, logger: log}
}

// GetStock refreshes and returns detail, chart and analysis
// GET /api/v1/stocks/{ticker}?period=day
func (h *StockHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ticker := vars["ticker"]

	if ticker == "" {
		respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "day"
	}

	h.store.RefreshAll(r.Context(), ticker, period)

	detail := h.store.Detail()
	chart := h.store.Chart()
	analysis := h.store.Analysis()

	if detail.Data == nil && detail.Err != "" {
		respondError(w, http.StatusBadGateway, detail.Err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"detail":   detail.Data,
			"chart":    chart.Data,
			"analysis": analysis.Data, // nil when the best-effort fetch failed
		},
		"errors": map[string]string{
			"detail": detail.Err,
			"chart":  chart.Err,
		},
	})
}

// Clear resets the detail store when the UI leaves the detail view
// DELETE /api/v1/stocks
func (h *StockHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.store.Clear()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
