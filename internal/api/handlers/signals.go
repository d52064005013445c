package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wonny/signaldeck/internal/domain"
	"github.com/wonny/signaldeck/internal/store"
	"github.com/wonny/signaldeck/pkg/logger"
)

// SignalHandler exposes the derived signal view and its mutation API
// SSOT: 시그널 대시보드 API 핸들러는 이 구조체에서만
type SignalHandler struct {
	store  *store.SignalStore
	logger *logger.Logger
}

// NewSignalHandler creates a new signal handler
func NewSignalHandler(s *store.SignalStore, log *logger.Logger) *SignalHandler {
	return &SignalHandler{store: s, logger: log}
}

// SignalsResponse is the dashboard list response
type SignalsResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Signals []domain.Signal   `json:"signals"`
		Total   int               `json:"total"`
		Filter  domain.FilterSpec `json:"filter"`
		Sort    domain.SortSpec   `json:"sort"`
		Loading bool              `json:"loading"`
		Error   string            `json:"error,omitempty"`
	} `json:"data"`
}

// GetSignals returns the filtered, sorted signal view
// GET /api/v1/signals
func (h *SignalHandler) GetSignals(w http.ResponseWriter, r *http.Request) {
	state := h.store.Signals()

	resp := SignalsResponse{Success: true}
	resp.Data.Signals = h.store.View()
	resp.Data.Total = len(resp.Data.Signals)
	resp.Data.Filter = h.store.Filter()
	resp.Data.Sort = h.store.Sort()
	resp.Data.Loading = state.Loading
	resp.Data.Error = state.Err

	respondJSON(w, http.StatusOK, resp)
}

// Refresh re-fetches signals, market gate and backtest KPIs
// POST /api/v1/signals/refresh
func (h *SignalHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.store.RefreshAll(r.Context())

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// UpdateFilters merges a partial filter update
// PATCH /api/v1/signals/filters
func (h *SignalHandler) UpdateFilters(w http.ResponseWriter, r *http.Request) {
	var patch domain.FilterPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.store.SetFilter(patch)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    h.store.Filter(),
	})
}

// ResetFilters restores the default filter
// POST /api/v1/signals/filters/reset
func (h *SignalHandler) ResetFilters(w http.ResponseWriter, r *http.Request) {
	h.store.ResetFilter()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    h.store.Filter(),
	})
}

// SetSortRequest selects the sort key
type SetSortRequest struct {
	SortBy domain.SortKey `json:"sort_by"`
}

// SetSort changes the sort key
// PUT /api/v1/signals/sort
func (h *SignalHandler) SetSort(w http.ResponseWriter, r *http.Request) {
	var req SetSortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch req.SortBy {
	case domain.SortByScore, domain.SortByGrade, domain.SortByCreatedAt:
	default:
		respondError(w, http.StatusBadRequest, "Invalid sort_by (must be 'score', 'grade' or 'created_at')")
		return
	}

	h.store.SetSortKey(req.SortBy)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    h.store.Sort(),
	})
}

// ToggleSortOrder flips asc/desc
// POST /api/v1/signals/sort/toggle
func (h *SignalHandler) ToggleSortOrder(w http.ResponseWriter, r *http.Request) {
	h.store.ToggleSortOrder()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    h.store.Sort(),
	})
}

// GetMarketGate returns the market gate slot
// GET /api/v1/market/gate
func (h *SignalHandler) GetMarketGate(w http.ResponseWriter, r *http.Request) {
	state := h.store.MarketGate()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    state.Data,
		"loading": state.Loading,
		"error":   state.Err,
	})
}

// GetBacktestKPIs returns the backtest KPI slot
// GET /api/v1/backtest/kpis
func (h *SignalHandler) GetBacktestKPIs(w http.ResponseWriter, r *http.Request) {
	state := h.store.BacktestKPIs()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    state.Data,
		"loading": state.Loading,
		"error":   state.Err,
	})
}

// GetRealtimePrices returns the realtime price slot
// GET /api/v1/prices
func (h *SignalHandler) GetRealtimePrices(w http.ResponseWriter, r *http.Request) {
	state := h.store.RealtimePrices()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    state.Data,
		"loading": state.Loading,
		"error":   state.Err,
	})
}
