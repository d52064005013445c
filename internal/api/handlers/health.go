package handlers

import (
	"net/http"
	"time"

	"github.com/wonny/signaldeck/internal/store"
	"github.com/wonny/signaldeck/pkg/logger"
)

// HealthHandler exposes system-health state and polling control
// SSOT: 시스템 헬스 API 핸들러는 이 구조체에서만
type HealthHandler struct {
	store  *store.HealthStore
	logger *logger.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(s *store.HealthStore, log *logger.Logger) *HealthHandler {
	return &HealthHandler{store: s, logger: log}
}

// GetHealth returns the current health and data-status slots
// GET /api/v1/system/health
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	health := h.store.Health()
	status := h.store.DataStatus()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"health":      health.Data,
			"data_status": status.Data,
			"last_fetch":  h.store.LastFetch(),
			"polling":     h.store.Polling(),
		},
		"errors": map[string]string{
			"health":      health.Err,
			"data_status": status.Err,
		},
		"loading": h.store.Loading(),
	})
}

// Refresh triggers an immediate composite refresh
// POST /api/v1/system/health/refresh
func (h *HealthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.store.RefreshAll(r.Context())

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// StartPolling starts the periodic refresh loop
// POST /api/v1/system/polling/start?interval=30s
func (h *HealthHandler) StartPolling(w http.ResponseWriter, r *http.Request) {
	interval := time.Duration(0) // 0 falls back to the default

	if raw := r.URL.Query().Get("interval"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "Invalid interval")
			return
		}
		interval = parsed
	}

	h.store.StartPolling(interval)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"polling": true,
	})
}

// StopPolling stops the periodic refresh loop
// POST /api/v1/system/polling/stop
func (h *HealthHandler) StopPolling(w http.ResponseWriter, r *http.Request) {
	h.store.StopPolling()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"polling": false,
	})
}
