package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/signaldeck/internal/api/handlers"
	"github.com/wonny/signaldeck/pkg/logger"
)

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(
	signalHandler *handlers.SignalHandler,
	stockHandler *handlers.StockHandler,
	healthHandler *handlers.HealthHandler,
	jobsHandler *handlers.JobsHandler,
	hub *Hub,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Liveness check
	r.HandleFunc("/health", livenessHandler).Methods("GET")

	// API v1
	api := r.PathPrefix("/api/v1").Subrouter()

	// Signal dashboard endpoints
	api.HandleFunc("/signals", signalHandler.GetSignals).Methods("GET")
	api.HandleFunc("/signals/refresh", signalHandler.Refresh).Methods("POST")
	api.HandleFunc("/signals/filters", signalHandler.UpdateFilters).Methods("PATCH")
	api.HandleFunc("/signals/filters/reset", signalHandler.ResetFilters).Methods("POST")
	api.HandleFunc("/signals/sort", signalHandler.SetSort).Methods("PUT")
	api.HandleFunc("/signals/sort/toggle", signalHandler.ToggleSortOrder).Methods("POST")
	api.HandleFunc("/market/gate", signalHandler.GetMarketGate).Methods("GET")
	api.HandleFunc("/backtest/kpis", signalHandler.GetBacktestKPIs).Methods("GET")
	api.HandleFunc("/prices", signalHandler.GetRealtimePrices).Methods("GET")

	// Stock detail endpoints
	api.HandleFunc("/stocks/{ticker}", stockHandler.GetStock).Methods("GET")
	api.HandleFunc("/stocks", stockHandler.Clear).Methods("DELETE")

	// System health endpoints
	api.HandleFunc("/system/health", healthHandler.GetHealth).Methods("GET")
	api.HandleFunc("/system/health/refresh", healthHandler.Refresh).Methods("POST")
	api.HandleFunc("/system/polling/start", healthHandler.StartPolling).Methods("POST")
	api.HandleFunc("/system/polling/stop", healthHandler.StopPolling).Methods("POST")

	// Background job endpoints
	api.HandleFunc("/system/jobs", jobsHandler.List).Methods("GET")
	api.HandleFunc("/system/jobs/{name}/run", jobsHandler.Run).Methods("POST")

	// Websocket push of health refreshes
	r.HandleFunc("/ws/health", hub.ServeWS)

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// livenessHandler returns server liveness
func livenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "signaldeck-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
