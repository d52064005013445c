package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/signaldeck/internal/api"
	"github.com/wonny/signaldeck/internal/api/handlers"
	"github.com/wonny/signaldeck/internal/dataclient"
	"github.com/wonny/signaldeck/internal/scheduler"
	"github.com/wonny/signaldeck/internal/scheduler/jobs"
	"github.com/wonny/signaldeck/internal/store"
	"github.com/wonny/signaldeck/pkg/config"
	"github.com/wonny/signaldeck/pkg/httputil"
	"github.com/wonny/signaldeck/pkg/logger"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "대시보드 API 서버 실행",
	Long: `API 서버, 헬스 폴러, 백그라운드 스케줄러를 함께 실행합니다.

Example:
  go run ./cmd/signaldeck serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg)
	httpClient := httputil.New(cfg, log)
	client := dataclient.New(cfg, httpClient, log)

	// Stores: explicitly constructed and threaded, no ambient singletons
	signalStore := store.NewSignalStore(client, log)
	detailStore := store.NewStockDetailStore(client, log)
	healthStore := store.NewHealthStore(client, log)

	// Websocket hub fed by health refreshes
	hub := api.NewHub(log)
	healthStore.OnRefresh(func() {
		health := healthStore.Health()
		status := healthStore.DataStatus()
		hub.Broadcast(map[string]interface{}{
			"type":        "health",
			"health":      health.Data,
			"data_status": status.Data,
			"last_fetch":  healthStore.LastFetch(),
		})
	})

	// Background jobs
	sched := scheduler.New(log)
	if err := sched.AddJob(jobs.NewPriceRefreshJob(signalStore)); err != nil {
		return err
	}
	if err := sched.AddJob(jobs.NewDataAuditJob(healthStore, log)); err != nil {
		return err
	}

	router := api.NewRouter(
		handlers.NewSignalHandler(signalStore, log),
		handlers.NewStockHandler(detailStore, log),
		handlers.NewHealthHandler(healthStore, log),
		handlers.NewJobsHandler(sched, log),
		hub,
		log,
	)
	server := api.New(cfg, log, router)

	// Warm the dashboard before accepting traffic
	warmCtx, cancel := context.WithTimeout(context.Background(), cfg.Backend.Timeout+5*time.Second)
	signalStore.RefreshAll(warmCtx)
	cancel()

	if cfg.Poll.Enabled {
		healthStore.StartPolling(cfg.Poll.Interval)
	}
	sched.Start()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Shutting down")
	}

	// Teardown order: stop producing work, then drain the server
	healthStore.StopPolling()
	sched.Stop()
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
