package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/signaldeck/internal/dataclient"
	"github.com/wonny/signaldeck/internal/store"
	"github.com/wonny/signaldeck/pkg/config"
	"github.com/wonny/signaldeck/pkg/httputil"
	"github.com/wonny/signaldeck/pkg/logger"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "시스템 헬스 조회",
	Long: `백엔드 시스템 헬스와 데이터 수집 상태를 한 번 조회해 출력합니다.

Example:
  go run ./cmd/signaldeck status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.LogFormat = "console"
	if !verbose {
		cfg.LogLevel = "warn"
	}

	log := logger.New(cfg)
	// One-shot command: a single quick retry, not the server profile
	httpClient := httputil.New(cfg, log).WithRetry(1, 500*time.Millisecond)
	client := dataclient.New(cfg, httpClient, log)
	healthStore := store.NewHealthStore(client, log)

	healthStore.RefreshAll(context.Background())

	health := healthStore.Health()
	if health.Err != "" {
		fmt.Printf("System health: UNAVAILABLE (%s)\n", health.Err)
	} else if health.Data != nil {
		fmt.Printf("System health: %s\n", health.Data.Status)
		for name, state := range health.Data.Components {
			fmt.Printf("  %-16s %s\n", name, state)
		}
	}

	status := healthStore.DataStatus()
	if status.Err != "" {
		fmt.Printf("Data status:   UNAVAILABLE (%s)\n", status.Err)
	} else if status.Data != nil {
		fmt.Printf("Data status:   %d stocks, collected %s",
			status.Data.StockCount,
			status.Data.LastCollectedAt.Format("2006-01-02 15:04"),
		)
		if status.Data.Stale {
			fmt.Print("  [STALE]")
		}
		fmt.Println()
	}

	return nil
}
