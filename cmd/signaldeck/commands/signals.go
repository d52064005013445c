package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/signaldeck/internal/dataclient"
	"github.com/wonny/signaldeck/internal/domain"
	"github.com/wonny/signaldeck/internal/store"
	"github.com/wonny/signaldeck/pkg/config"
	"github.com/wonny/signaldeck/pkg/httputil"
	"github.com/wonny/signaldeck/pkg/logger"
)

// signalsCmd represents the signals command
var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "시그널 목록 조회",
	Long: `백엔드에서 시그널을 가져와 정규화한 뒤 필터/정렬하여 출력합니다.

Example:
  go run ./cmd/signaldeck signals
  go run ./cmd/signaldeck signals --grades S,A --min-score 6
  go run ./cmd/signaldeck signals --sort created_at --order asc`,
	RunE: runSignals,
}

var (
	// Signals flags
	signalsGrades   string
	signalsMinScore float64
	signalsMaxScore float64
	signalsType     string
	signalsSort     string
	signalsOrder    string
)

func init() {
	rootCmd.AddCommand(signalsCmd)

	signalsCmd.Flags().StringVar(&signalsGrades, "grades", "", "comma-separated grade filter (S,A,B,C)")
	signalsCmd.Flags().Float64Var(&signalsMinScore, "min-score", domain.MinScoreBound, "minimum score")
	signalsCmd.Flags().Float64Var(&signalsMaxScore, "max-score", domain.MaxScoreBound, "maximum score")
	signalsCmd.Flags().StringVar(&signalsType, "type", domain.SignalTypeAll, "signal type filter")
	signalsCmd.Flags().StringVar(&signalsSort, "sort", string(domain.SortByScore), "sort key (score|grade|created_at)")
	signalsCmd.Flags().StringVar(&signalsOrder, "order", string(domain.OrderDesc), "sort order (asc|desc)")
}

func runSignals(cmd *cobra.Command, args []string) error {
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
	signalStore := store.NewSignalStore(client, log)

	if err := signalStore.FetchSignals(context.Background()); err != nil {
		return fmt.Errorf("signal fetch failed: %w", err)
	}

	// Apply CLI filter/sort to the store
	grades := parseGrades(signalsGrades)
	signalType := signalsType
	signalStore.SetFilter(domain.FilterPatch{
		Grades:     &grades,
		MinScore:   &signalsMinScore,
		MaxScore:   &signalsMaxScore,
		SignalType: &signalType,
	})
	signalStore.SetSortKey(domain.SortKey(signalsSort))
	if domain.SortOrder(signalsOrder) == domain.OrderAsc {
		signalStore.ToggleSortOrder()
	}

	signals := signalStore.View()
	if len(signals) == 0 {
		fmt.Println("No signals matched.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TICKER\tNAME\tMARKET\tGRADE\tSCORE\tTYPE\tCHECKS\tDETECTED")
	for _, sig := range signals {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%s\t%d/%d\t%s\n",
			sig.Ticker,
			sig.Name,
			sig.Market,
			sig.Grade,
			sig.TotalScore(),
			sig.SignalType,
			sig.PassedChecks(),
			len(sig.Checks),
			sig.DetectedAt.Format("2006-01-02 15:04"),
		)
	}
	w.Flush()

	fmt.Printf("\n%d signals\n", len(signals))
	return nil
}

// parseGrades parses a comma-separated grade list
func parseGrades(raw string) []domain.Grade {
	if raw == "" {
		return []domain.Grade{}
	}

	parts := strings.Split(raw, ",")
	grades := make([]domain.Grade, 0, len(parts))
	for _, p := range parts {
		grades = append(grades, domain.NormalizeGrade(p))
	}
	return grades
}
