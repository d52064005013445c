package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "signaldeck",
	Short: "signaldeck - 주식 시그널 대시보드 동기화 레이어",
	Long: `signaldeck

주식 시그널 대시보드의 데이터 동기화 레이어.
백엔드 페이로드를 수집/정규화하고 파생 뷰와 헬스 폴링을 제공.

Usage:
  go run ./cmd/signaldeck [command]

Examples:
  go run ./cmd/signaldeck serve
  go run ./cmd/signaldeck signals --grades S,A --sort score
  go run ./cmd/signaldeck status`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
