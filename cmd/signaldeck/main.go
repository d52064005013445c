package main

import (
	"os"

	"github.com/wonny/signaldeck/cmd/signaldeck/commands"
)

// main is the entry point for the signaldeck CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/signaldeck [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
