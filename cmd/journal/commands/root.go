package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/tradejournal/pkg/config"
)

var (
	// Global flags
	env     string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "journal",
	Short: "Trade journal analytics",
	Long: `Trade Journal Unified CLI

포지션/체결 기록으로 성과 지표와 행동 분석(리스크, 과매매, 일관성, 자본 효율)을 계산.

Usage:
  go run ./cmd/journal [command]

Examples:
  go run ./cmd/journal api
  go run ./cmd/journal report --demo --advanced
  go run ./cmd/journal seed --demo
  go run ./cmd/journal scheduler start`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "environment override (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (LOG_LEVEL=debug)")
}

// loadConfig loads config and applies global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if env != "" {
		cfg.Env = env
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}
