package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/tradejournal/internal/journal"
	"github.com/wonny/tradejournal/internal/report"
	"github.com/wonny/tradejournal/pkg/logger"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "리포트를 XLSX 로 저장",
	Long: `분석 리포트를 엑셀 워크북으로 저장합니다.

Sheets: Summary, Equity, Daily, Hourly, OrderTypes, Signals

Example:
  go run ./cmd/journal export --demo --out demo.xlsx
  go run ./cmd/journal export --account <id> --out journal.xlsx`,
	RunE: runExport,
}

var (
	exportSource  sourceFlags
	exportBalance float64
	exportOut     string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	// Flags
	exportSource.register(exportCmd)
	exportCmd.Flags().Float64Var(&exportBalance, "balance", 0, "starting balance (default DEFAULT_BALANCE)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "journal-report.xlsx", "output path")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg)
	defer log.Close()

	src, closer, account, err := exportSource.open(cfg, log)
	if err != nil {
		return err
	}
	defer closer.Close()

	balance := exportBalance
	if balance <= 0 {
		balance = cfg.Analytics.DefaultBalance
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	result, err := journal.NewService(src, nil, log.Component("journal")).Analytics(ctx, account, balance)
	if err != nil {
		return err
	}

	if err := report.SaveWorkbook(exportOut, result); err != nil {
		return err
	}

	PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Report written to %s (%d trades)", exportOut, result.Core.TradeCount))
	return nil
}
