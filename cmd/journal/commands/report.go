package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/tradejournal/internal/journal"
	"github.com/wonny/tradejournal/internal/report"
	"github.com/wonny/tradejournal/pkg/logger"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "계정 성과 리포트 출력",
	Long: `한 계정의 포지션/체결을 읽어 분석 리포트를 출력합니다.

Sources:
  --demo          생성된 데모 데이터
  --file PATH     스냅샷 파일 (.json / .yaml)
  --url URL       원격 스냅샷 (JSON)
  (default)       STORE_DRIVER (sqlite | postgres), --account 필수

Example:
  go run ./cmd/journal report --demo
  go run ./cmd/journal report --file journal.yaml --account <id> --advanced
  go run ./cmd/journal report --account <id> --format json`,
	RunE: runReport,
}

var (
	reportSource   sourceFlags
	reportBalance  float64
	reportAdvanced bool
	reportFormat   string
	reportTimeout  time.Duration
)

func init() {
	rootCmd.AddCommand(reportCmd)

	// Flags
	reportSource.register(reportCmd)
	reportCmd.Flags().Float64Var(&reportBalance, "balance", 0, "starting/account balance (default DEFAULT_BALANCE)")
	reportCmd.Flags().BoolVar(&reportAdvanced, "advanced", false, "behavioural analytics only")
	reportCmd.Flags().StringVar(&reportFormat, "format", "text", "output format (text|json)")
	reportCmd.Flags().DurationVar(&reportTimeout, "timeout", 30*time.Second, "load timeout")
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportFormat != "text" && reportFormat != "json" {
		return fmt.Errorf("unknown format %q (text|json)", reportFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg)
	defer log.Close()

	src, closer, account, err := reportSource.open(cfg, log)
	if err != nil {
		return err
	}
	defer closer.Close()

	balance := reportBalance
	if balance <= 0 {
		balance = cfg.Analytics.DefaultBalance
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), reportTimeout)
	defer cancel()

	service := journal.NewService(src, nil, log.Component("journal"))
	out := cmd.OutOrStdout()

	if reportAdvanced {
		result, err := service.Advanced(ctx, account, balance)
		if err != nil {
			return err
		}
		if reportFormat == "json" {
			return writeJSON(out, result)
		}
		return report.RenderAdvancedText(out, result)
	}

	result, err := service.Analytics(ctx, account, balance)
	if err != nil {
		return err
	}
	if reportFormat == "json" {
		return writeJSON(out, result)
	}
	return report.RenderText(out, result)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
