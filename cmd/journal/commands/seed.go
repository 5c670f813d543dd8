package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/tradejournal/internal/contracts"
	"github.com/wonny/tradejournal/internal/journal"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "SQLite 저널 시드",
	Long: `SQLite 저널에 포지션/체결을 적재합니다.

이 명령어는:
- --demo: 데모 데이터 생성 후 적재
- --from: 스냅샷 파일(.json/.yaml) 적재
- --out: 적재한 스냅샷을 파일로도 저장

같은 id 는 upsert 되므로 여러 번 실행해도 안전합니다.

Example:
  go run ./cmd/journal seed --demo
  go run ./cmd/journal seed --from fixtures/journal.yaml --sqlite journal.db
  go run ./cmd/journal seed --demo --out demo.yaml`,
	RunE: runSeed,
}

var (
	seedDemo    bool
	seedFrom    string
	seedAccount string
	seedSQLite  string
	seedOut     string
)

func init() {
	rootCmd.AddCommand(seedCmd)

	// Flags
	seedCmd.Flags().BoolVar(&seedDemo, "demo", false, "generate demo journal")
	seedCmd.Flags().StringVar(&seedFrom, "from", "", "snapshot file to import")
	seedCmd.Flags().StringVar(&seedAccount, "account", "", "demo account id (default fixed demo id)")
	seedCmd.Flags().StringVar(&seedSQLite, "sqlite", "", "SQLite path (default SQLITE_PATH)")
	seedCmd.Flags().StringVar(&seedOut, "out", "", "also write the snapshot to this file")
}

func runSeed(cmd *cobra.Command, args []string) error {
	if seedDemo == (seedFrom != "") {
		return fmt.Errorf("exactly one of --demo or --from is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	PrintHeader(out, "Seed journal")

	var snap contracts.Snapshot
	if seedDemo {
		account := seedAccount
		if account == "" {
			account = journal.DemoAccountID
		}
		snap = journal.DemoSnapshot(account, time.Now().UTC())
	} else {
		snap, err = journal.LoadSnapshotFile(seedFrom)
		if err != nil {
			return err
		}
	}

	path := seedSQLite
	if path == "" {
		path = cfg.Store.SQLitePath
	}

	store, err := journal.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	if err := store.SaveSnapshot(ctx, snap); err != nil {
		return err
	}

	accounts, err := store.Accounts(ctx)
	if err != nil {
		return err
	}

	PrintKeyValue(out, "SQLite", path, 10)
	PrintKeyValue(out, "Positions", fmt.Sprintf("%d", len(snap.Positions)), 10)
	PrintKeyValue(out, "Executions", fmt.Sprintf("%d", len(snap.Executions)), 10)
	fmt.Fprintln(out, "   Accounts:")
	PrintList(out, accounts)

	if seedOut != "" {
		if err := journal.WriteSnapshotFile(seedOut, snap); err != nil {
			return err
		}
		PrintKeyValue(out, "Snapshot", seedOut, 10)
	}

	PrintSeparator(out)
	PrintSuccess(out, "Journal seeded")
	return nil
}
