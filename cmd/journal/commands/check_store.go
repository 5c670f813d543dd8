package commands

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/tradejournal/internal/journal"
	"github.com/wonny/tradejournal/pkg/config"
	"github.com/wonny/tradejournal/pkg/database"
	"github.com/wonny/tradejournal/pkg/redis"
)

// checkStoreCmd represents the check-store command
var checkStoreCmd = &cobra.Command{
	Use:   "check-store",
	Short: "저널 저장소 연결 테스트",
	Long: `STORE_DRIVER 저장소 연결을 테스트합니다.

- postgres: Ping, Health Check, Connection Pool 통계
- sqlite: 스키마 마이그레이션 후 계정 목록
- REDIS_ENABLED 시 Redis 연결 (REDIS_URL 또는 REDIS_HOST/PORT)

Example:
  go run ./cmd/journal check-store
  STORE_DRIVER=postgres go run ./cmd/journal check-store`,
	RunE: runCheckStore,
}

func init() {
	rootCmd.AddCommand(checkStoreCmd)
}

func runCheckStore(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "=== Trade Journal Store Check ===")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✅ Config loaded (ENV: %s, STORE: %s)\n", cfg.Env, cfg.Store.Driver)

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		err = checkPostgres(ctx, cmd, cfg)
	default:
		err = checkSQLite(ctx, cmd, cfg)
	}
	if err != nil {
		return err
	}

	return checkRedis(cmd, cfg)
}

// checkRedis pings Redis when rate limiting uses it (REDIS_ENABLED)
func checkRedis(cmd *cobra.Command, cfg *config.Config) error {
	out := cmd.OutOrStdout()
	if !cfg.Redis.Enabled {
		fmt.Fprintln(out, "   Redis: disabled (in-process rate limiter)")
		return nil
	}

	client, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("❌ Redis: %w", err)
	}
	defer client.Close()

	PrintSuccess(out, "Redis reachable (shared rate limiter)")
	return nil
}

func checkPostgres(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "   Database URL: %s\n\n", maskPassword(cfg.Database.URL))

	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("❌ Failed to connect to database: %w", err)
	}
	defer db.Close()
	PrintSuccess(out, "Database connection established")

	status, err := db.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("❌ Health check failed: %w", err)
	}

	PrintSuccess(out, "Health Check Results:")
	fmt.Fprintf(out, "   Healthy: %v\n", status.Healthy)
	fmt.Fprintf(out, "   Response Time: %v\n\n", status.ResponseTime)

	fmt.Fprintln(out, "📊 Connection Pool Statistics:")
	fmt.Fprintf(out, "   Max Connections: %d\n", status.Stats.MaxConns)
	fmt.Fprintf(out, "   Total Connections: %d\n", status.Stats.TotalConns)
	fmt.Fprintf(out, "   Idle Connections: %d\n", status.Stats.IdleConns)

	// 테이블 읽기까지 확인
	if _, err := journal.NewRepository(db.Pool).ListPositions(ctx, journal.DemoAccountID); err != nil {
		return fmt.Errorf("❌ Query positions failed: %w", err)
	}
	PrintSuccess(out, "Journal tables readable")
	return nil
}

func checkSQLite(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	out := cmd.OutOrStdout()

	store, err := journal.OpenSQLite(cfg.Store.SQLitePath)
	if err != nil {
		return fmt.Errorf("❌ Failed to open %s: %w", cfg.Store.SQLitePath, err)
	}
	defer store.Close()
	PrintSuccess(out, fmt.Sprintf("SQLite opened (%s)", cfg.Store.SQLitePath))

	accounts, err := store.Accounts(ctx)
	if err != nil {
		return fmt.Errorf("❌ List accounts failed: %w", err)
	}
	fmt.Fprintf(out, "   Accounts: %d\n", len(accounts))
	PrintList(out, accounts)
	return nil
}

// maskPassword hides the password in the database URL for display
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "***"
	}
	return u.Redacted()
}
