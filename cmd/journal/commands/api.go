package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/tradejournal/internal/api"
	"github.com/wonny/tradejournal/internal/api/handlers"
	"github.com/wonny/tradejournal/internal/journal"
	"github.com/wonny/tradejournal/internal/metrics"
	"github.com/wonny/tradejournal/pkg/logger"
	"github.com/wonny/tradejournal/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- STORE_DRIVER 저널 저장소 연결 (sqlite | postgres)
- Redis 사용 시 공유 rate limit, 아니면 프로세스 내부 limit
- METRICS_ENABLED 시 /metrics 노출

Endpoints:
  GET  /health                                      - Health check
  GET  /metrics                                     - Prometheus metrics
  GET  /api/accounts/{accountID}/analytics          - 전체 분석 (?startingBalance=)
  GET  /api/accounts/{accountID}/analytics/advanced - 행동 분석 (?accountBalance=)

Example:
  go run ./cmd/journal api
  go run ./cmd/journal api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (default PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Trade Journal API Server ===")

	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)
	defer log.Close()

	log.WithFields(map[string]interface{}{
		"port":  cfg.Port,
		"env":   cfg.Env,
		"store": cfg.Store.Driver,
	}).Info("Initializing API server")

	// 3. Open journal store
	source, closer, err := journal.OpenSource(cfg)
	if err != nil {
		return fmt.Errorf("open journal store: %w", err)
	}
	defer closer.Close()

	log.WithField("store", cfg.Store.Driver).Info("Journal store opened")

	// 4. Redis (optional, rate limiting)
	rdb, err := redis.New(cfg)
	if err != nil {
		// Redis 없이도 서버는 동작 (local limiter)
		log.WithError(err).Warn("Redis unavailable, using in-process rate limiter")
		rdb = nil
	} else {
		defer rdb.Close()
	}
	limiter := api.NewLimiter(cfg, rdb)

	proxies, err := api.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
	if err != nil {
		return err
	}

	// 5. Metrics
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	// 6. Service + handler
	service := journal.NewService(source, m, log.Component("journal"))
	analyticsHandler := handlers.NewAnalyticsHandler(service, cfg.Analytics.DefaultBalance, log)

	// 7. Router + server
	router := api.NewRouter(analyticsHandler, limiter, proxies, m, log)
	server := api.New(cfg, log, router)

	// 8. Start server with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	if m != nil {
		fmt.Println("  GET  /metrics")
	}
	fmt.Println("  GET  /api/accounts/{accountID}/analytics")
	fmt.Println("  GET  /api/accounts/{accountID}/analytics/advanced")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal or listen failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	case <-quit:
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
