package database_test

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wonny/tradejournal/pkg/config"
	"github.com/wonny/tradejournal/pkg/database"
)

// Example shows a pooled connection reading a numeric PnL column
// as decimal.Decimal
func Example() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var netPnL decimal.Decimal
	err = db.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(realized_pnl), 0) - COALESCE(SUM(total_fees), 0)
		FROM positions
		WHERE account_id = $1::uuid AND status IN ('CLOSED', 'LIQUIDATED')
	`, "6f1c2a9e-2d4b-4a8e-9d7f-1b2c3d4e5f60").Scan(&netPnL)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}

	stats := db.Stats()
	fmt.Printf("Net PnL: %s\n", netPnL.StringFixed(2))
	fmt.Printf("Pool: %d/%d connections\n", stats.AcquiredConns, stats.MaxConns)
}
