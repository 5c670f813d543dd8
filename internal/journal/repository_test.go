package journal

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradejournal/pkg/config"
	"github.com/wonny/tradejournal/pkg/database"
)

func TestNullDecimalString(t *testing.T) {
	assert.Nil(t, nullDecimalString(decimal.NullDecimal{}))

	s := nullDecimalString(decimal.NullDecimal{Decimal: decimal.RequireFromString("-12.5000000000"), Valid: true})
	require.NotNil(t, s)
	assert.Equal(t, "-12.5", *s)
}

// TestRepository_Integration requires DATABASE_URL with the journal tables migrated
func TestRepository_Integration(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	db, err := database.New(cfg)
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo := NewRepository(db.Pool)
	unknown := uuid.NewString()

	positions, err := repo.ListPositions(ctx, unknown)
	require.NoError(t, err)
	assert.Empty(t, positions)

	executions, err := repo.ListExecutions(ctx, unknown)
	require.NoError(t, err)
	assert.Empty(t, executions)
}
