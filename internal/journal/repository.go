package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/wonny/tradejournal/internal/contracts"
)

// Repository reads the journal tables from Postgres
// ⭐ SSOT: positions / executions 테이블 조회는 여기서만
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new journal repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListPositions returns all positions of an account ordered by open time
func (r *Repository) ListPositions(ctx context.Context, accountID string) ([]contracts.Position, error) {
	// numeric 컬럼은 pgxdecimal 로 decimal.Decimal 스캔 (database.New AfterConnect)
	query := `
		SELECT
			id::text, account_id::text, symbol, status::text, side::text,
			opened_at, closed_at,
			avg_entry_price, avg_exit_price, max_size, total_volume, total_fees,
			realized_pnl, holding_period_seconds, r_multiple
		FROM positions
		WHERE account_id = $1
		ORDER BY opened_at, id
	`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	var positions []contracts.Position
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return positions, nil
}

// ListExecutions returns all executions of an account ordered by block time
func (r *Repository) ListExecutions(ctx context.Context, accountID string) ([]contracts.Execution, error) {
	query := `
		SELECT
			id::text, account_id::text, position_id::text,
			sig, block_time, symbol, side::text,
			COALESCE(type::text, 'PERP'),
			price, size, notional, fee,
			COALESCE(fee_asset, ''), COALESCE(is_maker, false),
			COALESCE(order_type::text, 'MARKET')
		FROM executions
		WHERE account_id = $1
		ORDER BY block_time, id
	`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query executions: %w", err)
	}
	defer rows.Close()

	var executions []contracts.Execution
	for rows.Next() {
		e, err := scanExecution(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan execution: %w", err)
		}
		executions = append(executions, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return executions, nil
}

func scanPosition(row pgx.Row) (contracts.Position, error) {
	var (
		p                               contracts.Position
		status, side                    string
		closedAt                        *time.Time
		avgEntry, maxSize, volume, fees decimal.Decimal
		avgExit, pnl, holding, rMult    decimal.NullDecimal
	)

	err := row.Scan(
		&p.ID, &p.AccountID, &p.Symbol, &status, &side,
		&p.OpenedAt, &closedAt,
		&avgEntry, &avgExit, &maxSize, &volume, &fees,
		&pnl, &holding, &rMult,
	)
	if err != nil {
		return p, err
	}

	p.Status = contracts.PositionStatus(status)
	p.Side = contracts.Side(side)
	p.OpenedAt = p.OpenedAt.UTC()
	if closedAt != nil {
		t := closedAt.UTC()
		p.ClosedAt = &t
	}
	p.AvgEntryPrice = avgEntry.String()
	p.MaxSize = maxSize.String()
	p.TotalVolume = volume.String()
	p.TotalFees = fees.String()
	p.AvgExitPrice = nullDecimalString(avgExit)
	p.RealizedPnL = nullDecimalString(pnl)
	p.HoldingPeriodSeconds = nullDecimalString(holding)
	p.RMultiple = nullDecimalString(rMult)

	return p, nil
}

func scanExecution(row pgx.Row) (contracts.Execution, error) {
	var (
		e                          contracts.Execution
		positionID                 *string
		side, instrument, order    string
		price, size, notional, fee decimal.Decimal
	)

	err := row.Scan(
		&e.ID, &e.AccountID, &positionID,
		&e.Sig, &e.BlockTime, &e.Symbol, &side,
		&instrument,
		&price, &size, &notional, &fee,
		&e.FeeAsset, &e.IsMaker,
		&order,
	)
	if err != nil {
		return e, err
	}

	e.PositionID = positionID
	e.BlockTime = e.BlockTime.UTC()
	e.Side = contracts.Side(side)
	e.Type = contracts.InstrumentType(instrument)
	e.OrderType = contracts.OrderType(order)
	e.Price = price.String()
	e.Size = size.String()
	e.Notional = notional.String()
	e.Fee = fee.String()

	return e, nil
}

func nullDecimalString(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.String()
	return &s
}
