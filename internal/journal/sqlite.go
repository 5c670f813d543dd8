package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/wonny/tradejournal/internal/contracts"
)

// sqliteSchema mirrors the Postgres journal tables.
// decimal 은 TEXT 로 저장해서 정밀도 그대로 왕복, 시각은 고정폭 UTC 문자열.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS positions (
    id                     TEXT PRIMARY KEY,
    account_id             TEXT NOT NULL,
    symbol                 TEXT NOT NULL,
    status                 TEXT NOT NULL DEFAULT 'OPEN',
    side                   TEXT NOT NULL,
    opened_at              TEXT NOT NULL,
    closed_at              TEXT,
    avg_entry_price        TEXT NOT NULL,
    avg_exit_price         TEXT,
    max_size               TEXT NOT NULL,
    total_volume           TEXT NOT NULL,
    total_fees             TEXT NOT NULL,
    realized_pnl           TEXT,
    holding_period_seconds TEXT,
    r_multiple             TEXT
);

CREATE TABLE IF NOT EXISTS executions (
    id          TEXT PRIMARY KEY,
    account_id  TEXT NOT NULL,
    position_id TEXT,
    sig         TEXT NOT NULL,
    block_time  TEXT NOT NULL,
    symbol      TEXT NOT NULL,
    side        TEXT NOT NULL,
    type        TEXT NOT NULL DEFAULT 'PERP',
    price       TEXT NOT NULL,
    size        TEXT NOT NULL,
    notional    TEXT NOT NULL,
    fee         TEXT NOT NULL,
    fee_asset   TEXT NOT NULL DEFAULT 'USDC',
    is_maker    INTEGER NOT NULL DEFAULT 0,
    order_type  TEXT NOT NULL DEFAULT 'MARKET'
);

CREATE INDEX IF NOT EXISTS idx_positions_account_status_time ON positions(account_id, status, opened_at);
CREATE INDEX IF NOT EXISTS idx_executions_account_time ON executions(account_id, block_time);
`

// sqliteTimeLayout is fixed-width so lexical ORDER BY matches time order
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore is a local journal store backed by SQLite (pure Go, no CGo)
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the journal database at path and applies the schema.
// ":memory:" 은 테스트용.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite 는 single-writer
	db.SetMaxIdleConns(1)

	s := &SQLiteStore{db: db}
	if err := s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate applies the schema (idempotent)
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("apply sqlite schema: %w", err)
	}
	return nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SavePositions upserts positions in a single transaction
func (s *SQLiteStore) SavePositions(ctx context.Context, positions []contracts.Position) error {
	if len(positions) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO positions (
			id, account_id, symbol, status, side, opened_at, closed_at,
			avg_entry_price, avg_exit_price, max_size, total_volume, total_fees,
			realized_pnl, holding_period_seconds, r_multiple
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			closed_at = excluded.closed_at,
			avg_exit_price = excluded.avg_exit_price,
			max_size = excluded.max_size,
			total_volume = excluded.total_volume,
			total_fees = excluded.total_fees,
			realized_pnl = excluded.realized_pnl,
			holding_period_seconds = excluded.holding_period_seconds,
			r_multiple = excluded.r_multiple
	`)
	if err != nil {
		return fmt.Errorf("prepare position upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range positions {
		_, err := stmt.ExecContext(ctx,
			p.ID, p.AccountID, p.Symbol, string(p.Status), string(p.Side),
			formatTime(p.OpenedAt), nullTime(p.ClosedAt),
			p.AvgEntryPrice, nullString(p.AvgExitPrice), p.MaxSize, p.TotalVolume, p.TotalFees,
			nullString(p.RealizedPnL), nullString(p.HoldingPeriodSeconds), nullString(p.RMultiple),
		)
		if err != nil {
			return fmt.Errorf("upsert position %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit positions: %w", err)
	}
	return nil
}

// SaveExecutions inserts executions, ignoring ids that already exist
func (s *SQLiteStore) SaveExecutions(ctx context.Context, executions []contracts.Execution) error {
	if len(executions) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO executions (
			id, account_id, position_id, sig, block_time, symbol, side, type,
			price, size, notional, fee, fee_asset, is_maker, order_type
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare execution insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range executions {
		_, err := stmt.ExecContext(ctx,
			e.ID, e.AccountID, nullString(e.PositionID), e.Sig, formatTime(e.BlockTime),
			e.Symbol, string(e.Side), orDefault(string(e.Type), string(contracts.InstrumentPerp)),
			e.Price, e.Size, e.Notional, e.Fee,
			orDefault(e.FeeAsset, "USDC"), e.IsMaker,
			orDefault(string(e.OrderType), string(contracts.OrderTypeMarket)),
		)
		if err != nil {
			return fmt.Errorf("insert execution %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit executions: %w", err)
	}
	return nil
}

// SaveSnapshot stores positions then executions
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap contracts.Snapshot) error {
	if err := s.SavePositions(ctx, snap.Positions); err != nil {
		return err
	}
	return s.SaveExecutions(ctx, snap.Executions)
}

// ListPositions returns all positions of an account ordered by open time
func (s *SQLiteStore) ListPositions(ctx context.Context, accountID string) ([]contracts.Position, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			id, account_id, symbol, status, side, opened_at, closed_at,
			avg_entry_price, avg_exit_price, max_size, total_volume, total_fees,
			realized_pnl, holding_period_seconds, r_multiple
		FROM positions
		WHERE account_id = ?
		ORDER BY opened_at, id
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("query positions: %w", err)
	}
	defer rows.Close()

	var positions []contracts.Position
	for rows.Next() {
		var (
			p                                contracts.Position
			status, side, openedAt           string
			closedAt, avgExit, pnl, hold, rm sql.NullString
		)
		if err := rows.Scan(
			&p.ID, &p.AccountID, &p.Symbol, &status, &side, &openedAt, &closedAt,
			&p.AvgEntryPrice, &avgExit, &p.MaxSize, &p.TotalVolume, &p.TotalFees,
			&pnl, &hold, &rm,
		); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}

		p.Status = contracts.PositionStatus(status)
		p.Side = contracts.Side(side)
		if p.OpenedAt, err = parseTime(openedAt); err != nil {
			return nil, fmt.Errorf("position %s opened_at: %w", p.ID, err)
		}
		if closedAt.Valid {
			t, err := parseTime(closedAt.String)
			if err != nil {
				return nil, fmt.Errorf("position %s closed_at: %w", p.ID, err)
			}
			p.ClosedAt = &t
		}
		p.AvgExitPrice = stringPtr(avgExit)
		p.RealizedPnL = stringPtr(pnl)
		p.HoldingPeriodSeconds = stringPtr(hold)
		p.RMultiple = stringPtr(rm)

		positions = append(positions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return positions, nil
}

// ListExecutions returns all executions of an account ordered by block time
func (s *SQLiteStore) ListExecutions(ctx context.Context, accountID string) ([]contracts.Execution, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			id, account_id, position_id, sig, block_time, symbol, side, type,
			price, size, notional, fee, fee_asset, is_maker, order_type
		FROM executions
		WHERE account_id = ?
		ORDER BY block_time, id
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("query executions: %w", err)
	}
	defer rows.Close()

	var executions []contracts.Execution
	for rows.Next() {
		var (
			e                                contracts.Execution
			positionID                       sql.NullString
			blockTime, side, instrument, ord string
		)
		if err := rows.Scan(
			&e.ID, &e.AccountID, &positionID, &e.Sig, &blockTime, &e.Symbol, &side, &instrument,
			&e.Price, &e.Size, &e.Notional, &e.Fee, &e.FeeAsset, &e.IsMaker, &ord,
		); err != nil {
			return nil, fmt.Errorf("scan execution: %w", err)
		}

		if e.BlockTime, err = parseTime(blockTime); err != nil {
			return nil, fmt.Errorf("execution %s block_time: %w", e.ID, err)
		}
		e.PositionID = stringPtr(positionID)
		e.Side = contracts.Side(side)
		e.Type = contracts.InstrumentType(instrument)
		e.OrderType = contracts.OrderType(ord)

		executions = append(executions, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return executions, nil
}

// Accounts lists the distinct account ids that have positions
func (s *SQLiteStore) Accounts(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT account_id FROM positions ORDER BY account_id`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, id)
	}
	return accounts, rows.Err()
}

// ============================================================================
// helpers
// ============================================================================

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(sqliteTimeLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
