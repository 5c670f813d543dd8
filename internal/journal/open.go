package journal

import (
	"errors"
	"fmt"
	"io"

	"github.com/wonny/tradejournal/internal/contracts"
	"github.com/wonny/tradejournal/pkg/config"
	"github.com/wonny/tradejournal/pkg/database"
)

// ErrUnknownSource is returned for an unsupported STORE_DRIVER
var ErrUnknownSource = errors.New("unknown journal source")

var (
	_ contracts.JournalSource = (*Repository)(nil)
	_ contracts.JournalSource = (*SQLiteStore)(nil)
	_ contracts.JournalSource = (*FileSource)(nil)
	_ contracts.JournalSource = (*HTTPSource)(nil)
	_ SnapshotLoader          = (*FileSource)(nil)
	_ SnapshotLoader          = (*HTTPSource)(nil)
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// OpenSource opens the configured journal store.
// 반환된 io.Closer 로 연결을 정리한다.
func OpenSource(cfg *config.Config) (contracts.JournalSource, io.Closer, error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		store, err := OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil

	case config.DriverPostgres:
		db, err := database.New(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect journal database: %w", err)
		}
		return NewRepository(db.Pool), closerFunc(func() error {
			db.Close()
			return nil
		}), nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Store.Driver)
	}
}
