package journal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradejournal/pkg/config"
)

func TestOpenSource(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		cfg := &config.Config{Store: config.StoreConfig{
			Driver:     config.DriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "journal.db"),
		}}

		src, closer, err := OpenSource(cfg)
		require.NoError(t, err)
		defer closer.Close()
		assert.IsType(t, &SQLiteStore{}, src)
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := &config.Config{Store: config.StoreConfig{Driver: "mongo"}}

		_, _, err := OpenSource(cfg)
		assert.ErrorIs(t, err, ErrUnknownSource)
	})
}
