package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/tradejournal/internal/contracts"
	"github.com/wonny/tradejournal/internal/journal"
	"github.com/wonny/tradejournal/pkg/config"
	"github.com/wonny/tradejournal/pkg/httputil"
	"github.com/wonny/tradejournal/pkg/logger"
)

// sourceFlags selects where a command reads the journal from.
// 우선순위: --demo > --file > --url > STORE_DRIVER
type sourceFlags struct {
	demo    bool
	file    string
	url     string
	account string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.demo, "demo", false, "generated demo journal")
	cmd.Flags().StringVar(&f.file, "file", "", "snapshot file (.json, .yaml)")
	cmd.Flags().StringVar(&f.url, "url", "", "remote snapshot endpoint (JSON)")
	cmd.Flags().StringVar(&f.account, "account", "", "account id")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// open returns the selected source and the account to analyze
func (f *sourceFlags) open(cfg *config.Config, log *logger.Logger) (contracts.JournalSource, io.Closer, string, error) {
	account := f.account

	switch {
	case f.demo:
		if account == "" {
			account = journal.DemoAccountID
		}
		snap := journal.DemoSnapshot(account, time.Now().UTC())
		return journal.NewMemorySource(snap), nopCloser{}, account, nil

	case f.file != "":
		return journal.NewFileSource(f.file), nopCloser{}, account, nil

	case f.url != "":
		client := httputil.New(cfg, log)
		return journal.NewHTTPSource(client, f.url), nopCloser{}, account, nil
	}

	if account == "" {
		return nil, nil, "", fmt.Errorf("--account is required for store %q", cfg.Store.Driver)
	}

	src, closer, err := journal.OpenSource(cfg)
	if err != nil {
		return nil, nil, "", err
	}
	return src, closer, account, nil
}
