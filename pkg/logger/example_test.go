package logger_test

import (
	"errors"

	"github.com/wonny/tradejournal/pkg/config"
	"github.com/wonny/tradejournal/pkg/logger"
)

// Example_withFields demonstrates structured logging with fields
func Example_withFields() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)
	defer log.Close()

	log.WithFields(map[string]interface{}{
		"account_id": "acc-1",
		"trades":     42,
		"risk_level": "BALANCED",
	}).Info("Analytics computed")

	err := errors.New("closed position without realizedPnL")
	log.WithError(err).WithField("position_id", "p-17").Error("Invalid journal input")
}
