package config_test

import (
	"fmt"

	"github.com/wonny/tradejournal/pkg/config"
)

// Example demonstrates how to use the config package
func Example() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	// Access configuration values
	fmt.Printf("Server running on port: %s\n", cfg.Port)
	fmt.Printf("Environment: %s\n", cfg.Env)
	fmt.Printf("Journal store: %s\n", cfg.Store.Driver)
	fmt.Printf("Default balance: %.0f\n", cfg.Analytics.DefaultBalance)
}
