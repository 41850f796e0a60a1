package cliutil

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daemonp/crc8calc/internal/cache"
	"github.com/daemonp/crc8calc/internal/config"
	"github.com/daemonp/crc8calc/internal/history"
	"github.com/daemonp/crc8calc/internal/log"
)

// App carries what every subcommand needs after flag parsing.
type App struct {
	Config *config.Config
	Log    *log.Logger
}

// LoadApp reads the --config file and builds the logger, honouring --log-level.
func LoadApp(cmd *cobra.Command) (*App, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log = level
	}

	logger := log.New(cfg.Log, cmd.ErrOrStderr())
	logger.Debug("Loaded configuration from %s", configFile)

	return &App{Config: cfg, Log: logger}, nil
}

// OpenHistory returns the persisted history, or an in-memory one when
// history is disabled in the configuration.
func (a *App) OpenHistory() (*history.History, error) {
	if !a.Config.HistoryEnabled() {
		a.Log.Debug("History disabled, keeping results in memory only")
		return history.New(history.NewMemoryStore(), a.Config.History.Limit)
	}

	store, err := cache.NewFileStore(a.Config.History.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	a.Log.Debug("Using history file %s", store.Path())

	return history.New(store, a.Config.History.Limit)
}
