package cmd

import (
	"fmt"
	"os"

	"twii-miner/core/config"
	"twii-miner/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	rootFlag     string
	overrideFlag string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "twii-miner",
	Short: "Travel skill data miner",
	Long: `twii-miner extracts travel skills from the exported lore documents,
reconciles them with the curated override document and renders the Lua
data files of the travel addon.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Debug level gets ISO8601 timestamps from the development config.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "data root holding lore/ (overrides DATA_ROOT)")
	RootCmd.PersistentFlags().StringVar(&overrideFlag, "override", "", "override document (overrides DATA_OVERRIDE)")
}

// setup loads the configuration, applies the data flags and creates the
// logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if rootFlag != "" {
		cfg.Data.Root = rootFlag
	}
	if overrideFlag != "" {
		cfg.Data.Override = overrideFlag
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}
