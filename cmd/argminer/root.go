package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"argminer/internal/gateway/config"
	"argminer/internal/logging"
)

// loadConfig is swapped in tests.
var loadConfig = config.Load

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "argminer",
		Short:         "Extract argument graphs from discussion text",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newAnalyzeCmd(), newStrategiesCmd())
	return root
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, nil, &config.ConfigError{Key: "LOG_LEVEL", Reason: err.Error()}
	}
	return cfg, logger, nil
}
