package main

import (
	"github.com/plus3/bunnymark/config"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string // YAML settings file, defaults when empty
	logLevel   string // overrides log_level from the settings file
	seed       uint64 // overrides seed from the settings file
)

var rootCmd = &cobra.Command{
	Use:          "bunnymark",
	Short:        "Sprite and GUI node rendering benchmark",
	SilenceUsage: true,
}

// loadConfig reads the settings file, applies the global flag overrides and
// sets up logging.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cfg, eris.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}
	logrus.SetLevel(level)
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML settings file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 1, "Seed for variant and initial state generation")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(stressCmd)
	rootCmd.AddCommand(scenesCmd)
}
