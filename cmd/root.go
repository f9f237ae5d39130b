package cmd

import (
	"os"

	"heartmatch-backend/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const app = "heartmatch"

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "heartmatch serves the dating backend: profiles, discovery, swipes and matches",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is config.yaml when present)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(scoreCmd)
}

// loadConfig reads the configuration and sets up the global logger
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	setupLogger(cfg.Log)
	return cfg, nil
}

// setupLogger configures zerolog logger
func setupLogger(cfg config.LogConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
