package main

import (
	"os"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/baechuer/peoplehub/internal/config"
	"github.com/baechuer/peoplehub/internal/logger"
)

var (
	envFile string

	// cfg is loaded once per invocation, before any subcommand runs.
	cfg *config.Config
	lg  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "peoplehub",
	Short:         "PeopleHub HR admin backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadFile(envFile)
		if err != nil {
			return err
		}
		cfg = c
		logger.Setup(os.Stdout, logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
		lg = zlog.Logger
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load before reading the environment (default .env when present)")
}

func main() {
	logger.Init()
	if err := rootCmd.Execute(); err != nil {
		zlog.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
