package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/baechuer/peoplehub/internal/bootstrap"
	"github.com/baechuer/peoplehub/internal/logger"
)

var mailerCmd = &cobra.Command{
	Use:   "mailer",
	Short: "Consume queued mail from RabbitMQ and deliver it over SMTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		lg := logger.Component("mailer")
		consumer, err := bootstrap.NewMailer(cfg, lg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		lg.Info().Str("exchange", cfg.RabbitExchange).Int("workers", cfg.MailerWorkers).Msg("mailer started")
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		lg.Info().Msg("mailer stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mailerCmd)
}
