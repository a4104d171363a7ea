package bootstrap

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"

	"github.com/baechuer/peoplehub/internal/application/auth"
	"github.com/baechuer/peoplehub/internal/application/employee"
	"github.com/baechuer/peoplehub/internal/config"
	"github.com/baechuer/peoplehub/internal/infrastructure/db/migrations"
	"github.com/baechuer/peoplehub/internal/infrastructure/db/postgres"
	"github.com/baechuer/peoplehub/internal/infrastructure/mail"
	"github.com/baechuer/peoplehub/internal/infrastructure/memory"
	"github.com/baechuer/peoplehub/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/peoplehub/internal/infrastructure/security"
)

// withDB opens the database for a one-shot command and closes it afterwards.
func withDB(cfg *config.Config, deps Deps, fn func(db *sql.DB) error) error {
	db, err := deps.NewDB(cfg.DBDSN, cfg.DBDebug)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func MigrateUp(cfg *config.Config, deps Deps) error {
	return withDB(cfg, deps, migrations.Up)
}

func MigrateDown(cfg *config.Config, deps Deps, steps int) error {
	return withDB(cfg, deps, func(db *sql.DB) error { return migrations.Down(db, steps) })
}

func MigrateVersion(cfg *config.Config, deps Deps) (uint, bool, error) {
	var (
		v     uint
		dirty bool
	)
	err := withDB(cfg, deps, func(db *sql.DB) error {
		var err error
		v, dirty, err = migrations.Version(db)
		return err
	})
	return v, dirty, err
}

// SeedAdmin creates the configured superadmin when the email is not taken yet.
func SeedAdmin(ctx context.Context, cfg *config.Config, deps Deps) (bool, error) {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return false, errors.New("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}
	var created bool
	err := withDB(cfg, deps, func(db *sql.DB) error {
		var err error
		created, err = postgres.SeedAdmin(ctx, postgres.NewUserRepo(db), security.NewBcryptHasher(cfg.BcryptCost),
			cfg.SeedAdminEmail, cfg.SeedAdminPassword, deps.Logger)
		return err
	})
	return created, err
}

// AccrueLeaves runs one accrual outside the scheduler.
func AccrueLeaves(ctx context.Context, cfg *config.Config, deps Deps) (int64, error) {
	var n int64
	err := withDB(cfg, deps, func(db *sql.DB) error {
		users := postgres.NewUserRepo(db)
		svc := employee.NewService(postgres.NewEmployeeRepo(db), users, postgres.NewProjectRepo(db), security.NewBcryptHasher(cfg.BcryptCost)).
			WithLogger(deps.Logger)
		var err error
		n, err = svc.AccrueMonthlyLeaves(ctx)
		return err
	})
	return n, err
}

// NewMailer builds the queue consumer that delivers mail over SMTP.
// Without SMTP settings, dev falls back to logging the messages.
func NewMailer(cfg *config.Config, lg zerolog.Logger) (*rabbitmq.Consumer, error) {
	if cfg.RabbitURL == "" {
		return nil, errors.New("mailer requires RABBIT_URL")
	}

	var sink auth.Notifier
	switch {
	case cfg.SMTP.Host != "" && cfg.SMTP.From != "":
		sink = newSMTPNotifier(cfg, lg)
	case cfg.IsDev():
		lg.Warn().Msg("SMTP not configured; mailer logs messages instead of sending")
		sink = memory.NewLogNotifier(lg)
	default:
		return nil, errors.New("mailer requires SMTP_HOST and SMTP_FROM")
	}

	return rabbitmq.NewConsumer(cfg.RabbitURL, sink, lg,
		rabbitmq.WithExchange(cfg.RabbitExchange),
		rabbitmq.WithPrefetch(cfg.MailerPrefetch),
		rabbitmq.WithWorkers(cfg.MailerWorkers),
		rabbitmq.WithPermanent(mail.IsPermanent),
	), nil
}
