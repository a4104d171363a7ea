package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/baechuer/peoplehub/internal/application/auth"
	"github.com/baechuer/peoplehub/internal/application/dashboard"
	"github.com/baechuer/peoplehub/internal/application/employee"
	"github.com/baechuer/peoplehub/internal/application/project"
	"github.com/baechuer/peoplehub/internal/audit"
	"github.com/baechuer/peoplehub/internal/config"
	"github.com/baechuer/peoplehub/internal/infrastructure/db/migrations"
	"github.com/baechuer/peoplehub/internal/infrastructure/db/postgres"
	"github.com/baechuer/peoplehub/internal/infrastructure/mail"
	"github.com/baechuer/peoplehub/internal/infrastructure/memory"
	"github.com/baechuer/peoplehub/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/peoplehub/internal/infrastructure/redis"
	"github.com/baechuer/peoplehub/internal/infrastructure/security"
	"github.com/baechuer/peoplehub/internal/jobs"
	"github.com/baechuer/peoplehub/internal/logger"
	http_handlers "github.com/baechuer/peoplehub/internal/transport/http/handlers"
	"github.com/baechuer/peoplehub/internal/transport/http/middleware"
	"github.com/baechuer/peoplehub/internal/transport/http/response"
	"github.com/baechuer/peoplehub/internal/transport/http/router"
)

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	NewDB func(dsn string, debug bool) (*sql.DB, error)

	// Migrate runs before the server is built; nil skips it.
	Migrate func(db *sql.DB) error

	NewRedis func(addr, password string, db int) *redis.Client

	NewPublisher func(url, exchange string) (Publisher, error)

	NewRouter func(router.Deps) (http.Handler, error)

	Logger zerolog.Logger
}

// Publisher is the queue-backed notifier used with MAIL_TRANSPORT=rabbit.
type Publisher interface {
	auth.Notifier
	Close() error
}

func DefaultDeps() Deps {
	return Deps{
		NewDB:   config.NewDB,
		Migrate: migrations.Up,
		NewRedis: func(addr, password string, db int) *redis.Client {
			return redis.New(addr, password, db)
		},
		NewPublisher: func(url, exchange string) (Publisher, error) {
			return rabbitmq.NewPublisher(url, exchange)
		},
		NewRouter: router.New,
		Logger:    logger.Logger,
	}
}

/*
========================
 Server
========================
*/

// Server owns the HTTP server plus everything that must stop with it.
type Server struct {
	HTTP      *http.Server
	Scheduler *jobs.Scheduler
	Auth      *auth.Service

	cleanup []func()
	lg      zerolog.Logger
}

func (s *Server) Addr() string { return s.HTTP.Addr }

// ListenAndServe starts the scheduler, then blocks serving HTTP.
func (s *Server) ListenAndServe() error {
	s.Scheduler.Start()
	return s.HTTP.ListenAndServe()
}

// Shutdown drains HTTP, stops jobs, waits for background mail and releases resources.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.HTTP.Shutdown(ctx)
	s.Scheduler.Stop(ctx)
	if werr := s.Auth.Wait(ctx); werr != nil {
		s.lg.Warn().Err(werr).Msg("pending notifications abandoned")
	}
	runCleanup(s.cleanup)
	s.cleanup = nil
	return err
}

func (s *Server) Close() error {
	err := s.HTTP.Close()
	runCleanup(s.cleanup)
	s.cleanup = nil
	return err
}

/*
========================
 Core bootstrap logic
========================
*/

func NewServer(cfg *config.Config) (*Server, error) {
	return NewServerWithDeps(cfg, DefaultDeps())
}

func NewServerWithDeps(cfg *config.Config, deps Deps) (*Server, error) {
	lg := deps.Logger

	// 1) db
	db, err := deps.NewDB(cfg.DBDSN, cfg.DBDebug)
	if err != nil {
		return nil, err
	}
	cleanupFns := []func(){
		func() { _ = db.Close() },
	}
	fail := func(err error) (*Server, error) {
		runCleanup(cleanupFns)
		return nil, err
	}

	if deps.Migrate != nil {
		if err := deps.Migrate(db); err != nil {
			return fail(err)
		}
	}

	users := postgres.NewUserRepo(db)
	employees := postgres.NewEmployeeRepo(db)
	projects := postgres.NewProjectRepo(db)
	stats := postgres.NewStatsRepo(db)

	// 2) redis (best-effort)
	var redisCli *redis.Client
	if cfg.RedisAddr != "" && deps.NewRedis != nil {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := c.Ping(ctx)
		cancel()

		if err != nil {
			lg.Warn().Err(err).Msg("redis unavailable; sessions kept in process, per-route rate limits disabled")
			_ = c.Close()
		} else {
			lg.Info().Str("addr", c.Addr()).Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	var sessions auth.SessionStore
	var limiter middleware.RateLimiter
	if redisCli != nil {
		sessions = redis.NewSessionStore(redisCli)
		limiter = redis.NewFixedWindowLimiter(redisCli)
	} else {
		sessions = memory.NewSessionStore()
	}

	// 3) notifier
	notifier, closeNotifier, err := newNotifier(cfg, deps, lg)
	if err != nil {
		return fail(err)
	}
	if closeNotifier != nil {
		cleanupFns = append(cleanupFns, closeNotifier)
	}

	// 4) security
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	tokens := security.NewTokenService(security.TokenConfig{
		Issuer:        cfg.JWTIssuer,
		AccessSecret:  cfg.JWTAccessSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshSecret: cfg.JWTRefreshSecret,
		RefreshTTL:    cfg.RefreshTokenTTL,
	})

	// seed (dev only)
	if cfg.IsDev() && cfg.SeedAdminEmail != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err := postgres.SeedAdmin(ctx, users, hasher, cfg.SeedAdminEmail, cfg.SeedAdminPassword, lg)
		cancel()
		if err != nil {
			lg.Warn().Err(err).Msg("[seed] superadmin not created")
		}
	}

	// 5) services
	auditLog := audit.New(lg)

	authSvc := auth.NewService(
		users,
		hasher,
		tokens,
		sessions,
		security.NewNumericCodes(6),
		notifier,
		auth.Config{
			VerificationCodeTTL: cfg.VerificationCodeTTL,
			ResetCodeTTL:        cfg.ResetCodeTTL,
			NotifyTimeout:       cfg.NotifyTimeout,
		},
	).WithAudit(auditLog.Record).WithLogger(lg)

	employeeSvc := employee.NewService(employees, users, projects, hasher).
		WithAudit(auditLog.Record).
		WithLogger(lg)
	projectSvc := project.NewService(projects, users).
		WithAudit(auditLog.Record).
		WithLogger(lg)
	dashboardSvc := dashboard.NewService(stats)

	// 6) jobs
	sched := jobs.NewScheduler(lg.With().Str("component", "scheduler").Logger(), cfg.Location())
	if err := sched.AddLeaveAccrual(cfg.LeaveAccrualSchedule, employeeSvc); err != nil {
		return fail(err)
	}

	// 7) handlers + middleware
	secureCookies := cfg.SecureCookies()

	optional := map[string]http_handlers.Pinger{}
	if redisCli != nil {
		optional["redis"] = redisCli
	}
	healthH := http_handlers.NewHealthHandler(map[string]http_handlers.Pinger{"postgres": stats}, optional)

	guard := middleware.NewGuard(tokens, users, authSvc, middleware.GuardConfig{
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
		SecureCookies: secureCookies,
	}, response.WriteError)

	authLimit := middleware.FixedWindowConfig{Limit: cfg.AuthRateLimit, Window: cfg.RateLimitWindow}

	// 8) router
	mux, err := deps.NewRouter(router.Deps{
		Health:     healthH,
		Auth:       http_handlers.NewAuthHandler(authSvc, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, secureCookies),
		Employees:  http_handlers.NewEmployeeHandler(employeeSvc),
		Projects:   http_handlers.NewProjectHandler(projectSvc),
		Dashboard:  http_handlers.NewDashboardHandler(dashboardSvc),
		Require:    guard.Require,
		Limiter:    limiter,
		WriteError: response.WriteError,
		Options: router.Options{
			CORSOrigins:     cfg.CORSOrigins,
			GlobalPerMinute: cfg.GlobalRateLimitPerMinute,
			Limits: map[string]middleware.FixedWindowConfig{
				router.ScopeSignup:  authLimit,
				router.ScopeVerify:  authLimit,
				router.ScopeResend:  authLimit,
				router.ScopeForgot:  authLimit,
				router.ScopeReset:   authLimit,
				router.ScopeRefresh: authLimit,
				router.ScopeLogin:   {Limit: cfg.LoginRateLimit, Window: cfg.RateLimitWindow},
			},
		},
	})
	if err != nil {
		return fail(err)
	}

	// 9) server
	return &Server{
		HTTP: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      mux,
			ReadTimeout:  cfg.HTTPReadTimeout,
			WriteTimeout: cfg.HTTPWriteTimeout,
			IdleTimeout:  cfg.HTTPIdleTimeout,
		},
		Scheduler: sched,
		Auth:      authSvc,
		cleanup:   cleanupFns,
		lg:        lg,
	}, nil
}

// newNotifier picks the delivery path for one-time codes.
// A broker outage in dev degrades to the log notifier.
func newNotifier(cfg *config.Config, deps Deps, lg zerolog.Logger) (auth.Notifier, func(), error) {
	switch cfg.MailTransport {
	case config.MailTransportSMTP:
		return newSMTPNotifier(cfg, lg), nil, nil

	case config.MailTransportRabbit:
		if deps.NewPublisher == nil {
			return nil, nil, errors.New("bootstrap: no publisher factory")
		}
		pub, err := deps.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			if cfg.IsDev() {
				lg.Warn().Err(err).Msg("rabbitmq unavailable; using log notifier")
				return memory.NewLogNotifier(lg), nil, nil
			}
			return nil, nil, fmt.Errorf("rabbitmq publisher: %w", err)
		}
		return pub, func() { _ = pub.Close() }, nil

	default:
		return memory.NewLogNotifier(lg), nil, nil
	}
}

func newSMTPNotifier(cfg *config.Config, lg zerolog.Logger) *mail.SMTPNotifier {
	return mail.NewSMTPNotifier(mail.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
		Timeout:  cfg.SMTP.Timeout,
		Insecure: cfg.SMTP.Insecure,
	}, mail.NewRenderer(cfg.VerificationCodeTTL, cfg.ResetCodeTTL), lg)
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
