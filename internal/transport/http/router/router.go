package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/baechuer/peoplehub/internal/domain"
	"github.com/baechuer/peoplehub/internal/transport/http/middleware"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Signup(w http.ResponseWriter, r *http.Request)
	Verify(w http.ResponseWriter, r *http.Request)
	ResendVerification(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	ForgotPassword(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	SetRole(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Emails(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Leaves(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type ProjectHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Tree(w http.ResponseWriter, r *http.Request)
	ByUser(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type DashboardHandler interface {
	Stats(w http.ResponseWriter, r *http.Request)
}

// RequireFunc builds a guard for an allow-list; no roles means any authenticated actor.
type RequireFunc func(allowed ...domain.Role) func(http.Handler) http.Handler

// Rate limit scopes for the public auth routes.
const (
	ScopeSignup  = "signup"
	ScopeVerify  = "verify"
	ScopeResend  = "resend_verification"
	ScopeLogin   = "login"
	ScopeForgot  = "forgot_password"
	ScopeReset   = "reset_password"
	ScopeRefresh = "refresh"
)

type Options struct {
	CORSOrigins []string
	// GlobalPerMinute is the per-IP ceiling for every route; 0 disables it.
	GlobalPerMinute int
	// Limits is keyed by scope. Scopes without an entry are not throttled.
	Limits map[string]middleware.FixedWindowConfig
}

type Deps struct {
	Health     HealthHandler
	Auth       AuthHandler
	Employees  EmployeeHandler
	Projects   ProjectHandler
	Dashboard  DashboardHandler
	Require    RequireFunc
	Limiter    middleware.RateLimiter
	WriteError middleware.WriteErrFunc
	Metrics    http.Handler
	Options    Options
}

func New(deps Deps) (http.Handler, error) {
	switch {
	case deps.Health == nil:
		return nil, fmt.Errorf("nil Health handler")
	case deps.Auth == nil:
		return nil, fmt.Errorf("nil Auth handler")
	case deps.Employees == nil:
		return nil, fmt.Errorf("nil Employees handler")
	case deps.Projects == nil:
		return nil, fmt.Errorf("nil Projects handler")
	case deps.Dashboard == nil:
		return nil, fmt.Errorf("nil Dashboard handler")
	case deps.Require == nil:
		return nil, fmt.Errorf("nil Require guard")
	case deps.WriteError == nil:
		return nil, fmt.Errorf("nil WriteError")
	}
	if deps.Metrics == nil {
		deps.Metrics = promhttp.Handler()
	}

	limit := func(scope string) func(http.Handler) http.Handler {
		cfg, ok := deps.Options.Limits[scope]
		if !ok {
			return func(next http.Handler) http.Handler { return next }
		}
		cfg.Scope = scope
		return middleware.RateLimitFixedWindow(deps.Limiter, cfg, deps.WriteError)
	}
	authed := deps.Require()
	admins := deps.Require(domain.AdminRoles...)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.AccessLog)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecurityHeaders)
	if len(deps.Options.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   deps.Options.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			ExposedHeaders:   []string{"X-Request-Id", "Retry-After"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	if deps.Options.GlobalPerMinute > 0 {
		r.Use(httprate.LimitByIP(deps.Options.GlobalPerMinute, time.Minute))
	}

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", deps.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.OriginCheck(deps.Options.CORSOrigins, deps.WriteError))

		r.Route("/auth", func(r chi.Router) {
			r.With(limit(ScopeSignup)).Post("/signup", deps.Auth.Signup)
			r.With(limit(ScopeVerify)).Post("/verify", deps.Auth.Verify)
			r.With(limit(ScopeResend)).Post("/resend-verification", deps.Auth.ResendVerification)
			r.With(limit(ScopeLogin)).Post("/login", deps.Auth.Login)
			r.With(limit(ScopeForgot)).Post("/forgot-password", deps.Auth.ForgotPassword)
			r.With(limit(ScopeReset)).Post("/reset-password", deps.Auth.ResetPassword)
			r.With(limit(ScopeRefresh)).Post("/refresh", deps.Auth.Refresh)

			r.With(deps.Require(domain.RoleSuperadmin, domain.RoleAdmin, domain.RoleUser)).
				Post("/logout", deps.Auth.Logout)
			r.With(authed).Get("/me", deps.Auth.Me)
			r.With(authed).Post("/change-password", deps.Auth.ChangePassword)
		})

		r.With(deps.Require(domain.RoleSuperadmin)).
			Patch("/admin/users/{id}/role", deps.Auth.SetRole)

		r.Route("/employees", func(r chi.Router) {
			r.With(admins).Post("/", deps.Employees.Create)

			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Get("/", deps.Employees.List)
				r.Get("/emails", deps.Employees.Emails)
				r.Get("/{id}", deps.Employees.Get)
				r.Get("/{id}/leaves", deps.Employees.Leaves)
				r.Put("/{id}", deps.Employees.Update)
			})

			r.With(admins).Delete("/{id}", deps.Employees.Delete)
		})

		r.Route("/projects", func(r chi.Router) {
			r.With(admins).Post("/", deps.Projects.Create)

			r.Group(func(r chi.Router) {
				r.Use(authed)
				r.Get("/", deps.Projects.List)
				r.Get("/tree", deps.Projects.Tree)
				r.Get("/user/{userId}", deps.Projects.ByUser)
				r.Get("/{id}", deps.Projects.Get)
				r.Put("/{id}", deps.Projects.Update)
			})

			r.With(admins).Delete("/{id}", deps.Projects.Delete)
		})

		r.With(authed).Get("/dashboard/stats", deps.Dashboard.Stats)
	})

	return r, nil
}
