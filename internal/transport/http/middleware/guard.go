package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/baechuer/peoplehub/internal/application/auth"
	"github.com/baechuer/peoplehub/internal/domain"
	"github.com/baechuer/peoplehub/internal/infrastructure/security"
)

type AccessVerifier interface {
	VerifyAccess(token string) (auth.Claims, error)
}

// AccountReader is the source of truth for role and existence.
type AccountReader interface {
	GetByID(ctx context.Context, id string) (domain.Account, error)
}

type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (auth.LoginResult, error)
}

type GuardConfig struct {
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	SecureCookies bool
}

// Guard authenticates requests and enforces role allow-lists.
type Guard struct {
	tokens    AccessVerifier
	users     AccountReader
	refresher Refresher
	cfg       GuardConfig
	writeErr  WriteErrFunc
}

func NewGuard(tokens AccessVerifier, users AccountReader, refresher Refresher, cfg GuardConfig, writeErr WriteErrFunc) *Guard {
	return &Guard{
		tokens:    tokens,
		users:     users,
		refresher: refresher,
		cfg:       cfg,
		writeErr:  writeErr,
	}
}

// Require admits authenticated actors whose stored role is in allowed.
// An empty list admits any authenticated actor.
func (g *Guard) Require(allowed ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := accessToken(r)
			if err != nil {
				g.writeErr(w, r, err)
				return
			}

			claims, err := g.tokens.VerifyAccess(raw)
			if domain.Is(err, "token_expired") {
				claims, err = g.silentRefresh(w, r)
			}
			if err != nil {
				g.writeErr(w, r, err)
				return
			}
			if strings.TrimSpace(claims.UserID) == "" {
				g.writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			account, err := g.users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if domain.KindOf(err) == domain.KindNotFound {
					err = domain.ErrTokenInvalid()
				}
				g.writeErr(w, r, err)
				return
			}

			actor := account.Actor()
			if err := domain.Authorize(actor, allowed...); err != nil {
				g.writeErr(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// silentRefresh rotates the session named by the refresh cookie and re-sets both cookies.
func (g *Guard) silentRefresh(w http.ResponseWriter, r *http.Request) (auth.Claims, error) {
	rt := security.ReadRefreshToken(r)
	if rt == "" || g.refresher == nil {
		return auth.Claims{}, domain.ErrTokenExpired()
	}

	res, err := g.refresher.Refresh(r.Context(), rt)
	if err != nil {
		TokenRefreshTotal.WithLabelValues("failed").Inc()
		if domain.KindOf(err) == domain.KindAuth {
			security.ClearAuthCookies(w, g.cfg.SecureCookies)
		}
		return auth.Claims{}, err
	}

	TokenRefreshTotal.WithLabelValues("silent").Inc()
	security.SetAuthCookies(w, res.AccessToken, g.cfg.AccessTTL, res.RefreshToken, g.cfg.RefreshTTL, g.cfg.SecureCookies)
	return res.Claims, nil
}

// accessToken reads the bearer header, then the access cookie.
func accessToken(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", domain.ErrTokenInvalid()
		}
		raw := strings.TrimSpace(parts[1])
		if raw == "" {
			return "", domain.ErrTokenInvalid()
		}
		return raw, nil
	}
	if c := security.ReadAccessToken(r); c != "" {
		return c, nil
	}
	return "", domain.ErrTokenMissing()
}
