package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/baechuer/peoplehub/internal/domain"
	"github.com/baechuer/peoplehub/internal/infrastructure/security"
)

// OriginCheck rejects cross-origin state-changing requests that authenticate
// with cookies. Bearer-only requests and requests without cookies pass.
func OriginCheck(allowedOrigins []string, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	allowedHosts := make(map[string]struct{})
	for _, origin := range allowedOrigins {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			allowedHosts[strings.ToLower(u.Host)] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			if !usesAuthCookie(r) || r.Header.Get("Authorization") != "" {
				next.ServeHTTP(w, r)
				return
			}

			origin := r.Header.Get("Origin")
			if origin == "" {
				origin = r.Header.Get("Referer")
			}
			if origin == "" {
				writeErr(w, r, domain.ErrForbiddenMsg("Origin or Referer header required"))
				return
			}

			u, err := url.Parse(origin)
			if err != nil {
				writeErr(w, r, domain.ErrForbiddenMsg("Invalid Origin header"))
				return
			}
			if _, ok := allowedHosts[strings.ToLower(u.Host)]; !ok {
				writeErr(w, r, domain.ErrForbiddenMsg("Cross-origin request not allowed"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func usesAuthCookie(r *http.Request) bool {
	return security.ReadAccessToken(r) != "" || security.ReadRefreshToken(r) != ""
}
