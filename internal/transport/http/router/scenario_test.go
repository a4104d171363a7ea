package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/baechuer/peoplehub/internal/application/auth"
	"github.com/baechuer/peoplehub/internal/infrastructure/memory"
	"github.com/baechuer/peoplehub/internal/infrastructure/security"
	http_handlers "github.com/baechuer/peoplehub/internal/transport/http/handlers"
	"github.com/baechuer/peoplehub/internal/transport/http/middleware"
	"github.com/baechuer/peoplehub/internal/transport/http/response"
)

const testOrigin = "http://app.test"

type outbox struct {
	mu   sync.Mutex
	msgs []auth.Message
}

func (o *outbox) Send(_ context.Context, m auth.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.msgs = append(o.msgs, m)
	return nil
}

func (o *outbox) last(t *testing.T) auth.Message {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.msgs) == 0 {
		t.Fatalf("no message delivered")
	}
	return o.msgs[len(o.msgs)-1]
}

func newAuthStack(t *testing.T) (http.Handler, *outbox) {
	t.Helper()

	users := memory.NewUserRepo()
	box := &outbox{}
	tokens := security.NewTokenService(security.TokenConfig{
		Issuer:        "peoplehub-test",
		AccessSecret:  "access-secret-for-tests",
		AccessTTL:     time.Hour,
		RefreshSecret: "refresh-secret-for-tests",
		RefreshTTL:    24 * time.Hour,
	})
	svc := auth.NewService(
		users,
		security.NewBcryptHasher(4),
		tokens,
		memory.NewSessionStore(),
		security.NewNumericCodes(6),
		box,
		auth.Config{},
	).WithSpawner(func(fn func()) { fn() })

	guard := middleware.NewGuard(tokens, users, svc, middleware.GuardConfig{
		AccessTTL:  tokens.AccessTTL(),
		RefreshTTL: tokens.RefreshTTL(),
	}, response.WriteError)

	d := fakeDeps()
	d.Auth = http_handlers.NewAuthHandler(svc, tokens.AccessTTL(), tokens.RefreshTTL(), false)
	d.Require = guard.Require
	d.WriteError = response.WriteError
	d.Options.CORSOrigins = []string{testOrigin}

	return mustNew(t, d), box
}

type call struct {
	method, path, body, bearer string
	cookies                    []*http.Cookie
}

func do(h http.Handler, c call) *httptest.ResponseRecorder {
	req := httptest.NewRequest(c.method, c.path, strings.NewReader(c.body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", testOrigin)
	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func wantStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("want %d got %d: %s", want, rr.Code, rr.Body.String())
	}
}

func cookieNamed(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestScenario_SignupVerifyLoginMeLogout(t *testing.T) {
	h, box := newAuthStack(t)
	const creds = `"email":"Ann@Example.com","password":"Str0ng!pw"`

	rr := do(h, call{method: "POST", path: "/api/v1/auth/signup",
		body: `{"username":"ann",` + creds + `,"confirmPassword":"Str0ng!pw"}`})
	wantStatus(t, rr, http.StatusCreated)

	// duplicate email
	rr = do(h, call{method: "POST", path: "/api/v1/auth/signup",
		body: `{"username":"ann2",` + creds + `,"confirmPassword":"Str0ng!pw"}`})
	wantStatus(t, rr, http.StatusConflict)

	// unverified accounts cannot log in
	rr = do(h, call{method: "POST", path: "/api/v1/auth/login", body: `{` + creds + `}`})
	wantStatus(t, rr, http.StatusUnauthorized)

	msg := box.last(t)
	if msg.To != "ann@example.com" || len(msg.Code) != 6 {
		t.Fatalf("unexpected verification message %+v", msg)
	}

	rr = do(h, call{method: "POST", path: "/api/v1/auth/verify",
		body: `{"email":"ann@example.com","verificationCode":"` + msg.Code + `"}`})
	wantStatus(t, rr, http.StatusOK)

	rr = do(h, call{method: "POST", path: "/api/v1/auth/login", body: `{` + creds + `}`})
	wantStatus(t, rr, http.StatusOK)

	var login struct {
		AccessToken string `json:"accessToken"`
		User        struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if login.AccessToken == "" || login.User.Role != "user" {
		t.Fatalf("unexpected login body %s", rr.Body.String())
	}
	refresh := cookieNamed(rr, security.RefreshCookieName)
	if refresh == nil || !refresh.HttpOnly {
		t.Fatalf("expected HttpOnly refresh cookie")
	}

	rr = do(h, call{method: "GET", path: "/api/v1/auth/me", bearer: login.AccessToken})
	wantStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), `"ann@example.com"`) {
		t.Fatalf("me body missing email: %s", rr.Body.String())
	}

	// users may not manage roles
	rr = do(h, call{method: "PATCH", path: "/api/v1/admin/users/x/role",
		bearer: login.AccessToken, body: `{"role":"admin"}`})
	wantStatus(t, rr, http.StatusForbidden)

	rr = do(h, call{method: "POST", path: "/api/v1/auth/logout",
		bearer: login.AccessToken, cookies: []*http.Cookie{refresh}})
	wantStatus(t, rr, http.StatusOK)

	// the revoked refresh token no longer rotates
	rr = do(h, call{method: "POST", path: "/api/v1/auth/refresh", cookies: []*http.Cookie{refresh}})
	wantStatus(t, rr, http.StatusUnauthorized)
}

func TestScenario_RefreshRotatesOnce(t *testing.T) {
	h, box := newAuthStack(t)

	wantStatus(t, do(h, call{method: "POST", path: "/api/v1/auth/signup",
		body: `{"username":"bo","email":"bo@x.com","password":"Str0ng!pw","confirmPassword":"Str0ng!pw"}`}),
		http.StatusCreated)
	wantStatus(t, do(h, call{method: "POST", path: "/api/v1/auth/verify",
		body: `{"email":"bo@x.com","verificationCode":"` + box.last(t).Code + `"}`}), http.StatusOK)

	rr := do(h, call{method: "POST", path: "/api/v1/auth/login", body: `{"email":"bo@x.com","password":"Str0ng!pw"}`})
	wantStatus(t, rr, http.StatusOK)
	first := cookieNamed(rr, security.RefreshCookieName)

	rr = do(h, call{method: "POST", path: "/api/v1/auth/refresh", cookies: []*http.Cookie{first}})
	wantStatus(t, rr, http.StatusOK)
	if cookieNamed(rr, security.RefreshCookieName) == nil {
		t.Fatalf("expected rotated refresh cookie")
	}

	rr = do(h, call{method: "POST", path: "/api/v1/auth/refresh", cookies: []*http.Cookie{first}})
	wantStatus(t, rr, http.StatusUnauthorized)
}

func TestScenario_CookieRequestFromForeignOriginRejected(t *testing.T) {
	h, _ := newAuthStack(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.Header.Set("Origin", "http://evil.test")
	req.AddCookie(&http.Cookie{Name: security.RefreshCookieName, Value: "x"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	wantStatus(t, rr, http.StatusForbidden)
}

func TestScenario_BearerClientRefreshesWithoutCookies(t *testing.T) {
	h, box := newAuthStack(t)

	wantStatus(t, do(h, call{method: "POST", path: "/api/v1/auth/signup",
		body: `{"username":"cy","email":"cy@x.com","password":"Str0ng!pw","confirmPassword":"Str0ng!pw"}`}),
		http.StatusCreated)
	wantStatus(t, do(h, call{method: "POST", path: "/api/v1/auth/verify",
		body: `{"email":"cy@x.com","verificationCode":"` + box.last(t).Code + `"}`}), http.StatusOK)

	type session struct {
		AccessToken      string `json:"accessToken"`
		RefreshToken     string `json:"refreshToken"`
		RefreshExpiresAt int64  `json:"refreshExpiresAt"`
	}
	decodeSession := func(rr *httptest.ResponseRecorder) session {
		t.Helper()
		var s session
		if err := json.Unmarshal(rr.Body.Bytes(), &s); err != nil {
			t.Fatalf("decode session: %v", err)
		}
		if s.AccessToken == "" || s.RefreshToken == "" || s.RefreshExpiresAt == 0 {
			t.Fatalf("incomplete session body %s", rr.Body.String())
		}
		return s
	}

	rr := do(h, call{method: "POST", path: "/api/v1/auth/login", body: `{"email":"cy@x.com","password":"Str0ng!pw"}`})
	wantStatus(t, rr, http.StatusOK)
	first := decodeSession(rr)

	rr = do(h, call{method: "POST", path: "/api/v1/auth/refresh", body: `{"refreshToken":"` + first.RefreshToken + `"}`})
	wantStatus(t, rr, http.StatusOK)
	second := decodeSession(rr)
	if second.RefreshToken == first.RefreshToken {
		t.Fatalf("refresh token was not rotated")
	}

	// the consumed token is single use
	rr = do(h, call{method: "POST", path: "/api/v1/auth/refresh", body: `{"refreshToken":"` + first.RefreshToken + `"}`})
	wantStatus(t, rr, http.StatusUnauthorized)

	rr = do(h, call{method: "POST", path: "/api/v1/auth/refresh", body: `{"refreshToken":"garbage"}`})
	wantStatus(t, rr, http.StatusUnauthorized)

	rr = do(h, call{method: "GET", path: "/api/v1/auth/me", bearer: second.AccessToken})
	wantStatus(t, rr, http.StatusOK)
}
