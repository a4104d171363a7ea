package auth

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/baechuer/peoplehub/internal/domain"
)

type Service struct {
	users    UserRepo
	hasher   PasswordHasher
	tokens   TokenIssuer
	sessions SessionStore
	codes    CodeGenerator
	notifier Notifier

	verifyCodeTTL time.Duration
	resetCodeTTL  time.Duration
	notifyTimeout time.Duration

	audit func(action string, fields map[string]string)
	log   zerolog.Logger
	now   func() time.Time
	spawn func(func())

	// background deliveries still running; no Add once draining is set
	bgMu     sync.Mutex
	draining bool
	inflight sync.WaitGroup

	dummyOnce sync.Once
	dummyHash string
}

type Config struct {
	VerificationCodeTTL time.Duration
	ResetCodeTTL        time.Duration
	NotifyTimeout       time.Duration
}

func NewService(
	users UserRepo,
	hasher PasswordHasher,
	tokens TokenIssuer,
	sessions SessionStore,
	codes CodeGenerator,
	notifier Notifier,
	cfg Config,
) *Service {
	verifyTTL := cfg.VerificationCodeTTL
	if verifyTTL <= 0 {
		verifyTTL = time.Hour
	}
	resetTTL := cfg.ResetCodeTTL
	if resetTTL <= 0 {
		resetTTL = 30 * time.Minute
	}
	notifyTimeout := cfg.NotifyTimeout
	if notifyTimeout <= 0 {
		notifyTimeout = 10 * time.Second
	}
	return &Service{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		sessions: sessions,
		codes:    codes,
		notifier: notifier,

		verifyCodeTTL: verifyTTL,
		resetCodeTTL:  resetTTL,
		notifyTimeout: notifyTimeout,

		audit: func(string, map[string]string) {},
		log:   zerolog.Nop(),
		now:   time.Now,
		spawn: func(fn func()) { go fn() },
	}
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

func (s *Service) WithLogger(lg zerolog.Logger) *Service {
	s.log = lg.With().Str("component", "auth").Logger()
	return s
}

// WithClock overrides time.Now.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// WithSpawner overrides how fire-and-forget deliveries are started.
func (s *Service) WithSpawner(spawn func(func())) *Service {
	if spawn != nil {
		s.spawn = spawn
	}
	return s
}

// Wait blocks until background deliveries finish or ctx is done.
// Deliveries requested after Wait starts run inline in the caller.
func (s *Service) Wait(ctx context.Context) error {
	s.bgMu.Lock()
	s.draining = true
	s.bgMu.Unlock()

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LoginResult is the token output shared by login and refresh.
type LoginResult struct {
	User             domain.AccountSummary
	Claims           Claims
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
	Message          string
}

// issueTokens signs an access/refresh pair and records the refresh session.
func (s *Service) issueTokens(ctx context.Context, a domain.Account) (LoginResult, error) {
	sid, err := newSessionID()
	if err != nil {
		return LoginResult{}, domain.ErrRandomFailed(err)
	}
	claims := Claims{UserID: a.ID, Email: a.Email, Role: a.Role, SessionID: sid}

	access, accessExp, err := s.tokens.IssueAccess(claims)
	if err != nil {
		return LoginResult{}, domain.ErrTokenSignFailed(err)
	}
	refresh, refreshExp, err := s.tokens.IssueRefresh(claims)
	if err != nil {
		return LoginResult{}, domain.ErrTokenSignFailed(err)
	}
	if err := s.sessions.Save(ctx, sid, a.ID, s.tokens.RefreshTTL()); err != nil {
		return LoginResult{}, err
	}

	claims.ExpiresAt = accessExp
	return LoginResult{
		User:             a.Summary(),
		Claims:           claims,
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// compareDummy spends the same bcrypt work as a real comparison.
func (s *Service) compareDummy(password string) {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("peoplehub-timing-equalizer")
		if err == nil {
			s.dummyHash = h
		}
	})
	if s.dummyHash != "" {
		_ = s.hasher.Compare(s.dummyHash, password)
	}
}

func codesEqual(stored *string, given string) bool {
	if stored == nil || given == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*stored), []byte(given)) == 1
}

func expired(expiresAt *time.Time, now time.Time) bool {
	return expiresAt == nil || !now.Before(*expiresAt)
}
