package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/baechuer/peoplehub/internal/domain"
)

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID map[string]domain.Account

	// injected errors (if set, method returns error)
	getByEmailErr error
	createErr     error
	setCodeErr    error

	setCodeCalls int
	writes       int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]domain.Account{}}
}

func (f *fakeUserRepo) put(a domain.Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[a.ID] = a
}

func (f *fakeUserRepo) get(id string) domain.Account {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id]
}

func (f *fakeUserRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.Account{}, f.createErr
	}
	for _, u := range f.byID {
		if u.Email == a.Email {
			return domain.Account{}, domain.ErrEmailAlreadyExists()
		}
	}
	f.byID[a.ID] = a
	f.writes++
	return a, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.Account{}, f.getByEmailErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.Account{}, domain.ErrUserNotFound()
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byID[id]
	if !ok {
		return domain.Account{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) update(id string, fn func(*domain.Account)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byID[id]
	if !ok {
		return domain.ErrUserNotFound()
	}
	fn(&u)
	f.byID[id] = u
	f.writes++
	return nil
}

func (f *fakeUserRepo) SetCode(ctx context.Context, userID string, kind domain.CodeKind, code string, exp time.Time) error {
	if f.setCodeErr != nil {
		return f.setCodeErr
	}
	f.mu.Lock()
	f.setCodeCalls++
	f.mu.Unlock()
	return f.update(userID, func(a *domain.Account) {
		c, e := code, exp
		if kind == domain.CodePasswordReset {
			a.ResetCode, a.ResetCodeExpiresAt = &c, &e
			return
		}
		a.VerificationCode, a.VerificationCodeExpiresAt = &c, &e
	})
}

func (f *fakeUserRepo) MarkVerified(ctx context.Context, userID string) error {
	return f.update(userID, func(a *domain.Account) {
		a.Verified = true
		a.VerificationCode, a.VerificationCodeExpiresAt = nil, nil
	})
}

func (f *fakeUserRepo) ResetPassword(ctx context.Context, userID, hash string) error {
	return f.update(userID, func(a *domain.Account) {
		a.PasswordHash = hash
		a.ResetCode, a.ResetCodeExpiresAt = nil, nil
	})
}

func (f *fakeUserRepo) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	return f.update(userID, func(a *domain.Account) { a.PasswordHash = hash })
}

func (f *fakeUserRepo) SetRole(ctx context.Context, userID string, role domain.Role) error {
	return f.update(userID, func(a *domain.Account) { a.Role = role })
}

func (f *fakeUserRepo) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, u := range f.byID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeHasher struct {
	hashFn func(pw string) (string, error)
}

func (h *fakeHasher) Hash(pw string) (string, error) {
	if h.hashFn != nil {
		return h.hashFn(pw)
	}
	return "hash:" + pw, nil
}

func (h *fakeHasher) Compare(hash, pw string) error {
	if hash != "hash:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokens encodes claims as "typ|uid|email|role|sid".
type fakeTokens struct {
	expired map[string]bool
}

func (f *fakeTokens) issue(typ string, c Claims) (string, time.Time, error) {
	return strings.Join([]string{typ, c.UserID, c.Email, string(c.Role), c.SessionID}, "|"), time.Now().Add(time.Hour), nil
}

func (f *fakeTokens) verify(typ, tok string) (Claims, error) {
	if f.expired[tok] {
		return Claims{}, domain.ErrTokenExpired()
	}
	parts := strings.Split(tok, "|")
	if len(parts) != 5 || parts[0] != typ {
		return Claims{}, domain.ErrTokenInvalid()
	}
	return Claims{UserID: parts[1], Email: parts[2], Role: domain.Role(parts[3]), SessionID: parts[4]}, nil
}

func (f *fakeTokens) IssueAccess(c Claims) (string, time.Time, error)  { return f.issue("access", c) }
func (f *fakeTokens) IssueRefresh(c Claims) (string, time.Time, error) { return f.issue("refresh", c) }
func (f *fakeTokens) VerifyAccess(t string) (Claims, error)           { return f.verify("access", t) }
func (f *fakeTokens) VerifyRefresh(t string) (Claims, error)          { return f.verify("refresh", t) }
func (f *fakeTokens) RefreshTTL() time.Duration                       { return 7 * 24 * time.Hour }

type fakeSessions struct {
	mu     sync.Mutex
	bySID  map[string]string
	revAll []string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{bySID: map[string]string{}}
}

func (f *fakeSessions) Save(ctx context.Context, sid, uid string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bySID[sid] = uid
	return nil
}

func (f *fakeSessions) Consume(ctx context.Context, sid string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	uid, ok := f.bySID[sid]
	if !ok {
		return "", errors.New("no session")
	}
	delete(f.bySID, sid)
	return uid, nil
}

func (f *fakeSessions) Revoke(ctx context.Context, sid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.bySID, sid)
	return nil
}

func (f *fakeSessions) RevokeAll(ctx context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for sid, u := range f.bySID {
		if u == uid {
			delete(f.bySID, sid)
		}
	}
	f.revAll = append(f.revAll, uid)
	return nil
}

func (f *fakeSessions) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bySID)
}

type fakeCodes struct {
	mu sync.Mutex
	n  int
}

func (f *fakeCodes) NewCode() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	return fmt.Sprintf("%06d", 100000+f.n), nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (f *fakeNotifier) Send(ctx context.Context, msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeNotifier) last() (Message, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return Message{}, false
	}
	return f.sent[len(f.sent)-1], true
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type auditEntry struct {
	action string
	fields map[string]string
}

type testEnv struct {
	svc      *Service
	users    *fakeUserRepo
	hasher   *fakeHasher
	tokens   *fakeTokens
	sessions *fakeSessions
	notifier *fakeNotifier
	now      *time.Time
	audits   *[]auditEntry
}

// newSvcForTest runs fire-and-forget deliveries inline so tests stay deterministic.
func newSvcForTest(t *testing.T) testEnv {
	t.Helper()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	var audits []auditEntry
	var auditMu sync.Mutex

	env := testEnv{
		users:    newFakeUserRepo(),
		hasher:   &fakeHasher{},
		tokens:   &fakeTokens{expired: map[string]bool{}},
		sessions: newFakeSessions(),
		notifier: &fakeNotifier{},
		now:      &now,
		audits:   &audits,
	}
	env.svc = NewService(env.users, env.hasher, env.tokens, env.sessions, &fakeCodes{}, env.notifier, Config{}).
		WithClock(func() time.Time { return *env.now }).
		WithSpawner(func(fn func()) { fn() }).
		WithAudit(func(action string, fields map[string]string) {
			auditMu.Lock()
			defer auditMu.Unlock()
			audits = append(audits, auditEntry{action: action, fields: fields})
		})
	return env
}

func (e testEnv) advance(d time.Duration) { *e.now = e.now.Add(d) }

// seedAccount stores a verified account with password "Secret1!".
func (e testEnv) seedAccount(id, email string, role domain.Role, verified bool) domain.Account {
	a := domain.Account{
		ID:           id,
		Username:     strings.Split(email, "@")[0],
		Email:        email,
		PasswordHash: "hash:Secret1!",
		Role:         role,
		Verified:     verified,
	}
	e.users.put(a)
	return a
}

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error code=%q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code=%q, got err=%v", code, err)
	}
}
