package memory

import (
	"context"
	"sync"
	"time"

	"github.com/baechuer/peoplehub/internal/domain"
)

// UserRepo is an in-process credential store for local runs and tests.
type UserRepo struct {
	mu      sync.RWMutex
	byID    map[string]domain.Account
	byEmail map[string]string // email -> userID
	now     func() time.Time
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:    make(map[string]domain.Account),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[domain.NormalizeEmail(email)]
	if !ok {
		return domain.Account{}, domain.ErrUserNotFound()
	}
	return r.byID[id], nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return domain.Account{}, domain.ErrUserNotFound()
	}
	return a, nil
}

func (r *UserRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.Email = domain.NormalizeEmail(a.Email)
	if _, exists := r.byEmail[a.Email]; exists {
		return domain.Account{}, domain.ErrEmailAlreadyExists()
	}
	if a.ID == "" {
		return domain.Account{}, domain.ErrMissingField("id")
	}

	now := r.now()
	a.CreatedAt, a.UpdatedAt = now, now
	r.byID[a.ID] = a
	r.byEmail[a.Email] = a.ID
	return a, nil
}

func (r *UserRepo) update(id string, fn func(*domain.Account)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound()
	}
	fn(&a)
	a.UpdatedAt = r.now()
	r.byID[id] = a
	return nil
}

func (r *UserRepo) SetCode(ctx context.Context, userID string, kind domain.CodeKind, code string, expiresAt time.Time) error {
	return r.update(userID, func(a *domain.Account) {
		c, exp := code, expiresAt
		switch kind {
		case domain.CodeVerification:
			a.VerificationCode, a.VerificationCodeExpiresAt = &c, &exp
		case domain.CodePasswordReset:
			a.ResetCode, a.ResetCodeExpiresAt = &c, &exp
		}
	})
}

func (r *UserRepo) MarkVerified(ctx context.Context, userID string) error {
	return r.update(userID, func(a *domain.Account) {
		a.Verified = true
		a.VerificationCode, a.VerificationCodeExpiresAt = nil, nil
	})
}

func (r *UserRepo) ResetPassword(ctx context.Context, userID, newHash string) error {
	return r.update(userID, func(a *domain.Account) {
		a.PasswordHash = newHash
		a.ResetCode, a.ResetCodeExpiresAt = nil, nil
	})
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	return r.update(userID, func(a *domain.Account) { a.PasswordHash = newHash })
}

func (r *UserRepo) SetRole(ctx context.Context, userID string, role domain.Role) error {
	return r.update(userID, func(a *domain.Account) { a.Role = role })
}

func (r *UserRepo) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, a := range r.byID {
		if a.Role == role {
			n++
		}
	}
	return n, nil
}
