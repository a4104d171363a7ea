package auth

import (
	"context"
	"time"

	"github.com/baechuer/peoplehub/internal/domain"
)

/*
UserRepo
--------
Credential Store port.
Code/expiry pairs are always written together by a single call.
*/
type UserRepo interface {
	Create(ctx context.Context, a domain.Account) (domain.Account, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
	GetByID(ctx context.Context, id string) (domain.Account, error)

	SetCode(ctx context.Context, userID string, kind domain.CodeKind, code string, expiresAt time.Time) error
	// MarkVerified sets verified and clears the verification pair.
	MarkVerified(ctx context.Context, userID string) error
	// ResetPassword replaces the hash and clears the reset pair.
	ResetPassword(ctx context.Context, userID, newHash string) error
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	SetRole(ctx context.Context, userID string, role domain.Role) error
	CountByRole(ctx context.Context, role domain.Role) (int, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenIssuer
-----------
Access and refresh tokens signed with independent secrets.
*/
type Claims struct {
	UserID    string
	Email     string
	Role      domain.Role
	SessionID string
	ExpiresAt time.Time
}

type TokenIssuer interface {
	IssueAccess(c Claims) (token string, expiresAt time.Time, err error)
	IssueRefresh(c Claims) (token string, expiresAt time.Time, err error)
	VerifyAccess(token string) (Claims, error)
	VerifyRefresh(token string) (Claims, error)
	RefreshTTL() time.Duration
}

/*
SessionStore
------------
Mirror of issued refresh tokens keyed by session id.
Consume is atomic: a session id can be rotated out only once.
*/
type SessionStore interface {
	Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	Consume(ctx context.Context, sessionID string) (userID string, err error)
	Revoke(ctx context.Context, sessionID string) error
	RevokeAll(ctx context.Context, userID string) error
}

/*
CodeGenerator
-------------
One-time codes for verification and password reset.
*/
type CodeGenerator interface {
	NewCode() (string, error)
}

/*
Notifier
--------
Delivers a templated message carrying a one-time code.
*/
type Message struct {
	To       string          `json:"to"`
	Username string          `json:"username"`
	Code     string          `json:"code"`
	Kind     domain.CodeKind `json:"kind"`
}

type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
