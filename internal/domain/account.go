package domain

import (
	"strings"
	"time"
)

// Account is a persisted user record.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	Verified     bool

	VerificationCode          *string
	VerificationCodeExpiresAt *time.Time

	ResetCode          *string
	ResetCodeExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccountSummary is the sanitized account view returned to callers.
type AccountSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Verified bool   `json:"verified"`
}

func (a Account) Summary() AccountSummary {
	return AccountSummary{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
		Role:     a.Role,
		Verified: a.Verified,
	}
}

func (a Account) Actor() Actor {
	return Actor{
		ID:       a.ID,
		Email:    a.Email,
		Username: a.Username,
		Role:     a.Role,
		Verified: a.Verified,
	}
}

// NormalizeEmail is applied before every lookup and write.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CodeKind selects which one-time code pair of an account is addressed.
type CodeKind string

const (
	CodeVerification  CodeKind = "verification"
	CodePasswordReset CodeKind = "passwordReset"
)
