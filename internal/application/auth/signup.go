package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/baechuer/peoplehub/internal/domain"
)

type SignupInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

type SignupResult struct {
	User    domain.AccountSummary
	Message string
}

// Signup creates an unverified account and sends its verification code.
// Delivery failures never fail the signup.
func (s *Service) Signup(ctx context.Context, in SignupInput) (SignupResult, error) {
	username := strings.TrimSpace(in.Username)
	email := domain.NormalizeEmail(in.Email)

	if username == "" || email == "" || in.Password == "" || in.ConfirmPassword == "" {
		return SignupResult{}, domain.ErrAllFieldsRequired()
	}
	if in.Password != in.ConfirmPassword {
		return SignupResult{}, domain.ErrPasswordMismatch()
	}
	if err := domain.CheckPasswordStrength(in.Password); err != nil {
		return SignupResult{}, err
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return SignupResult{}, domain.ErrEmailAlreadyExists()
	} else if !domain.Is(err, "user_not_found") {
		return SignupResult{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return SignupResult{}, domain.ErrHashFailed(err)
	}
	code, err := s.codes.NewCode()
	if err != nil {
		return SignupResult{}, domain.ErrRandomFailed(err)
	}
	exp := s.now().Add(s.verifyCodeTTL)

	created, err := s.users.Create(ctx, domain.Account{
		ID:                        uuid.NewString(),
		Username:                  username,
		Email:                     email,
		PasswordHash:              hash,
		Role:                      domain.RoleUser,
		Verified:                  false,
		VerificationCode:          &code,
		VerificationCodeExpiresAt: &exp,
	})
	if err != nil {
		return SignupResult{}, err
	}

	_ = s.deliver(ctx, opSignup, Message{
		To:       created.Email,
		Username: created.Username,
		Code:     code,
		Kind:     domain.CodeVerification,
	})

	s.audit("auth.signup", map[string]string{"user_id": created.ID, "email": created.Email})
	return SignupResult{User: created.Summary(), Message: signupMessage(created.Email)}, nil
}
