package auth

import (
	"context"
	"strings"

	"github.com/baechuer/peoplehub/internal/domain"
)

// VerifyAccount checks the verification code and marks the account verified.
func (s *Service) VerifyAccount(ctx context.Context, email, code string) (domain.AccountSummary, error) {
	email = domain.NormalizeEmail(email)
	code = strings.TrimSpace(code)
	if email == "" {
		return domain.AccountSummary{}, domain.ErrMissingField("email")
	}

	a, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return domain.AccountSummary{}, err
	}
	if a.Verified {
		return domain.AccountSummary{}, domain.ErrAlreadyVerified()
	}
	if !codesEqual(a.VerificationCode, code) {
		return domain.AccountSummary{}, domain.ErrInvalidCode()
	}
	if expired(a.VerificationCodeExpiresAt, s.now()) {
		return domain.AccountSummary{}, domain.ErrCodeExpired()
	}

	if err := s.users.MarkVerified(ctx, a.ID); err != nil {
		return domain.AccountSummary{}, err
	}
	a.Verified = true
	a.VerificationCode = nil
	a.VerificationCodeExpiresAt = nil

	s.audit("auth.verify", map[string]string{"user_id": a.ID})
	return a.Summary(), nil
}

// ResendVerificationCode replaces the outstanding code and waits for delivery.
func (s *Service) ResendVerificationCode(ctx context.Context, email string) (string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return "", domain.ErrMissingField("email")
	}

	a, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if a.Verified {
		return "", domain.ErrAlreadyVerified()
	}

	code, _, err := s.issueCode(ctx, a.ID, domain.CodeVerification)
	if err != nil {
		return "", err
	}

	if err := s.deliver(ctx, opResendCode, Message{
		To:       a.Email,
		Username: a.Username,
		Code:     code,
		Kind:     domain.CodeVerification,
	}); err != nil {
		return "", err
	}
	return MsgCodeResent, nil
}
