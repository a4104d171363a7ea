package auth

import (
	"context"
	"strings"

	"github.com/baechuer/peoplehub/internal/domain"
)

// ForgotPassword always answers with the same message. Delivery failures
// are logged and never reach the caller.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return "", domain.ErrMissingField("email")
	}

	a, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !domain.Is(err, "user_not_found") {
			s.log.Error().Err(err).Msg("forgot password lookup failed")
		}
		return MsgForgotPassword, nil
	}

	code, _, err := s.issueCode(ctx, a.ID, domain.CodePasswordReset)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", a.ID).Msg("reset code not stored")
		return MsgForgotPassword, nil
	}

	if err := s.deliver(ctx, opForgotPassword, Message{
		To:       a.Email,
		Username: a.Username,
		Code:     code,
		Kind:     domain.CodePasswordReset,
	}); err != nil {
		s.log.Error().Err(err).Str("user_id", a.ID).Msg("reset code delivery failed")
	}
	return MsgForgotPassword, nil
}

type ResetPasswordInput struct {
	Email           string
	ResetCode       string
	NewPassword     string
	ConfirmPassword string
}

// ResetPassword sets a new password using an unexpired reset code.
func (s *Service) ResetPassword(ctx context.Context, in ResetPasswordInput) (string, error) {
	email := domain.NormalizeEmail(in.Email)
	code := strings.TrimSpace(in.ResetCode)

	if email == "" || code == "" || in.NewPassword == "" || in.ConfirmPassword == "" {
		return "", domain.ErrAllFieldsRequired()
	}
	if in.NewPassword != in.ConfirmPassword {
		return "", domain.ErrPasswordMismatch()
	}
	if err := domain.CheckPasswordLength(in.NewPassword); err != nil {
		return "", err
	}

	a, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if !codesEqual(a.ResetCode, code) {
		return "", domain.ErrInvalidCode()
	}
	if expired(a.ResetCodeExpiresAt, s.now()) {
		return "", domain.ErrCodeExpired()
	}

	hash, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return "", domain.ErrHashFailed(err)
	}
	if err := s.users.ResetPassword(ctx, a.ID, hash); err != nil {
		return "", err
	}
	if err := s.sessions.RevokeAll(ctx, a.ID); err != nil {
		s.log.Warn().Err(err).Str("user_id", a.ID).Msg("revoke sessions after reset failed")
	}

	s.audit("auth.password_reset", map[string]string{"user_id": a.ID})
	return MsgPasswordReset, nil
}

type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// ChangePassword replaces the password of an authenticated account.
func (s *Service) ChangePassword(ctx context.Context, actorID string, in ChangePasswordInput) (string, error) {
	if actorID == "" {
		return "", domain.ErrTokenMissing()
	}
	if in.CurrentPassword == "" || in.NewPassword == "" || in.ConfirmPassword == "" {
		return "", domain.ErrAllFieldsRequired()
	}
	if in.NewPassword != in.ConfirmPassword {
		return "", domain.ErrPasswordMismatch()
	}
	if err := domain.CheckPasswordLength(in.NewPassword); err != nil {
		return "", err
	}

	a, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return "", err
	}
	if err := s.hasher.Compare(a.PasswordHash, in.CurrentPassword); err != nil {
		return "", domain.ErrInvalidCurrentPassword()
	}

	hash, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return "", domain.ErrHashFailed(err)
	}
	if err := s.users.UpdatePasswordHash(ctx, a.ID, hash); err != nil {
		return "", err
	}

	s.audit("auth.password_change", map[string]string{"user_id": a.ID})
	return MsgPasswordChanged, nil
}
