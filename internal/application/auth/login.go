package auth

import (
	"context"

	"github.com/baechuer/peoplehub/internal/domain"
)

// Login authenticates an account and issues an access/refresh pair.
// IMPORTANT: an unknown email and a wrong password fail identically.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return LoginResult{}, domain.ErrAllFieldsRequired()
	}

	a, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !domain.Is(err, "user_not_found") {
			return LoginResult{}, err
		}
		s.compareDummy(password)
		return LoginResult{}, s.loginFailed(email, domain.ErrInvalidCredentials())
	}

	if err := s.hasher.Compare(a.PasswordHash, password); err != nil {
		return LoginResult{}, s.loginFailed(email, domain.ErrInvalidCredentials())
	}

	// Only reported to callers who proved the password.
	if !a.Verified {
		return LoginResult{}, s.loginFailed(email, domain.ErrNotVerified())
	}

	res, err := s.issueTokens(ctx, a)
	if err != nil {
		return LoginResult{}, err
	}
	res.Message = MsgLoginOK

	s.auditResult("auth.login", nil, map[string]string{"user_id": a.ID, "role": string(a.Role)})
	return res, nil
}

func (s *Service) loginFailed(email string, err error) error {
	s.auditResult("auth.login", err, map[string]string{"email": email})
	return err
}
