package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/baechuer/peoplehub/internal/domain"
)

type SeederHasher interface {
	Hash(password string) (string, error)
}

type SeederRepo interface {
	Create(ctx context.Context, a domain.Account) (domain.Account, error)
}

// SeedAdmin ensures a verified superadmin account exists. An existing email is left untouched.
func SeedAdmin(ctx context.Context, repo SeederRepo, hasher SeederHasher, email, password string, lg zerolog.Logger) (bool, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return false, domain.ErrMissingField("email")
	}
	if err := domain.CheckPasswordStrength(password); err != nil {
		return false, err
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return false, domain.ErrHashFailed(err)
	}

	_, err = repo.Create(ctx, domain.Account{
		ID:           uuid.NewString(),
		Username:     "superadmin",
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleSuperadmin,
		Verified:     true,
	})
	if domain.Is(err, "email_already_exists") {
		lg.Info().Str("email", email).Msg("[seed] superadmin already present")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	lg.Info().Str("email", email).Msg("[seed] superadmin created")
	return true, nil
}
