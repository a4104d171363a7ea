package postgres

import (
	"database/sql"
	"time"

	"github.com/baechuer/peoplehub/internal/domain"
)

const userColumns = `id, username, email, password_hash, role, verified,
       verification_code, verification_code_expires_at,
       reset_code, reset_code_expires_at, created_at, updated_at`

type userRow struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	Verified     bool

	VerificationCode          sql.NullString
	VerificationCodeExpiresAt sql.NullTime
	ResetCode                 sql.NullString
	ResetCodeExpiresAt        sql.NullTime

	CreatedAt time.Time
	UpdatedAt time.Time
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (userRow, error) {
	var ur userRow
	err := s.Scan(
		&ur.ID,
		&ur.Username,
		&ur.Email,
		&ur.PasswordHash,
		&ur.Role,
		&ur.Verified,
		&ur.VerificationCode,
		&ur.VerificationCodeExpiresAt,
		&ur.ResetCode,
		&ur.ResetCodeExpiresAt,
		&ur.CreatedAt,
		&ur.UpdatedAt,
	)
	return ur, err
}

func (ur userRow) toDomain() domain.Account {
	return domain.Account{
		ID:                        ur.ID,
		Username:                  ur.Username,
		Email:                     ur.Email,
		PasswordHash:              ur.PasswordHash,
		Role:                      domain.Role(ur.Role),
		Verified:                  ur.Verified,
		VerificationCode:          nullString(ur.VerificationCode),
		VerificationCodeExpiresAt: nullTime(ur.VerificationCodeExpiresAt),
		ResetCode:                 nullString(ur.ResetCode),
		ResetCodeExpiresAt:        nullTime(ur.ResetCodeExpiresAt),
		CreatedAt:                 ur.CreatedAt,
		UpdatedAt:                 ur.UpdatedAt,
	}
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
