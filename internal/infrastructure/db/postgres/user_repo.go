package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/baechuer/peoplehub/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ---------- reads ----------

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.Account{}, domain.ErrMissingField("email")
	}

	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1;`
	ur, err := scanUser(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if isNoRows(err) {
			return domain.Account{}, domain.ErrUserNotFound()
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return ur.toDomain(), nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.Account, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Account{}, domain.ErrMissingField("id")
	}

	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1;`
	ur, err := scanUser(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return domain.Account{}, domain.ErrUserNotFound()
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return ur.toDomain(), nil
}

// Summaries loads the public view of the given accounts. Unknown ids are skipped.
func (r *UserRepo) Summaries(ctx context.Context, ids []string) (map[string]domain.AccountSummary, error) {
	out := make(map[string]domain.AccountSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	ph := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		ph[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	q := `SELECT id, username, email, role, verified FROM users WHERE id IN (` + strings.Join(ph, ", ") + `);`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.AccountSummary
		var role string
		if err := rows.Scan(&s.ID, &s.Username, &s.Email, &role, &s.Verified); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		s.Role = domain.Role(role)
		out[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *UserRepo) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	if !role.Valid() {
		return 0, domain.ErrInvalidRole(string(role))
	}

	const q = `SELECT COUNT(1) FROM users WHERE role = $1;`

	var n int
	if err := r.db.QueryRowContext(ctx, q, string(role)).Scan(&n); err != nil {
		return 0, domain.ErrDBUnavailable(err)
	}
	return n, nil
}

// ---------- writes ----------

func (r *UserRepo) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	return insertAccount(ctx, r.db, a)
}

func insertAccount(ctx context.Context, ex execer, a domain.Account) (domain.Account, error) {
	a.Email = domain.NormalizeEmail(a.Email)
	if a.ID == "" {
		return domain.Account{}, domain.ErrMissingField("id")
	}
	if a.Email == "" {
		return domain.Account{}, domain.ErrMissingField("email")
	}
	if a.PasswordHash == "" {
		return domain.Account{}, domain.ErrMissingField("password_hash")
	}
	if a.Role == "" {
		a.Role = domain.RoleUser
	}

	q := `
INSERT INTO users (id, username, email, password_hash, role, verified,
                   verification_code, verification_code_expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + userColumns + `;`

	ur, err := scanUser(ex.QueryRowContext(ctx, q,
		a.ID, a.Username, a.Email, a.PasswordHash, string(a.Role), a.Verified,
		toNullString(a.VerificationCode), toNullTime(a.VerificationCodeExpiresAt),
	))
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return domain.Account{}, domain.ErrEmailAlreadyExists()
		}
		return domain.Account{}, domain.ErrDBUnavailable(err)
	}
	return ur.toDomain(), nil
}

// SetCode overwrites one code pair in a single statement.
func (r *UserRepo) SetCode(ctx context.Context, userID string, kind domain.CodeKind, code string, expiresAt time.Time) error {
	var q string
	switch kind {
	case domain.CodeVerification:
		q = `UPDATE users SET verification_code = $2, verification_code_expires_at = $3, updated_at = NOW() WHERE id = $1;`
	case domain.CodePasswordReset:
		q = `UPDATE users SET reset_code = $2, reset_code_expires_at = $3, updated_at = NOW() WHERE id = $1;`
	default:
		return domain.ErrInternal(fmt.Errorf("unknown code kind %q", kind))
	}
	return r.execOne(ctx, q, userID, code, expiresAt)
}

func (r *UserRepo) MarkVerified(ctx context.Context, userID string) error {
	const q = `
UPDATE users
SET verified = TRUE,
    verification_code = NULL,
    verification_code_expires_at = NULL,
    updated_at = NOW()
WHERE id = $1;
`
	return r.execOne(ctx, q, userID)
}

func (r *UserRepo) ResetPassword(ctx context.Context, userID, newHash string) error {
	if newHash == "" {
		return domain.ErrMissingField("password_hash")
	}
	const q = `
UPDATE users
SET password_hash = $2,
    reset_code = NULL,
    reset_code_expires_at = NULL,
    updated_at = NOW()
WHERE id = $1;
`
	return r.execOne(ctx, q, userID, newHash)
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	if newHash == "" {
		return domain.ErrMissingField("password_hash")
	}
	const q = `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1;`
	return r.execOne(ctx, q, userID, newHash)
}

func (r *UserRepo) SetRole(ctx context.Context, userID string, role domain.Role) error {
	if !role.Valid() {
		return domain.ErrInvalidRole(string(role))
	}
	const q = `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1;`
	return r.execOne(ctx, q, userID, string(role))
}

// execOne runs an update keyed by user id and maps zero affected rows to not found.
func (r *UserRepo) execOne(ctx context.Context, q string, userID string, args ...any) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.ErrMissingField("user_id")
	}
	res, err := r.db.ExecContext(ctx, q, append([]any{userID}, args...)...)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}
