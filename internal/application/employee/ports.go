package employee

import (
	"context"

	"github.com/baechuer/peoplehub/internal/domain"
)

/*
Repo
----
Employee records. Writes that also touch the owning account run in one transaction.
*/
type Repo interface {
	Create(ctx context.Context, e domain.Employee, acct AccountChange) (domain.Employee, error)
	Get(ctx context.Context, id string) (domain.Employee, error)
	List(ctx context.Context, f domain.EmployeeFilter, p domain.PageRequest) ([]domain.Employee, int, error)
	ListEmails(ctx context.Context) ([]string, error)

	EmailTaken(ctx context.Context, email, exceptID string) (bool, error)
	ContactTaken(ctx context.Context, contactNo, exceptID string) (bool, error)

	Update(ctx context.Context, e domain.Employee) (domain.Employee, error)
	// DeleteAndRevert removes the record and demotes the account to an unverified user.
	DeleteAndRevert(ctx context.Context, id, userID string) error

	AccrueMonthlyLeaves(ctx context.Context) (int64, error)
}

// AccountChange is applied to the owning account in the same transaction as the insert.
// Exactly one of NewAccount and PromoteUserID is set, or neither for an account that keeps its role.
type AccountChange struct {
	NewAccount    *domain.Account
	PromoteUserID string
}

type Accounts interface {
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
}

// Assignments counts the projects a user is staffed on.
type Assignments interface {
	CountForUser(ctx context.Context, userID string) (int, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}
