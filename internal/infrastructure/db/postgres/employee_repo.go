package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/baechuer/peoplehub/internal/application/employee"
	"github.com/baechuer/peoplehub/internal/domain"
)

type EmployeeRepo struct {
	db *sql.DB
}

func NewEmployeeRepo(db *sql.DB) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

const employeeSelect = `
SELECT e.id, e.user_id, e.employee_name, e.contact_no, e.email, e.gender,
       e.department, e.sub_department, e.sick_leave, e.casual_leave, e.privilege_leave,
       e.created_at, e.updated_at,
       u.username, u.email, u.role, u.verified
FROM employees e
JOIN users u ON u.id = e.user_id
`

func scanEmployee(s scanner) (domain.Employee, error) {
	var e domain.Employee
	var gender, role string
	u := domain.AccountSummary{}
	err := s.Scan(
		&e.ID, &e.UserID, &e.Name, &e.ContactNo, &e.Email, &gender,
		&e.Department, &e.SubDepartment, &e.Leaves.Sick, &e.Leaves.Casual, &e.Leaves.Privilege,
		&e.CreatedAt, &e.UpdatedAt,
		&u.Username, &u.Email, &role, &u.Verified,
	)
	if err != nil {
		return domain.Employee{}, err
	}
	e.Gender = domain.Gender(gender)
	u.ID = e.UserID
	u.Role = domain.Role(role)
	e.User = &u
	return e, nil
}

func employeeConflict(err error) error {
	name, ok := uniqueConstraint(err)
	if !ok {
		return nil
	}
	switch name {
	case "employees_contact_no_key":
		return domain.ErrEmployeeContactExists()
	case "users_email_key":
		return domain.ErrEmailAlreadyExists()
	default:
		return domain.ErrEmployeeEmailExists()
	}
}

// Create inserts the employee and applies the account change in one transaction.
func (r *EmployeeRepo) Create(ctx context.Context, e domain.Employee, acct employee.AccountChange) (domain.Employee, error) {
	e.Email = domain.NormalizeEmail(e.Email)

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if acct.NewAccount != nil {
			if _, err := insertAccount(ctx, tx, *acct.NewAccount); err != nil {
				return err
			}
		}
		if acct.PromoteUserID != "" {
			const promote = `UPDATE users SET role = 'employee', updated_at = NOW() WHERE id = $1 AND role = 'user';`
			if _, err := tx.ExecContext(ctx, promote, acct.PromoteUserID); err != nil {
				return domain.ErrDBUnavailable(err)
			}
		}

		const q = `
INSERT INTO employees (id, user_id, employee_name, contact_no, email, gender, department, sub_department,
                       sick_leave, casual_leave, privilege_leave, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`
		_, err := tx.ExecContext(ctx, q,
			e.ID, e.UserID, e.Name, e.ContactNo, e.Email, string(e.Gender), e.Department, e.SubDepartment,
			e.Leaves.Sick, e.Leaves.Casual, e.Leaves.Privilege, e.CreatedAt, e.UpdatedAt,
		)
		if err != nil {
			if c := employeeConflict(err); c != nil {
				return c
			}
			return domain.ErrDBUnavailable(err)
		}
		return nil
	})
	if err != nil {
		return domain.Employee{}, err
	}
	return r.Get(ctx, e.ID)
}

func (r *EmployeeRepo) Get(ctx context.Context, id string) (domain.Employee, error) {
	e, err := scanEmployee(r.db.QueryRowContext(ctx, employeeSelect+`WHERE e.id = $1 LIMIT 1;`, id))
	if err != nil {
		if isNoRows(err) {
			return domain.Employee{}, domain.ErrEmployeeNotFound()
		}
		return domain.Employee{}, domain.ErrDBUnavailable(err)
	}
	return e, nil
}

func (r *EmployeeRepo) List(ctx context.Context, f domain.EmployeeFilter, p domain.PageRequest) ([]domain.Employee, int, error) {
	where := []string{"TRUE"}
	args := []any{}
	argN := 1

	add := func(condFmt string, val any) {
		where = append(where, fmt.Sprintf(condFmt, argN))
		args = append(args, val)
		argN++
	}

	if f.Department != "" {
		add("e.department = $%d", f.Department)
	}
	if f.SubDepartment != "" {
		add("e.sub_department = $%d", f.SubDepartment)
	}
	if f.Gender != "" {
		add("e.gender = $%d", string(f.Gender))
	}
	whereSQL := "WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM employees e "+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, domain.ErrDBUnavailable(err)
	}

	listSQL := employeeSelect + whereSQL + fmt.Sprintf(`
ORDER BY e.created_at DESC, e.id DESC
LIMIT $%d OFFSET $%d`, argN, argN+1)
	args = append(args, p.Limit, p.Offset())

	rows, err := r.db.QueryContext(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	var out []domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, domain.ErrDBUnavailable(err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.ErrDBUnavailable(err)
	}
	return out, total, nil
}

func (r *EmployeeRepo) ListEmails(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT email FROM employees ORDER BY email ASC;`)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, email)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *EmployeeRepo) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM employees WHERE email = $1 AND id::text <> $2);`
	return r.exists(ctx, q, domain.NormalizeEmail(email), exceptID)
}

func (r *EmployeeRepo) ContactTaken(ctx context.Context, contactNo, exceptID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM employees WHERE contact_no = $1 AND id::text <> $2);`
	return r.exists(ctx, q, contactNo, exceptID)
}

func (r *EmployeeRepo) exists(ctx context.Context, q string, args ...any) (bool, error) {
	var ok bool
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&ok); err != nil {
		return false, domain.ErrDBUnavailable(err)
	}
	return ok, nil
}

func (r *EmployeeRepo) Update(ctx context.Context, e domain.Employee) (domain.Employee, error) {
	const q = `
UPDATE employees
SET employee_name = $2,
    contact_no = $3,
    email = $4,
    gender = $5,
    department = $6,
    sub_department = $7,
    updated_at = $8
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q,
		e.ID, e.Name, e.ContactNo, domain.NormalizeEmail(e.Email), string(e.Gender),
		e.Department, e.SubDepartment, e.UpdatedAt,
	)
	if err != nil {
		if c := employeeConflict(err); c != nil {
			return domain.Employee{}, c
		}
		return domain.Employee{}, domain.ErrDBUnavailable(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Employee{}, domain.ErrEmployeeNotFound()
	}
	return r.Get(ctx, e.ID)
}

// DeleteAndRevert removes the employee row and turns the account back into an unverified user.
func (r *EmployeeRepo) DeleteAndRevert(ctx context.Context, id, userID string) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM employees WHERE id = $1;`, id)
		if err != nil {
			return domain.ErrDBUnavailable(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrEmployeeNotFound()
		}

		const revert = `
UPDATE users
SET role = 'user',
    verified = FALSE,
    updated_at = NOW()
WHERE id = $1 AND role = 'employee';
`
		if _, err := tx.ExecContext(ctx, revert, userID); err != nil {
			return domain.ErrDBUnavailable(err)
		}
		return nil
	})
}

func (r *EmployeeRepo) AccrueMonthlyLeaves(ctx context.Context) (int64, error) {
	const q = `
UPDATE employees
SET casual_leave = 1,
    sick_leave = sick_leave + 1,
    privilege_leave = privilege_leave + 1,
    updated_at = NOW();
`
	res, err := r.db.ExecContext(ctx, q)
	if err != nil {
		return 0, domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
