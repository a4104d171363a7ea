package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/peoplehub/internal/application/employee"
	"github.com/baechuer/peoplehub/internal/domain"
)

var employeeCols = []string{
	"id", "user_id", "employee_name", "contact_no", "email", "gender",
	"department", "sub_department", "sick_leave", "casual_leave", "privilege_leave",
	"created_at", "updated_at",
	"username", "email", "role", "verified",
}

func employeeRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(employeeCols).AddRow(
		"e1", "u1", "Jane Doe", "555", "jane@x.com", "Female",
		"Eng", "Platform", 2, 1, 3,
		now, now,
		"janedoe", "jane@x.com", "employee", true,
	)
}

func TestEmployeeRepo_Create_NewAccountInTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	acct := domain.Account{ID: "u1", Username: "janedoe", Email: "jane@x.com", PasswordHash: "h", Role: domain.RoleEmployee, Verified: true}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(
			"u1", "janedoe", "jane@x.com", "h", "employee", true, nil, nil, nil, nil, now, now,
		))
	mock.ExpectExec("INSERT INTO employees").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM employees e").WithArgs("e1").WillReturnRows(employeeRow(now))

	got, err := NewEmployeeRepo(db).Create(context.Background(), domain.Employee{
		ID: "e1", UserID: "u1", Name: "Jane Doe", ContactNo: "555", Email: "JANE@x.com",
		Gender: domain.GenderFemale, Department: "Eng", SubDepartment: "Platform",
	}, employee.AccountChange{NewAccount: &acct})
	require.NoError(t, err)
	assert.Equal(t, "e1", got.ID)
	require.NotNil(t, got.User)
	assert.Equal(t, "janedoe", got.User.Username)
	assert.Equal(t, domain.LeaveBalance{Sick: 2, Casual: 1, Privilege: 3}, got.Leaves)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepo_Create_ContactConflictRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET role = 'employee'`).WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO employees").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "employees_contact_no_key"})
	mock.ExpectRollback()

	_, err = NewEmployeeRepo(db).Create(context.Background(), domain.Employee{ID: "e1", UserID: "u1"},
		employee.AccountChange{PromoteUserID: "u1"})
	assert.Equal(t, "employee_contact_exists", codeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepo_List_Filters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM employees e WHERE TRUE AND e.department = \$1 AND e.gender = \$2`).
		WithArgs("Eng", "Female").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(`(?s)FROM employees e.*e.department = \$1 AND e.gender = \$2.*LIMIT \$3 OFFSET \$4`).
		WithArgs("Eng", "Female", 10, 10).
		WillReturnRows(employeeRow(now))

	items, total, err := NewEmployeeRepo(db).List(context.Background(),
		domain.EmployeeFilter{Department: "Eng", Gender: domain.GenderFemale},
		domain.PageRequest{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	assert.Len(t, items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepo_DeleteAndRevert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Run("success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM employees").WithArgs("e1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`(?s)UPDATE users\s+SET role = 'user',\s+verified = FALSE`).WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, NewEmployeeRepo(db).DeleteAndRevert(context.Background(), "e1", "u1"))
	})

	t.Run("missing_rolls_back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM employees").WithArgs("e2").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := NewEmployeeRepo(db).DeleteAndRevert(context.Background(), "e2", "u2")
		assert.Equal(t, "employee_not_found", codeOf(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepo_AccrueMonthlyLeaves(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`(?s)SET casual_leave = 1,\s+sick_leave = sick_leave \+ 1,\s+privilege_leave = privilege_leave \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := NewEmployeeRepo(db).AccrueMonthlyLeaves(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
