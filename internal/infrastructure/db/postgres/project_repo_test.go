package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/peoplehub/internal/domain"
)

var projectCols = []string{
	"id", "project_name", "description", "start_date", "end_date", "status", "department",
	"delivery_manager_id", "manager_id", "lead_id", "priority", "tags", "client_name", "is_active",
	"created_by", "created_at", "updated_at", "developers",
}

func projectRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(projectCols).AddRow(
		"p1", "Apollo", "", now, now.Add(time.Hour), "In Progress", "Eng",
		"dm", nil, "lead", "High", []byte(`["go"]`), "ACME", true,
		"adm", now, now, []byte(`["d1","d2"]`),
	)
}

func TestProjectRepo_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM projects p").WithArgs("p1").WillReturnRows(projectRow(now))
	mock.ExpectQuery("SELECT (.+) FROM projects p").WithArgs("p2").WillReturnRows(sqlmock.NewRows(projectCols))

	p, err := NewProjectRepo(db).Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, p.Status)
	assert.Equal(t, "", p.ManagerID)
	assert.Equal(t, []string{"d1", "d2"}, p.DeveloperIDs)
	assert.Equal(t, []string{"go"}, p.Tags)

	_, err = NewProjectRepo(db).Get(context.Background(), "p2")
	assert.Equal(t, "project_not_found", codeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_Create_WritesDevelopersInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO projects").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO project_developers").WithArgs("p1", "d1", 0).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO project_developers").WithArgs("p1", "d2", 1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM projects p").WithArgs("p1").WillReturnRows(projectRow(now))

	_, err = NewProjectRepo(db).Create(context.Background(), domain.Project{
		ID: "p1", Name: "Apollo", StartDate: now, EndDate: now.Add(time.Hour),
		Status: domain.StatusInProgress, Priority: domain.PriorityHigh,
		DeliveryManagerID: "dm", LeadID: "lead", DeveloperIDs: []string{"d1", "d2"},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_Create_NameConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO projects").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "projects_name_lower_key"})
	mock.ExpectRollback()

	_, err = NewProjectRepo(db).Create(context.Background(), domain.Project{ID: "p1", Name: "Apollo"})
	assert.Equal(t, "project_name_exists", codeOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_List_MemberRestriction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`(?s)SELECT COUNT\(\*\) FROM projects p WHERE TRUE AND p.status = \$1 AND \(p.delivery_manager_id = \$2`).
		WithArgs("In Progress", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`(?s)d.user_id = \$2.*LIMIT \$3 OFFSET \$4`).
		WithArgs("In Progress", "u1", 10, 0).
		WillReturnRows(projectRow(now))

	items, total, err := NewProjectRepo(db).List(context.Background(),
		domain.ProjectFilter{Status: domain.StatusInProgress, MemberID: "u1"},
		domain.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepo_NameTakenAndCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`LOWER\(project_name\) = LOWER\(\$1\)`).
		WithArgs("Apollo", "").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM projects p WHERE`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	repo := NewProjectRepo(db)
	taken, err := repo.NameTaken(context.Background(), " Apollo ", "")
	require.NoError(t, err)
	assert.True(t, taken)

	n, err := repo.CountForUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsRepo_Counts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM projects`).WillReturnRows(sqlmock.NewRows([]string{"c"}).AddRow(4))
	mock.ExpectQuery(`(?s)FROM employees e\s+WHERE EXISTS`).WillReturnRows(sqlmock.NewRows([]string{"c"}).AddRow(3))

	repo := NewStatsRepo(db)
	n, err := repo.CountProjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	n, err = repo.CountAssignedEmployees(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
