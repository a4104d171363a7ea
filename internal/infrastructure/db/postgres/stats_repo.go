package postgres

import (
	"context"
	"database/sql"

	"github.com/baechuer/peoplehub/internal/domain"
)

// StatsRepo serves the dashboard counters.
type StatsRepo struct {
	db *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

func (r *StatsRepo) CountProjects(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM projects;`)
}

func (r *StatsRepo) CountEmployees(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM employees;`)
}

func (r *StatsRepo) CountAssignedEmployees(ctx context.Context) (int, error) {
	const q = `
SELECT COUNT(*)
FROM employees e
WHERE EXISTS (
        SELECT 1 FROM projects p
        WHERE e.user_id IN (p.delivery_manager_id, p.manager_id, p.lead_id))
   OR EXISTS (
        SELECT 1 FROM project_developers d
        WHERE d.user_id = e.user_id);
`
	return r.count(ctx, q)
}

func (r *StatsRepo) count(ctx context.Context, q string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, domain.ErrDBUnavailable(err)
	}
	return n, nil
}

// Ping backs the readiness probe.
func (r *StatsRepo) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}
