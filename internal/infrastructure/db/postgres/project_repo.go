package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/baechuer/peoplehub/internal/domain"
)

type ProjectRepo struct {
	db *sql.DB
}

func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

const projectSelect = `
SELECT p.id, p.project_name, p.description, p.start_date, p.end_date, p.status, p.department,
       p.delivery_manager_id, p.manager_id, p.lead_id, p.priority, p.tags, p.client_name, p.is_active,
       p.created_by, p.created_at, p.updated_at,
       COALESCE((SELECT json_agg(d.user_id ORDER BY d.position)
                 FROM project_developers d WHERE d.project_id = p.id), '[]'::json)
FROM projects p
`

// memberCond matches projects where the user bound to $n holds any team position.
func memberCond(n int) string {
	return fmt.Sprintf(`(p.delivery_manager_id = $%[1]d OR p.manager_id = $%[1]d OR p.lead_id = $%[1]d
     OR EXISTS (SELECT 1 FROM project_developers d WHERE d.project_id = p.id AND d.user_id = $%[1]d))`, n)
}

func scanProject(s scanner) (domain.Project, error) {
	var (
		p                domain.Project
		status, priority string
		manager          sql.NullString
		tags, devs       []byte
	)
	err := s.Scan(
		&p.ID, &p.Name, &p.Description, &p.StartDate, &p.EndDate, &status, &p.Department,
		&p.DeliveryManagerID, &manager, &p.LeadID, &priority, &tags, &p.ClientName, &p.IsActive,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
		&devs,
	)
	if err != nil {
		return domain.Project{}, err
	}
	p.Status = domain.ProjectStatus(status)
	p.Priority = domain.Priority(priority)
	p.ManagerID = manager.String
	if err := json.Unmarshal(tags, &p.Tags); err != nil {
		return domain.Project{}, fmt.Errorf("decode tags: %w", err)
	}
	if err := json.Unmarshal(devs, &p.DeveloperIDs); err != nil {
		return domain.Project{}, fmt.Errorf("decode developers: %w", err)
	}
	return p, nil
}

func (r *ProjectRepo) query(ctx context.Context, q string, args ...any) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	out := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return out, nil
}

func (r *ProjectRepo) Get(ctx context.Context, id string) (domain.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx, projectSelect+`WHERE p.id = $1 LIMIT 1;`, id))
	if err != nil {
		if isNoRows(err) {
			return domain.Project{}, domain.ErrProjectNotFound()
		}
		return domain.Project{}, domain.ErrDBUnavailable(err)
	}
	return p, nil
}

func (r *ProjectRepo) List(ctx context.Context, f domain.ProjectFilter, pg domain.PageRequest) ([]domain.Project, int, error) {
	where := []string{"TRUE"}
	args := []any{}
	argN := 1

	add := func(condFmt string, val any) {
		where = append(where, fmt.Sprintf(condFmt, argN))
		args = append(args, val)
		argN++
	}

	if f.Status != "" {
		add("p.status = $%d", string(f.Status))
	}
	if f.Priority != "" {
		add("p.priority = $%d", string(f.Priority))
	}
	if f.ManagerID != "" {
		add("p.manager_id = $%d", f.ManagerID)
	}
	if f.LeadID != "" {
		add("p.lead_id = $%d", f.LeadID)
	}
	if f.MemberID != "" {
		where = append(where, memberCond(argN))
		args = append(args, f.MemberID)
		argN++
	}
	whereSQL := "WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects p "+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, domain.ErrDBUnavailable(err)
	}

	listSQL := projectSelect + whereSQL + fmt.Sprintf(`
ORDER BY p.created_at DESC, p.id DESC
LIMIT $%d OFFSET $%d`, argN, argN+1)
	args = append(args, pg.Limit, pg.Offset())

	out, err := r.query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ProjectRepo) ListByUser(ctx context.Context, userID string) ([]domain.Project, error) {
	return r.query(ctx, projectSelect+"WHERE "+memberCond(1)+"\nORDER BY p.created_at DESC, p.id DESC;", userID)
}

func (r *ProjectRepo) ListAll(ctx context.Context) ([]domain.Project, error) {
	return r.query(ctx, projectSelect+"ORDER BY p.created_at ASC, p.id ASC;")
}

func (r *ProjectRepo) NameTaken(ctx context.Context, name, exceptID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM projects WHERE LOWER(project_name) = LOWER($1) AND id::text <> $2);`
	var ok bool
	if err := r.db.QueryRowContext(ctx, q, strings.TrimSpace(name), exceptID).Scan(&ok); err != nil {
		return false, domain.ErrDBUnavailable(err)
	}
	return ok, nil
}

// CountForUser counts the projects the user is staffed on in any position.
func (r *ProjectRepo) CountForUser(ctx context.Context, userID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects p WHERE "+memberCond(1)+";", userID).Scan(&n); err != nil {
		return 0, domain.ErrDBUnavailable(err)
	}
	return n, nil
}

func (r *ProjectRepo) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	tags, err := json.Marshal(nonNil(p.Tags))
	if err != nil {
		return domain.Project{}, domain.ErrInternal(err)
	}

	err = withTx(ctx, r.db, func(tx *sql.Tx) error {
		const q = `
INSERT INTO projects (id, project_name, description, start_date, end_date, status, department,
                      delivery_manager_id, manager_id, lead_id, priority, tags, client_name, is_active,
                      created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
`
		_, err := tx.ExecContext(ctx, q,
			p.ID, p.Name, p.Description, p.StartDate, p.EndDate, string(p.Status), p.Department,
			p.DeliveryManagerID, optionalID(p.ManagerID), p.LeadID, string(p.Priority), tags, p.ClientName, p.IsActive,
			p.CreatedBy, p.CreatedAt, p.UpdatedAt,
		)
		if err != nil {
			return projectWriteErr(err)
		}
		return insertDevelopers(ctx, tx, p.ID, p.DeveloperIDs)
	})
	if err != nil {
		return domain.Project{}, err
	}
	return r.Get(ctx, p.ID)
}

func (r *ProjectRepo) Update(ctx context.Context, p domain.Project) (domain.Project, error) {
	tags, err := json.Marshal(nonNil(p.Tags))
	if err != nil {
		return domain.Project{}, domain.ErrInternal(err)
	}

	err = withTx(ctx, r.db, func(tx *sql.Tx) error {
		const q = `
UPDATE projects
SET project_name = $2,
    description = $3,
    start_date = $4,
    end_date = $5,
    status = $6,
    department = $7,
    delivery_manager_id = $8,
    manager_id = $9,
    lead_id = $10,
    priority = $11,
    tags = $12,
    client_name = $13,
    is_active = $14,
    updated_at = $15
WHERE id = $1;
`
		res, err := tx.ExecContext(ctx, q,
			p.ID, p.Name, p.Description, p.StartDate, p.EndDate, string(p.Status), p.Department,
			p.DeliveryManagerID, optionalID(p.ManagerID), p.LeadID, string(p.Priority), tags, p.ClientName,
			p.IsActive, p.UpdatedAt,
		)
		if err != nil {
			return projectWriteErr(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrProjectNotFound()
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM project_developers WHERE project_id = $1;`, p.ID); err != nil {
			return domain.ErrDBUnavailable(err)
		}
		return insertDevelopers(ctx, tx, p.ID, p.DeveloperIDs)
	})
	if err != nil {
		return domain.Project{}, err
	}
	return r.Get(ctx, p.ID)
}

func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1;`, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrProjectNotFound()
	}
	return nil
}

func insertDevelopers(ctx context.Context, tx *sql.Tx, projectID string, ids []string) error {
	const q = `INSERT INTO project_developers (project_id, user_id, position) VALUES ($1, $2, $3);`
	for i, uid := range ids {
		if _, err := tx.ExecContext(ctx, q, projectID, uid, i); err != nil {
			return domain.ErrDBUnavailable(err)
		}
	}
	return nil
}

func projectWriteErr(err error) error {
	if name, ok := uniqueConstraint(err); ok && name == "projects_name_lower_key" {
		return domain.ErrProjectNameExists()
	}
	return domain.ErrDBUnavailable(err)
}

func optionalID(id string) sql.NullString {
	return sql.NullString{String: id, Valid: id != ""}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
