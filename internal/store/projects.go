package store

import (
	"context"
	"fmt"

	"github.com/adanyl0v/taskflow/internal/access"
	"github.com/adanyl0v/taskflow/internal/models"
)

const selectProjectQuery = `
SELECT p.id,
       p.name,
       p.description,
       p.start_date,
       p.end_date,
       p.status,
       p.created_by_user_id,
       p.created_at,
       p.updated_at,
       u.first_name AS creator_first_name,
       u.last_name AS creator_last_name,
       u.email AS creator_email
FROM projects p
JOIN users u ON u.id = p.created_by_user_id
`

type projectRow struct {
	models.Project
	CreatorFirstName string `db:"creator_first_name"`
	CreatorLastName  string `db:"creator_last_name"`
	CreatorEmail     string `db:"creator_email"`
}

func (r *projectRow) details() models.ProjectDetails {
	return models.ProjectDetails{
		Project: r.Project,
		CreatedBy: models.UserRef{
			ID:        r.CreatedByUserID,
			FirstName: r.CreatorFirstName,
			LastName:  r.CreatorLastName,
			Email:     r.CreatorEmail,
		},
	}
}

// scopeProjects restricts the projects aliased as p to those created by the
// scoped user or containing one of their assignments.
func scopeProjects(w *where, scope access.ProjectScope) {
	if !scope.Restricted {
		return
	}
	w.add(`(p.created_by_user_id = ? OR EXISTS (
	SELECT 1
	FROM tasks st
	JOIN task_assignments sa ON sa.task_id = st.id
	WHERE st.project_id = p.id AND sa.assigned_to_user_id = ?))`,
		scope.UserID, scope.UserID)
}

func (q *Queries) CreateProject(ctx context.Context, project *models.Project) error {
	const insertProjectQuery = `
INSERT INTO projects (id,
                      name,
                      description,
                      start_date,
                      end_date,
                      status,
                      created_by_user_id,
                      created_at,
                      updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err := q.exec(ctx, insertProjectQuery,
		project.ID,
		project.Name,
		project.Description,
		utc(project.StartDate),
		utcPtr(project.EndDate),
		project.Status,
		project.CreatedByUserID,
		utc(project.CreatedAt),
		utcPtr(project.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", translate(err))
	}
	return nil
}

func (q *Queries) GetProject(ctx context.Context, id string, scope access.ProjectScope) (*models.ProjectDetails, error) {
	var w where
	w.add(`p.id = ?`, id)
	scopeProjects(&w, scope)

	var row projectRow
	err := q.get(ctx, &row, selectProjectQuery+w.String(), w.args...)
	if err != nil {
		return nil, translate(err)
	}
	details := row.details()
	return &details, nil
}

func (q *Queries) ListProjects(ctx context.Context, scope access.ProjectScope) ([]models.ProjectDetails, error) {
	var w where
	scopeProjects(&w, scope)

	var rows []projectRow
	err := q.selectAll(ctx, &rows, selectProjectQuery+w.String()+` ORDER BY p.created_at DESC, p.id DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("selecting projects: %w", err)
	}

	projects := make([]models.ProjectDetails, len(rows))
	for i := range rows {
		projects[i] = rows[i].details()
	}
	return projects, nil
}

func (q *Queries) UpdateProject(ctx context.Context, project *models.Project) error {
	const updateProjectQuery = `
UPDATE projects
SET name = ?,
    description = ?,
    start_date = ?,
    end_date = ?,
    status = ?,
    updated_at = ?
WHERE id = ?
`
	return affected(q.exec(ctx, updateProjectQuery,
		project.Name,
		project.Description,
		utc(project.StartDate),
		utcPtr(project.EndDate),
		project.Status,
		utcPtr(project.UpdatedAt),
		project.ID,
	))
}

func (q *Queries) DeleteProject(ctx context.Context, id string) error {
	return affected(q.exec(ctx, `DELETE FROM projects WHERE id = ?`, id))
}

func (q *Queries) CountProjects(ctx context.Context, scope access.ProjectScope) (int, error) {
	var w where
	scopeProjects(&w, scope)

	var n int
	err := q.get(ctx, &n, `SELECT COUNT(*) FROM projects p`+w.String(), w.args...)
	if err != nil {
		return 0, fmt.Errorf("counting projects: %w", err)
	}
	return n, nil
}

type statusCount struct {
	Status string `db:"status"`
	N      int    `db:"n"`
}

func (q *Queries) CountProjectsByStatus(ctx context.Context, scope access.ProjectScope) (map[models.ProjectStatus]int, error) {
	var w where
	scopeProjects(&w, scope)

	var rows []statusCount
	err := q.selectAll(ctx, &rows, `SELECT p.status, COUNT(*) AS n FROM projects p`+w.String()+` GROUP BY p.status`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("counting projects by status: %w", err)
	}

	counts := make(map[models.ProjectStatus]int, len(rows))
	for _, r := range rows {
		counts[models.ProjectStatus(r.Status)] = r.N
	}
	return counts, nil
}
