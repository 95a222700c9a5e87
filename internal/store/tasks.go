package store

import (
	"context"
	"fmt"
	"time"

	"github.com/adanyl0v/taskflow/internal/access"
	"github.com/adanyl0v/taskflow/internal/models"
)

const selectTaskQuery = `
SELECT t.id,
       t.title,
       t.description,
       t.start_date,
       t.due_date,
       t.status,
       t.priority,
       t.project_id,
       t.created_by_user_id,
       t.created_at,
       t.updated_at,
       p.name AS project_name,
       u.first_name AS creator_first_name,
       u.last_name AS creator_last_name,
       u.email AS creator_email
FROM tasks t
JOIN projects p ON p.id = t.project_id
JOIN users u ON u.id = t.created_by_user_id
`

type taskRow struct {
	models.Task
	ProjectName      string `db:"project_name"`
	CreatorFirstName string `db:"creator_first_name"`
	CreatorLastName  string `db:"creator_last_name"`
	CreatorEmail     string `db:"creator_email"`
}

func (r *taskRow) details() models.TaskDetails {
	return models.TaskDetails{
		Task:        r.Task,
		ProjectName: r.ProjectName,
		CreatedBy: models.UserRef{
			ID:        r.CreatedByUserID,
			FirstName: r.CreatorFirstName,
			LastName:  r.CreatorLastName,
			Email:     r.CreatorEmail,
		},
	}
}

// scopeTasks restricts the tasks aliased as t to those assigned to the
// scoped user.
func scopeTasks(w *where, scope access.TaskScope) {
	if !scope.Restricted {
		return
	}
	w.add(`EXISTS (
	SELECT 1
	FROM task_assignments sa
	WHERE sa.task_id = t.id AND sa.assigned_to_user_id = ?)`,
		scope.UserID)
}

// windowTasks keeps the tasks whose [start, due or start] interval
// intersects the window.
func windowTasks(w *where, window access.Window) {
	if window.From != nil {
		w.add(`COALESCE(t.due_date, t.start_date) >= ?`, utc(*window.From))
	}
	if window.To != nil {
		w.add(`t.start_date <= ?`, utc(*window.To))
	}
}

func (q *Queries) CreateTask(ctx context.Context, task *models.Task) error {
	const insertTaskQuery = `
INSERT INTO tasks (id,
                   title,
                   description,
                   start_date,
                   due_date,
                   status,
                   priority,
                   project_id,
                   created_by_user_id,
                   created_at,
                   updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err := q.exec(ctx, insertTaskQuery,
		task.ID,
		task.Title,
		task.Description,
		utc(task.StartDate),
		utcPtr(task.DueDate),
		task.Status,
		task.Priority,
		task.ProjectID,
		task.CreatedByUserID,
		utc(task.CreatedAt),
		utcPtr(task.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", translate(err))
	}
	return nil
}

func (q *Queries) GetTask(ctx context.Context, id string, scope access.TaskScope) (*models.TaskDetails, error) {
	var w where
	w.add(`t.id = ?`, id)
	scopeTasks(&w, scope)

	var row taskRow
	err := q.get(ctx, &row, selectTaskQuery+w.String(), w.args...)
	if err != nil {
		return nil, translate(err)
	}

	tasks := []models.TaskDetails{row.details()}
	err = q.loadAssignees(ctx, tasks)
	if err != nil {
		return nil, err
	}
	return &tasks[0], nil
}

func (q *Queries) ListTasks(ctx context.Context, filter TaskFilter) ([]models.TaskDetails, error) {
	var w where
	scopeTasks(&w, filter.Scope)
	windowTasks(&w, filter.Window)
	if filter.ProjectID != "" {
		w.add(`t.project_id = ?`, filter.ProjectID)
	}

	order := ` ORDER BY t.created_at DESC, t.id DESC`
	if filter.SortByStart {
		order = ` ORDER BY t.start_date, t.id`
	}
	return q.listTasks(ctx, selectTaskQuery+w.String()+order, w.args...)
}

func (q *Queries) ListUpcomingTasks(
	ctx context.Context,
	scope access.TaskScope,
	from, to time.Time,
	limit int,
) ([]models.TaskDetails, error) {
	var w where
	scopeTasks(&w, scope)
	w.add(`t.due_date IS NOT NULL`)
	w.add(`t.due_date >= ?`, utc(from))
	w.add(`t.due_date <= ?`, utc(to))
	w.add(`t.status <> ?`, models.TaskCompleted)

	args := append(w.args, limit)
	return q.listTasks(ctx, selectTaskQuery+w.String()+` ORDER BY t.due_date, t.id LIMIT ?`, args...)
}

func (q *Queries) listTasks(ctx context.Context, query string, args ...any) ([]models.TaskDetails, error) {
	var rows []taskRow
	err := q.selectAll(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting tasks: %w", err)
	}

	tasks := make([]models.TaskDetails, len(rows))
	for i := range rows {
		tasks[i] = rows[i].details()
	}
	err = q.loadAssignees(ctx, tasks)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (q *Queries) loadAssignees(ctx context.Context, tasks []models.TaskDetails) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]string, len(tasks))
	for i := range tasks {
		ids[i] = tasks[i].ID
	}

	var rows []struct {
		TaskID string `db:"task_id"`
		models.UserRef
	}
	err := q.selectIn(ctx, &rows, `
SELECT ta.task_id,
       u.id,
       u.first_name,
       u.last_name,
       u.email
FROM task_assignments ta
JOIN users u ON u.id = ta.assigned_to_user_id
WHERE ta.task_id IN (?)
ORDER BY ta.assigned_at, u.first_name, u.last_name
`, ids)
	if err != nil {
		return fmt.Errorf("selecting task assignees: %w", err)
	}

	byTask := make(map[string][]models.UserRef, len(tasks))
	for _, r := range rows {
		byTask[r.TaskID] = append(byTask[r.TaskID], r.UserRef)
	}
	for i := range tasks {
		tasks[i].Assignees = byTask[tasks[i].ID]
	}
	return nil
}

func (q *Queries) UpdateTask(ctx context.Context, task *models.Task) error {
	const updateTaskQuery = `
UPDATE tasks
SET title = ?,
    description = ?,
    start_date = ?,
    due_date = ?,
    status = ?,
    priority = ?,
    updated_at = ?
WHERE id = ?
`
	return affected(q.exec(ctx, updateTaskQuery,
		task.Title,
		task.Description,
		utc(task.StartDate),
		utcPtr(task.DueDate),
		task.Status,
		task.Priority,
		utcPtr(task.UpdatedAt),
		task.ID,
	))
}

func (q *Queries) UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus, updatedAt time.Time) error {
	const updateTaskStatusQuery = `
UPDATE tasks
SET status = ?,
    updated_at = ?
WHERE id = ?
`
	return affected(q.exec(ctx, updateTaskStatusQuery, status, utc(updatedAt), id))
}

func (q *Queries) DeleteTask(ctx context.Context, id string) error {
	return affected(q.exec(ctx, `DELETE FROM tasks WHERE id = ?`, id))
}

func (q *Queries) SetTaskAssignees(ctx context.Context, taskID string, userIDs []string, assignedAt time.Time) error {
	_, err := q.exec(ctx, `DELETE FROM task_assignments WHERE task_id = ?`, taskID)
	if err != nil {
		return fmt.Errorf("deleting task assignments: %w", err)
	}

	const insertAssignmentQuery = `
INSERT INTO task_assignments (id,
                              task_id,
                              assigned_to_user_id,
                              assigned_at)
VALUES (?, ?, ?, ?)
`
	for _, userID := range userIDs {
		_, err = q.exec(ctx, insertAssignmentQuery, newID(), taskID, userID, utc(assignedAt))
		if err != nil {
			return fmt.Errorf("inserting task assignment: %w", translate(err))
		}
	}
	return nil
}

func (q *Queries) CountTasks(ctx context.Context, scope access.TaskScope, status *models.TaskStatus) (int, error) {
	var w where
	scopeTasks(&w, scope)
	if status != nil {
		w.add(`t.status = ?`, *status)
	}

	var n int
	err := q.get(ctx, &n, `SELECT COUNT(*) FROM tasks t`+w.String(), w.args...)
	if err != nil {
		return 0, fmt.Errorf("counting tasks: %w", err)
	}
	return n, nil
}

func (q *Queries) CountTasksByStatus(ctx context.Context, scope access.TaskScope) (map[models.TaskStatus]int, error) {
	var w where
	scopeTasks(&w, scope)

	var rows []statusCount
	err := q.selectAll(ctx, &rows, `SELECT t.status, COUNT(*) AS n FROM tasks t`+w.String()+` GROUP BY t.status`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("counting tasks by status: %w", err)
	}

	counts := make(map[models.TaskStatus]int, len(rows))
	for _, r := range rows {
		counts[models.TaskStatus(r.Status)] = r.N
	}
	return counts, nil
}
