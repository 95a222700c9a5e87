package store

import (
	"context"
	"fmt"

	"github.com/adanyl0v/taskflow/internal/access"
	"github.com/adanyl0v/taskflow/internal/models"
)

type activityLogRow struct {
	models.ActivityLog
	UserFirstName string `db:"user_first_name"`
	UserLastName  string `db:"user_last_name"`
	UserEmail     string `db:"user_email"`
}

// scopeActivityLogs restricts the entries aliased as l to those written by
// the scoped user or about one of their assigned tasks.
func scopeActivityLogs(w *where, scope access.ActivityScope) {
	if !scope.Restricted {
		return
	}
	w.add(`(l.user_id = ? OR l.task_id IN (
	SELECT sa.task_id
	FROM task_assignments sa
	WHERE sa.assigned_to_user_id = ?))`,
		scope.UserID, scope.UserID)
}

func (q *Queries) CreateActivityLog(ctx context.Context, log *models.ActivityLog) error {
	const insertActivityLogQuery = `
INSERT INTO activity_logs (id,
                           action,
                           description,
                           type,
                           created_at,
                           user_id,
                           task_id,
                           project_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err := q.exec(ctx, insertActivityLogQuery,
		log.ID,
		log.Action,
		log.Description,
		log.Type,
		utc(log.CreatedAt),
		log.UserID,
		log.TaskID,
		log.ProjectID,
	)
	if err != nil {
		return fmt.Errorf("inserting activity log: %w", translate(err))
	}
	return nil
}

func (q *Queries) ListActivityLogs(ctx context.Context, filter ActivityLogFilter) ([]models.ActivityLogDetails, error) {
	var w where
	scopeActivityLogs(&w, filter.Scope)
	if filter.TaskID != "" {
		w.add(`l.task_id = ?`, filter.TaskID)
	}
	if filter.ProjectID != "" {
		w.add(`l.project_id = ?`, filter.ProjectID)
	}

	query := `
SELECT l.id,
       l.action,
       l.description,
       l.type,
       l.created_at,
       l.user_id,
       l.task_id,
       l.project_id,
       u.first_name AS user_first_name,
       u.last_name AS user_last_name,
       u.email AS user_email
FROM activity_logs l
JOIN users u ON u.id = l.user_id` + w.String() + `
ORDER BY l.created_at DESC, l.id DESC`
	args := w.args
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	var rows []activityLogRow
	err := q.selectAll(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting activity logs: %w", err)
	}

	logs := make([]models.ActivityLogDetails, len(rows))
	for i, r := range rows {
		logs[i] = models.ActivityLogDetails{
			ActivityLog: r.ActivityLog,
			User: models.UserRef{
				ID:        r.UserID,
				FirstName: r.UserFirstName,
				LastName:  r.UserLastName,
				Email:     r.UserEmail,
			},
		}
	}
	return logs, nil
}
