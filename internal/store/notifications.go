package store

import (
	"context"
	"fmt"

	"github.com/adanyl0v/taskflow/internal/access"
	"github.com/adanyl0v/taskflow/internal/models"
)

func (q *Queries) CreateNotification(ctx context.Context, notification *models.Notification) error {
	const insertNotificationQuery = `
INSERT INTO notifications (id,
                           user_id,
                           title,
                           message,
                           type,
                           is_read,
                           created_at,
                           task_id,
                           project_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err := q.exec(ctx, insertNotificationQuery,
		notification.ID,
		notification.UserID,
		notification.Title,
		notification.Message,
		notification.Type,
		notification.IsRead,
		utc(notification.CreatedAt),
		notification.TaskID,
		notification.ProjectID,
	)
	if err != nil {
		return fmt.Errorf("inserting notification: %w", translate(err))
	}
	return nil
}

func (q *Queries) ListNotifications(ctx context.Context, scope access.NotificationScope) ([]models.NotificationDetails, error) {
	const selectNotificationsQuery = `
SELECT n.id,
       n.user_id,
       n.title,
       n.message,
       n.type,
       n.is_read,
       n.created_at,
       n.task_id,
       n.project_id,
       t.title AS task_title,
       p.name AS project_name
FROM notifications n
LEFT JOIN tasks t ON t.id = n.task_id
LEFT JOIN projects p ON p.id = n.project_id
WHERE n.user_id = ?
ORDER BY n.created_at DESC, n.id DESC
`
	var notifications []models.NotificationDetails
	err := q.selectAll(ctx, &notifications, selectNotificationsQuery, scope.UserID)
	if err != nil {
		return nil, fmt.Errorf("selecting notifications: %w", err)
	}
	return notifications, nil
}

func (q *Queries) MarkNotificationRead(ctx context.Context, id, userID string) error {
	return affected(q.exec(ctx, `UPDATE notifications SET is_read = ? WHERE id = ? AND user_id = ?`,
		true, id, userID))
}

func (q *Queries) MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error) {
	n, err := q.exec(ctx, `UPDATE notifications SET is_read = ? WHERE user_id = ? AND is_read = ?`,
		true, userID, false)
	if err != nil {
		return 0, fmt.Errorf("marking notifications read: %w", err)
	}
	return n, nil
}

func (q *Queries) CountUnreadNotifications(ctx context.Context, userID string) (int, error) {
	var n int
	err := q.get(ctx, &n, `SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = ?`,
		userID, false)
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return n, nil
}
