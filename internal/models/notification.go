package models

import "time"

type NotificationType string

const (
	NotificationTaskAssigned   NotificationType = "TaskAssigned"
	NotificationTaskUpdated    NotificationType = "TaskUpdated"
	NotificationTaskCompleted  NotificationType = "TaskCompleted"
	NotificationProjectUpdated NotificationType = "ProjectUpdated"
	NotificationCommentAdded   NotificationType = "CommentAdded"
	NotificationOther          NotificationType = "Other"
)

type Notification struct {
	ID        string           `db:"id"`
	UserID    string           `db:"user_id"`
	Title     string           `db:"title"`
	Message   *string          `db:"message"`
	Type      NotificationType `db:"type"`
	IsRead    bool             `db:"is_read"`
	CreatedAt time.Time        `db:"created_at"`
	TaskID    *string          `db:"task_id"`
	ProjectID *string          `db:"project_id"`
}

// NotificationDetails carries the titles of the referenced task and project,
// if they still exist.
type NotificationDetails struct {
	Notification
	TaskTitle   *string `db:"task_title"`
	ProjectName *string `db:"project_name"`
}
