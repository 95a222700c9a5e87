package models

import "time"

const (
	ActionCreated       = "Created"
	ActionUpdated       = "Updated"
	ActionStatusChanged = "StatusChanged"
	ActionDeleted       = "Deleted"
)

type ActivityType string

const (
	ActivityTask    ActivityType = "Task"
	ActivityProject ActivityType = "Project"
	ActivityUser    ActivityType = "User"
	ActivityOther   ActivityType = "Other"
)

type ActivityLog struct {
	ID          string       `db:"id"`
	Action      string       `db:"action"`
	Description *string      `db:"description"`
	Type        ActivityType `db:"type"`
	CreatedAt   time.Time    `db:"created_at"`
	UserID      string       `db:"user_id"`
	TaskID      *string      `db:"task_id"`
	ProjectID   *string      `db:"project_id"`
}

// ActivityLogDetails is an activity log entry joined with its actor.
type ActivityLogDetails struct {
	ActivityLog
	User UserRef
}
