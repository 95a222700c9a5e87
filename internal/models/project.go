package models

import "time"

type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "NotStarted"
	ProjectInProgress ProjectStatus = "InProgress"
	ProjectCompleted  ProjectStatus = "Completed"
	ProjectOnHold     ProjectStatus = "OnHold"
	ProjectCancelled  ProjectStatus = "Cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectNotStarted, ProjectInProgress, ProjectCompleted, ProjectOnHold, ProjectCancelled:
		return true
	}
	return false
}

type Project struct {
	ID              string        `db:"id"`
	Name            string        `db:"name"`
	Description     *string       `db:"description"`
	StartDate       time.Time     `db:"start_date"`
	EndDate         *time.Time    `db:"end_date"`
	Status          ProjectStatus `db:"status"`
	CreatedByUserID string        `db:"created_by_user_id"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       *time.Time    `db:"updated_at"`
}

// ProjectDetails is a project joined with its creator.
type ProjectDetails struct {
	Project
	CreatedBy UserRef
}
