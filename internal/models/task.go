package models

import "time"

type TaskStatus string

const (
	TaskToDo       TaskStatus = "ToDo"
	TaskInProgress TaskStatus = "InProgress"
	TaskInReview   TaskStatus = "InReview"
	TaskCompleted  TaskStatus = "Completed"
	TaskCancelled  TaskStatus = "Cancelled"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskToDo, TaskInProgress, TaskInReview, TaskCompleted, TaskCancelled:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow      TaskPriority = "Low"
	PriorityMedium   TaskPriority = "Medium"
	PriorityHigh     TaskPriority = "High"
	PriorityCritical TaskPriority = "Critical"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type Task struct {
	ID              string       `db:"id"`
	Title           string       `db:"title"`
	Description     *string      `db:"description"`
	StartDate       time.Time    `db:"start_date"`
	DueDate         *time.Time   `db:"due_date"`
	Status          TaskStatus   `db:"status"`
	Priority        TaskPriority `db:"priority"`
	ProjectID       string       `db:"project_id"`
	CreatedByUserID string       `db:"created_by_user_id"`
	CreatedAt       time.Time    `db:"created_at"`
	UpdatedAt       *time.Time   `db:"updated_at"`
}

// Until is the last instant the task occupies on a calendar. A task
// without a due date occupies only its start instant.
func (t *Task) Until() time.Time {
	if t.DueDate != nil {
		return *t.DueDate
	}
	return t.StartDate
}

type TaskAssignment struct {
	ID               string    `db:"id"`
	TaskID           string    `db:"task_id"`
	AssignedToUserID string    `db:"assigned_to_user_id"`
	AssignedAt       time.Time `db:"assigned_at"`
}

// TaskDetails is a task joined with its project, creator and assignees.
type TaskDetails struct {
	Task
	ProjectName string
	CreatedBy   UserRef
	Assignees   []UserRef
}

func (d *TaskDetails) AssigneeIDs() []string {
	ids := make([]string, len(d.Assignees))
	for i, a := range d.Assignees {
		ids[i] = a.ID
	}
	return ids
}
