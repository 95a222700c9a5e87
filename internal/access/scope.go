package access

import (
	"slices"
	"time"

	"github.com/adanyl0v/taskflow/internal/models"
)

// ProjectScope restricts projects to those created by UserID or containing
// a task assigned to UserID. An unrestricted scope admits every project.
type ProjectScope struct {
	Restricted bool
	UserID     string
}

// Projects is unrestricted for privileged callers and limited to the
// caller's own projects otherwise.
func Projects(c Caller) ProjectScope {
	if c.Privileged() {
		return ProjectScope{}
	}
	return ProjectScope{Restricted: true, UserID: c.UserID}
}

// Includes evaluates the scope for a project given the ids of the projects
// in which the scoped user holds at least one assignment.
func (s ProjectScope) Includes(p *models.Project, assignedProjectIDs []string) bool {
	if !s.Restricted {
		return true
	}
	return p.CreatedByUserID == s.UserID || slices.Contains(assignedProjectIDs, p.ID)
}

// TaskScope restricts tasks to those assigned to UserID.
type TaskScope struct {
	Restricted bool
	UserID     string
}

// Tasks is unrestricted for privileged callers and limited to the
// caller's assignments otherwise.
func Tasks(c Caller) TaskScope {
	if c.Privileged() {
		return TaskScope{}
	}
	return TaskScope{Restricted: true, UserID: c.UserID}
}

// Includes reports whether a task with the given assignees is visible.
func (s TaskScope) Includes(assigneeIDs []string) bool {
	return !s.Restricted || slices.Contains(assigneeIDs, s.UserID)
}

// ActivityScope restricts the activity feed to entries about tasks assigned
// to UserID and entries authored by UserID.
type ActivityScope struct {
	Restricted bool
	UserID     string
}

// Activities is unrestricted for privileged callers.
func Activities(c Caller) ActivityScope {
	if c.Privileged() {
		return ActivityScope{}
	}
	return ActivityScope{Restricted: true, UserID: c.UserID}
}

// Includes evaluates the scope for a log entry given the ids of the tasks
// assigned to the scoped user.
func (s ActivityScope) Includes(l *models.ActivityLog, assignedTaskIDs []string) bool {
	if !s.Restricted || l.UserID == s.UserID {
		return true
	}
	return l.TaskID != nil && slices.Contains(assignedTaskIDs, *l.TaskID)
}

// NotificationScope always restricts to the caller's own notifications,
// whatever their role.
type NotificationScope struct {
	UserID string
}

// Notifications scopes to the caller.
func Notifications(c Caller) NotificationScope {
	return NotificationScope{UserID: c.UserID}
}

// Includes reports whether n belongs to the scoped user.
func (s NotificationScope) Includes(n *models.Notification) bool {
	return n.UserID == s.UserID
}

// Window is an inclusive time range; a nil bound is open.
type Window struct {
	From *time.Time
	To   *time.Time
}

// Includes reports whether the task's [start, due ?? start] interval
// intersects the window.
func (w Window) Includes(t *models.Task) bool {
	if w.From != nil && t.Until().Before(*w.From) {
		return false
	}
	if w.To != nil && t.StartDate.After(*w.To) {
		return false
	}
	return true
}

// CalendarScope is a task scope narrowed to a time window.
type CalendarScope struct {
	Tasks  TaskScope
	Window Window
}

// Calendar narrows the caller's task scope to w.
func Calendar(c Caller, w Window) CalendarScope {
	return CalendarScope{Tasks: Tasks(c), Window: w}
}

// Includes reports whether the task is both visible and inside the window.
func (s CalendarScope) Includes(t *models.Task, assigneeIDs []string) bool {
	return s.Tasks.Includes(assigneeIDs) && s.Window.Includes(t)
}
