package access

import (
	"fmt"
	"slices"

	"github.com/adanyl0v/taskflow/internal/models"
)

func forbidden(action string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, action)
}

// CanCreateProject allows admins and managers.
func CanCreateProject(c Caller) error {
	if !c.Privileged() {
		return forbidden("create project")
	}
	return nil
}

// CanUpdateProject lets admins update any project and managers only the
// projects they created.
func CanUpdateProject(c Caller, p *models.Project) error {
	switch c.Role() {
	case models.RoleAdmin:
		return nil
	case models.RoleManager:
		if p.CreatedByUserID == c.UserID {
			return nil
		}
		return forbidden("update project created by another user")
	default:
		return forbidden("update project")
	}
}

// CanDeleteProject allows admins only.
func CanDeleteProject(c Caller) error {
	if !c.IsAdmin() {
		return forbidden("delete project")
	}
	return nil
}

// CanCreateTask allows admins and managers.
func CanCreateTask(c Caller) error {
	if !c.Privileged() {
		return forbidden("create task")
	}
	return nil
}

// TaskUpdate is the kind of task update a caller is allowed to perform.
type TaskUpdate int

const (
	// TaskUpdateFull replaces every field and the assignee set.
	TaskUpdateFull TaskUpdate = iota + 1
	// TaskUpdateStatusOnly changes the status and ignores everything else.
	TaskUpdateStatusOnly
)

func (u TaskUpdate) String() string {
	switch u {
	case TaskUpdateFull:
		return "full"
	case TaskUpdateStatusOnly:
		return "status-only"
	default:
		return "none"
	}
}

// CanUpdateTask resolves the update mode for a task with the given
// assignees.
func CanUpdateTask(c Caller, assigneeIDs []string) (TaskUpdate, error) {
	if c.Privileged() {
		return TaskUpdateFull, nil
	}
	if slices.Contains(assigneeIDs, c.UserID) {
		return TaskUpdateStatusOnly, nil
	}
	return 0, forbidden("update task not assigned to caller")
}

// CanDeleteTask allows admins only.
func CanDeleteTask(c Caller) error {
	if !c.IsAdmin() {
		return forbidden("delete task")
	}
	return nil
}

// CanChangeRoles allows admins only.
func CanChangeRoles(c Caller) error {
	if !c.IsAdmin() {
		return forbidden("change user roles")
	}
	return nil
}

// CanListUsersWithRoles allows admins only.
func CanListUsersWithRoles(c Caller) error {
	if !c.IsAdmin() {
		return forbidden("list users with roles")
	}
	return nil
}
