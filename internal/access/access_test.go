package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/taskflow/internal/models"
)

var (
	admin   = Caller{UserID: "admin", Roles: models.NewRoleSet(models.RoleAdmin)}
	manager = Caller{UserID: "manager", Roles: models.NewRoleSet(models.RoleManager)}
	member  = Caller{UserID: "member", Roles: models.NewRoleSet(models.RoleMember)}
)

func TestCaller_MostPrivilegedRoleWins(t *testing.T) {
	c := Caller{UserID: "u", Roles: models.NewRoleSet(models.RoleMember, models.RoleAdmin)}
	assert.Equal(t, models.RoleAdmin, c.Role())
	assert.True(t, c.Privileged())
	assert.NoError(t, CanDeleteTask(c))

	c = Caller{UserID: "u", Roles: models.NewRoleSet(models.RoleMember, models.RoleManager)}
	assert.Equal(t, models.RoleManager, c.Role())
	assert.ErrorIs(t, CanDeleteTask(c), ErrForbidden)
}

func TestCaller_NoRolesIsNotPrivileged(t *testing.T) {
	c := Caller{UserID: "u"}
	assert.False(t, c.Privileged())
	assert.True(t, Tasks(c).Restricted)
	assert.ErrorIs(t, CanCreateProject(c), ErrForbidden)
}

func TestProjects_MemberSeesCreatedOrAssigned(t *testing.T) {
	own := &models.Project{ID: "p1", CreatedByUserID: "member"}
	assigned := &models.Project{ID: "p2", CreatedByUserID: "manager"}
	other := &models.Project{ID: "p3", CreatedByUserID: "manager"}
	assignedProjects := []string{"p2"}

	scope := Projects(member)
	assert.True(t, scope.Includes(own, assignedProjects))
	assert.True(t, scope.Includes(assigned, assignedProjects))
	assert.False(t, scope.Includes(other, assignedProjects))

	for _, c := range []Caller{admin, manager} {
		scope = Projects(c)
		assert.False(t, scope.Restricted)
		assert.True(t, scope.Includes(other, nil))
	}
}

func TestTasks_MemberSeesOnlyAssigned(t *testing.T) {
	scope := Tasks(member)
	assert.True(t, scope.Includes([]string{"x", "member"}))
	assert.False(t, scope.Includes([]string{"x"}))
	assert.False(t, scope.Includes(nil))

	assert.True(t, Tasks(manager).Includes(nil))
}

func TestActivities_MemberSeesAssignedTasksAndOwnActions(t *testing.T) {
	taskID := "t1"
	otherTaskID := "t2"
	assigned := []string{taskID}

	scope := Activities(member)
	assert.True(t, scope.Includes(&models.ActivityLog{UserID: "manager", TaskID: &taskID}, assigned))
	assert.True(t, scope.Includes(&models.ActivityLog{UserID: "member"}, assigned))
	assert.False(t, scope.Includes(&models.ActivityLog{UserID: "manager", TaskID: &otherTaskID}, assigned))
	assert.False(t, scope.Includes(&models.ActivityLog{UserID: "manager"}, assigned))

	assert.True(t, Activities(admin).Includes(&models.ActivityLog{UserID: "manager"}, nil))
}

func TestNotifications_AlwaysOwnRows(t *testing.T) {
	for _, c := range []Caller{admin, manager, member} {
		scope := Notifications(c)
		assert.True(t, scope.Includes(&models.Notification{UserID: c.UserID}))
		assert.False(t, scope.Includes(&models.Notification{UserID: "someone-else"}))
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWindow_IntervalOverlap(t *testing.T) {
	from, to := date(2024, 3, 1), date(2024, 3, 31)
	w := Window{From: &from, To: &to}

	due := date(2024, 3, 2)
	overlapping := &models.Task{StartDate: date(2024, 2, 25), DueDate: &due}
	after := &models.Task{StartDate: date(2024, 4, 1)}
	beforeDue := date(2024, 2, 29)
	before := &models.Task{StartDate: date(2024, 2, 1), DueDate: &beforeDue}
	onEdge := &models.Task{StartDate: to}
	spanningDue := date(2024, 5, 1)
	spanning := &models.Task{StartDate: date(2024, 1, 1), DueDate: &spanningDue}

	assert.True(t, w.Includes(overlapping))
	assert.False(t, w.Includes(after))
	assert.False(t, w.Includes(before))
	assert.True(t, w.Includes(onEdge))
	assert.True(t, w.Includes(spanning))

	assert.True(t, Window{}.Includes(after))
}

func TestCalendar_CombinesScopeAndWindow(t *testing.T) {
	from, to := date(2024, 3, 1), date(2024, 3, 31)
	scope := Calendar(member, Window{From: &from, To: &to})
	task := &models.Task{StartDate: date(2024, 3, 10)}

	assert.True(t, scope.Includes(task, []string{"member"}))
	assert.False(t, scope.Includes(task, []string{"other"}))
}

func TestProjectVerdicts(t *testing.T) {
	own := &models.Project{CreatedByUserID: "manager"}
	foreign := &models.Project{CreatedByUserID: "someone"}

	assert.NoError(t, CanCreateProject(admin))
	assert.NoError(t, CanCreateProject(manager))
	assert.ErrorIs(t, CanCreateProject(member), ErrForbidden)

	assert.NoError(t, CanUpdateProject(admin, foreign))
	assert.NoError(t, CanUpdateProject(manager, own))
	assert.ErrorIs(t, CanUpdateProject(manager, foreign), ErrForbidden)
	assert.ErrorIs(t, CanUpdateProject(member, &models.Project{CreatedByUserID: "member"}), ErrForbidden)

	assert.NoError(t, CanDeleteProject(admin))
	assert.ErrorIs(t, CanDeleteProject(manager), ErrForbidden)
}

func TestTaskVerdicts(t *testing.T) {
	assert.NoError(t, CanCreateTask(manager))
	assert.ErrorIs(t, CanCreateTask(member), ErrForbidden)

	mode, err := CanUpdateTask(manager, nil)
	require.NoError(t, err)
	assert.Equal(t, TaskUpdateFull, mode)

	mode, err = CanUpdateTask(member, []string{"member"})
	require.NoError(t, err)
	assert.Equal(t, TaskUpdateStatusOnly, mode)

	_, err = CanUpdateTask(member, []string{"other"})
	assert.ErrorIs(t, err, ErrForbidden)

	assert.NoError(t, CanDeleteTask(admin))
	assert.ErrorIs(t, CanDeleteTask(manager), ErrForbidden)
	assert.ErrorIs(t, CanDeleteTask(member), ErrForbidden)
}

func TestCanChangeRoles_AdminOnly(t *testing.T) {
	assert.NoError(t, CanChangeRoles(admin))
	assert.ErrorIs(t, CanChangeRoles(manager), ErrForbidden)
	assert.ErrorIs(t, CanChangeRoles(member), ErrForbidden)
}
