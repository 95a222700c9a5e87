package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/taskflow/internal/access"
	"github.com/adanyl0v/taskflow/internal/models"
	"github.com/adanyl0v/taskflow/internal/services"
	"github.com/adanyl0v/taskflow/internal/store/storetest"
)

func TestCreateTask_LogsAndNotifiesAssignees(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := storetest.CreateUser(t, env.db, "Mona", models.RoleManager)
	u1 := storetest.CreateUser(t, env.db, "Una", models.RoleMember)
	u2 := storetest.CreateUser(t, env.db, "Uwe", models.RoleMember)
	project := storetest.CreateProject(t, env.db, "Launch", manager.ID)

	before, err := env.notifications.UnreadCount(ctx, callerOf(u2))
	require.NoError(t, err)

	task, err := env.tasks.CreateTask(ctx, callerOf(manager), services.TaskParams{
		ProjectID:   project.ID,
		Title:       "Write docs",
		StartDate:   date(2024, 3, 1),
		Status:      models.TaskCompleted,
		AssigneeIDs: []string{u1.ID, u2.ID, u1.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, models.TaskToDo, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, "Launch", task.ProjectName)
	assert.ElementsMatch(t, []string{u1.ID, u2.ID}, task.AssigneeIDs())

	logs, err := env.activity.ListTaskActivity(ctx, callerOf(manager), task.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActionCreated, logs[0].Action)
	assert.Equal(t, models.ActivityTask, logs[0].Type)

	assert.Equal(t, []models.NotificationType{models.NotificationTaskAssigned}, notificationTypes(t, env, u1))
	assert.Equal(t, []models.NotificationType{models.NotificationTaskAssigned}, notificationTypes(t, env, u2))

	after, err := env.notifications.UnreadCount(ctx, callerOf(u2))
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	assert.Len(t, env.sender.sent, 2)
}

func TestCreateTask_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := storetest.CreateUser(t, env.db, "Mona", models.RoleManager)
	member := storetest.CreateUser(t, env.db, "Mia", models.RoleMember)
	project := storetest.CreateProject(t, env.db, "Launch", manager.ID)

	params := services.TaskParams{
		ProjectID: project.ID,
		Title:     "Write docs",
		StartDate: date(2024, 3, 1),
	}

	_, err := env.tasks.CreateTask(ctx, callerOf(member), params)
	assert.ErrorIs(t, err, services.ErrForbidden)

	missing := params
	missing.ProjectID = "missing"
	_, err = env.tasks.CreateTask(ctx, callerOf(manager), missing)
	assert.ErrorIs(t, err, services.ErrProjectNotFound)

	unknown := params
	unknown.AssigneeIDs = []string{member.ID, "ghost"}
	_, err = env.tasks.CreateTask(ctx, callerOf(manager), unknown)
	assert.ErrorIs(t, err, services.ErrUnknownAssignee)
	assert.ErrorIs(t, err, services.ErrValidation)

	badPriority := params
	badPriority.Priority = "Urgent"
	_, err = env.tasks.CreateTask(ctx, callerOf(manager), badPriority)
	assert.ErrorIs(t, err, services.ErrInvalidPriority)

	backwards := params
	backwards.DueDate = ptr(date(2024, 2, 1))
	_, err = env.tasks.CreateTask(ctx, callerOf(manager), backwards)
	assert.ErrorIs(t, err, services.ErrInvalidDateRange)

	tasks, err := env.tasks.ListTasks(ctx, callerOf(manager), "")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestUpdateTask_MemberChangesOnlyStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := storetest.CreateUser(t, env.db, "Mona", models.RoleManager)
	u1 := storetest.CreateUser(t, env.db, "Una", models.RoleMember)
	u2 := storetest.CreateUser(t, env.db, "Uwe", models.RoleMember)
	project := storetest.CreateProject(t, env.db, "Launch", manager.ID)
	created := storetest.CreateTask(t, env.db, project.ID, "Write docs", manager.ID, date(2024, 3, 1), nil, u1.ID, u2.ID)

	task, err := env.tasks.UpdateTask(ctx, callerOf(u1), created.ID, services.TaskParams{
		Title:       "Forged title",
		StartDate:   date(2030, 1, 1),
		Status:      models.TaskCompleted,
		Priority:    models.PriorityCritical,
		AssigneeIDs: []string{u1.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, models.TaskCompleted, task.Status)
	assert.Equal(t, "Write docs", task.Title)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.True(t, created.StartDate.Equal(task.StartDate))
	assert.ElementsMatch(t, []string{u1.ID, u2.ID}, task.AssigneeIDs())

	completed := []models.NotificationType{models.NotificationTaskCompleted}
	assert.Equal(t, completed, notificationTypes(t, env, u1))
	assert.Equal(t, completed, notificationTypes(t, env, u2))
	assert.Equal(t, completed, notificationTypes(t, env, manager))

	logs, err := env.activity.ListTaskActivity(ctx, callerOf(u1), created.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActionStatusChanged, logs[0].Action)
	assert.Equal(t, u1.ID, logs[0].UserID)
}

func TestUpdateTask_MemberNonCompletingChangeIsSilent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := storetest.CreateUser(t, env.db, "Mona", models.RoleManager)
	u1 := storetest.CreateUser(t, env.db, "Una", models.RoleMember)
	project := storetest.CreateProject(t, env.db, "Launch", manager.ID)
	created := storetest.CreateTask(t, env.db, project.ID, "Write docs", manager.ID, date(2024, 3, 1), nil, u1.ID)

	_, err := env.tasks.UpdateTask(ctx, callerOf(u1), created.ID, services.TaskParams{Status: models.TaskInProgress})
	require.NoError(t, err)

	assert.Empty(t, notificationTypes(t, env, u1))
	assert.Empty(t, notificationTypes(t, env, manager))
}

func TestUpdateTask_UnassignedMemberIsForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := storetest.CreateUser(t, env.db, "Mona", models.RoleManager)
	u1 := storetest.CreateUser(t, env.db, "Una", models.RoleMember)
	outsider := storetest.CreateUser(t, env.db, "Otto", models.RoleMember)
	project := storetest.CreateProject(t, env.db, "Launch", manager.ID)
	created := storetest.CreateTask(t, env.db, project.ID, "Write docs", manager.ID, date(2024, 3, 1), nil, u1.ID)

	_, err := env.tasks.UpdateTask(ctx, callerOf(outsider), created.ID, services.TaskParams{Status: models.TaskCompleted})
	assert.ErrorIs(t, err, services.ErrForbidden)
	_, err = env.tasks.UpdateTask(ctx, callerOf(outsider), created.ID, services.TaskParams{Title: "forged"})
	assert.ErrorIs(t, err, services.ErrForbidden)

	task, err := env.tasks.GetTask(ctx, callerOf(manager), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskToDo, task.Status)
	assert.Equal(t, "Write docs", task.Title)
	assert.Nil(t, task.UpdatedAt)

	_, err = env.tasks.UpdateTask(ctx, callerOf(manager), created.ID, services.TaskParams{Status: "Done"})
	assert.ErrorIs(t, err, services.ErrInvalidStatus)
}

func TestUpdateTask_ActivityLogFailureRollsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := storetest.CreateUser(t, env.db, "Mona", models.RoleManager)
	u1 := storetest.CreateUser(t, env.db, "Una", models.RoleMember)
	project := storetest.CreateProject(t, env.db, "Launch", manager.ID)
	created := storetest.CreateTask(t, env.db, project.ID, "Write docs", manager.ID, date(2024, 3, 1), nil, u1.ID)

	// The log row references a user that does not exist.
	ghost := access.Caller{UserID: uuid.NewString(), Roles: models.NewRoleSet(models.RoleAdmin)}
	_, err := env.tasks.UpdateTask(ctx, ghost, created.ID, services.TaskParams{
		Title:       "Rewritten",
		StartDate:   created.StartDate,
		Status:      models.TaskCompleted,
		Priority:    created.Priority,
		AssigneeIDs: []string{u1.ID},
	})
	require.Error(t, err)

	task, err := env.tasks.GetTask(ctx, callerOf(manager), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write docs", task.Title)
	assert.Equal(t, models.TaskToDo, task.Status)
	assert.Nil(t, task.UpdatedAt)
	assert.Empty(t, env.sender.sent)
}

func TestUpdateTask_PrivilegedReplacesTaskAndAssignees(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := storetest.CreateUser(t, env.db, "Mona", models.RoleManager)
	u1 := storetest.CreateUser(t, env.db, "Una", models.RoleMember)
	u2 := storetest.CreateUser(t, env.db, "Uwe", models.RoleMember)
	project := storetest.CreateProject(t, env.db, "Launch", manager.ID)
	created := storetest.CreateTask(t, env.db, project.ID, "Write docs", manager.ID, date(2024, 3, 1), nil, u1.ID)

	task, err := env.tasks.UpdateTask(ctx, callerOf(manager), created.ID, services.TaskParams{
		Title:       "Write better docs",
		StartDate:   date(2024, 3, 2),
		DueDate:     ptr(date(2024, 3, 9)),
		Status:      models.TaskInReview,
		Priority:    models.PriorityHigh,
		AssigneeIDs: []string{u2.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Write better docs", task.Title)
	assert.Equal(t, models.TaskInReview, task.Status)
	assert.Equal(t, models.PriorityHigh, task.Priority)
	assert.Equal(t, []string{u2.ID}, task.AssigneeIDs())

	assert.Empty(t, notificationTypes(t, env, u1))
	assert.Equal(t, []models.NotificationType{
		models.NotificationTaskUpdated,
		models.NotificationTaskAssigned,
	}, notificationTypes(t, env, u2))

	_, err = env.tasks.GetTask(ctx, callerOf(u1), created.ID)
	assert.ErrorIs(t, err, services.ErrTaskNotFound)
}

func TestUpdateTask_CompletedByCreatorNotifiesAssigneesOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := storetest.CreateUser(t, env.db, "Mona", models.RoleManager)
	u1 := storetest.CreateUser(t, env.db, "Una", models.RoleMember)
	project := storetest.CreateProject(t, env.db, "Launch", manager.ID)
	created := storetest.CreateTask(t, env.db, project.ID, "Write docs", manager.ID, date(2024, 3, 1), nil, u1.ID, manager.ID)

	_, err := env.tasks.UpdateTask(ctx, callerOf(manager), created.ID, services.TaskParams{
		Title:       created.Title,
		StartDate:   created.StartDate,
		Status:      models.TaskCompleted,
		AssigneeIDs: []string{u1.ID, manager.ID},
	})
	require.NoError(t, err)

	completed := []models.NotificationType{models.NotificationTaskCompleted}
	assert.Equal(t, completed, notificationTypes(t, env, u1))
	assert.Equal(t, completed, notificationTypes(t, env, manager))
}

func TestListCalendarTasks_WindowOverlap(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := storetest.CreateUser(t, env.db, "Mona", models.RoleManager)
	project := storetest.CreateProject(t, env.db, "Launch", manager.ID)
	overlapping := storetest.CreateTask(t, env.db, project.ID, "Overlapping", manager.ID,
		date(2024, 2, 25), ptr(date(2024, 3, 2)))
	storetest.CreateTask(t, env.db, project.ID, "April", manager.ID, date(2024, 4, 1), nil)

	from, to := date(2024, 3, 1), date(2024, 3, 31)
	tasks, err := env.tasks.ListCalendarTasks(ctx, callerOf(manager), access.Window{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, overlapping.ID, tasks[0].ID)

	_, err = env.tasks.ListCalendarTasks(ctx, callerOf(manager), access.Window{From: &to, To: &from})
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestDeleteTask_AdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := storetest.CreateUser(t, env.db, "Ada", models.RoleAdmin)
	manager := storetest.CreateUser(t, env.db, "Mona", models.RoleManager)
	project := storetest.CreateProject(t, env.db, "Launch", manager.ID)
	created := storetest.CreateTask(t, env.db, project.ID, "Write docs", manager.ID, date(2024, 3, 1), nil)

	assert.ErrorIs(t, env.tasks.DeleteTask(ctx, callerOf(manager), created.ID), services.ErrForbidden)
	require.NoError(t, env.tasks.DeleteTask(ctx, callerOf(admin), created.ID))
	assert.ErrorIs(t, env.tasks.DeleteTask(ctx, callerOf(admin), created.ID), services.ErrTaskNotFound)

	logs, err := env.activity.ListProjectActivity(ctx, callerOf(admin), project.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActionDeleted, logs[0].Action)
	assert.Nil(t, logs[0].TaskID)
}
