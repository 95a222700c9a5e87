package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/taskflow/internal/models"
	"github.com/adanyl0v/taskflow/internal/services"
	"github.com/adanyl0v/taskflow/internal/store/storetest"
)

func TestGetStats_ScopedToMember(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := storetest.CreateUser(t, env.db, "Mona", models.RoleManager)
	member := storetest.CreateUser(t, env.db, "Mia", models.RoleMember)

	project, err := env.projects.CreateProject(ctx, callerOf(manager), services.ProjectParams{
		Name:      "Launch",
		StartDate: time.Now(),
	})
	require.NoError(t, err)
	storetest.CreateProject(t, env.db, "Hidden", manager.ID)

	soon := time.Now().Add(48 * time.Hour)
	mine, err := env.tasks.CreateTask(ctx, callerOf(manager), services.TaskParams{
		ProjectID:   project.ID,
		Title:       "Mine",
		StartDate:   time.Now(),
		DueDate:     &soon,
		AssigneeIDs: []string{member.ID},
	})
	require.NoError(t, err)
	_, err = env.tasks.CreateTask(ctx, callerOf(manager), services.TaskParams{
		ProjectID: project.ID,
		Title:     "Not mine",
		StartDate: time.Now(),
		DueDate:   &soon,
	})
	require.NoError(t, err)

	stats, err := env.dashboard.GetStats(ctx, callerOf(member))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalProjects)
	assert.Equal(t, 1, stats.TotalTasks)
	assert.Zero(t, stats.CompletedTasks)
	assert.Equal(t, map[models.TaskStatus]int{models.TaskToDo: 1}, stats.TaskStatusStats)
	require.Len(t, stats.UpcomingTasks, 1)
	assert.Equal(t, mine.ID, stats.UpcomingTasks[0].ID)
	require.Len(t, stats.RecentActivities, 1)
	assert.Equal(t, models.ActionCreated, stats.RecentActivities[0].Action)
	assert.Equal(t, mine.ID, *stats.RecentActivities[0].TaskID)

	stats, err = env.dashboard.GetStats(ctx, callerOf(manager))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalProjects)
	assert.Equal(t, 2, stats.TotalTasks)
	assert.Len(t, stats.UpcomingTasks, 2)
	assert.Len(t, stats.RecentActivities, 3)
	assert.Equal(t, map[models.ProjectStatus]int{models.ProjectNotStarted: 2}, stats.ProjectStatusStats)
}
