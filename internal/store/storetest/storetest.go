// Package storetest provides database fixtures for tests.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/taskflow/internal/models"
	"github.com/adanyl0v/taskflow/internal/store"
)

// NewTestDB creates a migrated in-memory database that is closed when the
// test completes.
func NewTestDB(t *testing.T) *store.DB {
	t.Helper()

	db, err := store.OpenSQLite(":memory:")
	require.NoError(t, err, "opening test db")

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("closing test db: %v", err)
		}
	})

	require.NoError(t, db.Migrate(context.Background()), "migrating test db")
	return db
}

func newID(t *testing.T) string {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)
	return id.String()
}

// CreateUser inserts a user holding the given roles.
func CreateUser(t *testing.T, repo store.Repository, firstName string, roles ...models.Role) *models.User {
	t.Helper()

	now := time.Now().UTC()
	user := &models.User{
		ID:        newID(t),
		FirstName: firstName,
		LastName:  "Tester",
		Email:     firstName + "-" + uuid.NewString()[:8] + "@example.com",
		Password:  "not-a-hash",
		CreatedAt: now,
		UpdatedAt: now,
		Roles:     models.NewRoleSet(roles...),
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

// CreateProject inserts a project created by the given user.
func CreateProject(t *testing.T, repo store.Repository, name string, createdBy string) *models.Project {
	t.Helper()

	now := time.Now().UTC()
	project := &models.Project{
		ID:              newID(t),
		Name:            name,
		StartDate:       now,
		Status:          models.ProjectNotStarted,
		CreatedByUserID: createdBy,
		CreatedAt:       now,
	}
	require.NoError(t, repo.CreateProject(context.Background(), project))
	return project
}

// CreateTask inserts a task in the project and assigns it to assignees.
func CreateTask(
	t *testing.T,
	repo store.Repository,
	projectID, title, createdBy string,
	start time.Time,
	due *time.Time,
	assignees ...string,
) *models.Task {
	t.Helper()

	now := time.Now().UTC()
	task := &models.Task{
		ID:              newID(t),
		Title:           title,
		StartDate:       start,
		DueDate:         due,
		Status:          models.TaskToDo,
		Priority:        models.PriorityMedium,
		ProjectID:       projectID,
		CreatedByUserID: createdBy,
		CreatedAt:       now,
	}
	ctx := context.Background()
	require.NoError(t, repo.CreateTask(ctx, task))
	require.NoError(t, repo.SetTaskAssignees(ctx, task.ID, assignees, now))
	return task
}
