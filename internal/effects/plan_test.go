package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/taskflow/internal/access"
	"github.com/adanyl0v/taskflow/internal/models"
)

func task(status models.TaskStatus, creator string, assignees ...string) *models.TaskDetails {
	t := &models.TaskDetails{
		Task: models.Task{
			ID:              "task",
			Title:           "Write report",
			Status:          status,
			ProjectID:       "project",
			CreatedByUserID: creator,
		},
		ProjectName: "Apollo",
	}
	for _, id := range assignees {
		t.Assignees = append(t.Assignees, models.UserRef{ID: id})
	}
	return t
}

func notifications(effects []Effect) map[string][]models.NotificationType {
	out := make(map[string][]models.NotificationType)
	for _, e := range effects {
		if n, ok := e.(Notify); ok {
			out[n.RecipientID] = append(out[n.RecipientID], n.Type)
		}
	}
	return out
}

func firstLog(t *testing.T, effects []Effect) LogActivity {
	t.Helper()
	require.NotEmpty(t, effects)
	log, ok := effects[0].(LogActivity)
	require.True(t, ok, "activity log must come first")
	return log
}

func TestPlanProjectUpdated(t *testing.T) {
	before := &models.Project{ID: "p", Name: "Apollo", Status: models.ProjectNotStarted}
	after := *before
	after.Status = models.ProjectInProgress

	log := firstLog(t, PlanProjectUpdated("m", before, &after))
	assert.Equal(t, models.ActionStatusChanged, log.Action)
	assert.Contains(t, log.Description, "NotStarted → InProgress")

	log = firstLog(t, PlanProjectUpdated("m", before, before))
	assert.Equal(t, models.ActionUpdated, log.Action)
}

func TestPlanProjectDeleted_DropsReferences(t *testing.T) {
	effects := PlanProjectDeleted("admin", &models.Project{ID: "p", Name: "Apollo"})
	require.Len(t, effects, 1)
	log := firstLog(t, effects)
	assert.Nil(t, log.ProjectID)
	assert.Nil(t, log.TaskID)
	assert.Contains(t, log.Description, "Apollo")
}

func TestPlanTaskCreated_NotifiesAssignees(t *testing.T) {
	effects := PlanTaskCreated("m", task(models.TaskToDo, "m", "a", "b"))
	log := firstLog(t, effects)
	assert.Equal(t, models.ActionCreated, log.Action)
	assert.Equal(t, map[string][]models.NotificationType{
		"a": {models.NotificationTaskAssigned},
		"b": {models.NotificationTaskAssigned},
	}, notifications(effects))
}

func TestPlanTaskUpdated_MemberCompletes(t *testing.T) {
	before := task(models.TaskInReview, "manager", "m1", "m2")
	after := task(models.TaskCompleted, "manager", "m1", "m2")

	effects := PlanTaskUpdated("m1", access.TaskUpdateStatusOnly, before, after)
	assert.Equal(t, models.ActionStatusChanged, firstLog(t, effects).Action)
	assert.Equal(t, map[string][]models.NotificationType{
		"m1":      {models.NotificationTaskCompleted},
		"m2":      {models.NotificationTaskCompleted},
		"manager": {models.NotificationTaskCompleted},
	}, notifications(effects))
}

func TestPlanTaskUpdated_CompletionRecipientsDeduplicated(t *testing.T) {
	// creator is an assignee
	effects := PlanTaskUpdated("x", access.TaskUpdateFull,
		task(models.TaskToDo, "m1", "m1"), task(models.TaskCompleted, "m1", "m1"))
	assert.Equal(t, map[string][]models.NotificationType{
		"m1": {models.NotificationTaskCompleted},
	}, notifications(effects))

	// creator completed the task
	effects = PlanTaskUpdated("manager", access.TaskUpdateFull,
		task(models.TaskToDo, "manager", "m1"), task(models.TaskCompleted, "manager", "m1"))
	assert.Equal(t, map[string][]models.NotificationType{
		"m1": {models.NotificationTaskCompleted},
	}, notifications(effects))
}

func TestPlanTaskUpdated_MemberNonCompletingChangeIsSilent(t *testing.T) {
	effects := PlanTaskUpdated("m1", access.TaskUpdateStatusOnly,
		task(models.TaskToDo, "manager", "m1"), task(models.TaskInProgress, "manager", "m1"))
	require.Len(t, effects, 1)
	assert.Equal(t, models.ActionStatusChanged, firstLog(t, effects).Action)

	effects = PlanTaskUpdated("m1", access.TaskUpdateStatusOnly,
		task(models.TaskToDo, "manager", "m1"), task(models.TaskToDo, "manager", "m1"))
	require.Len(t, effects, 1)
	assert.Equal(t, models.ActionUpdated, firstLog(t, effects).Action)
}

func TestPlanTaskUpdated_PrivilegedNotifiesCurrentAssignees(t *testing.T) {
	before := task(models.TaskToDo, "manager", "m1", "m2")
	after := task(models.TaskInProgress, "manager", "m2", "m3")

	effects := PlanTaskUpdated("manager", access.TaskUpdateFull, before, after)
	log := firstLog(t, effects)
	assert.Equal(t, models.ActionStatusChanged, log.Action)
	assert.Contains(t, log.Description, "ToDo → InProgress")
	assert.Equal(t, map[string][]models.NotificationType{
		"m2": {models.NotificationTaskUpdated},
		"m3": {models.NotificationTaskUpdated, models.NotificationTaskAssigned},
	}, notifications(effects))
}

func TestPlanTaskUpdated_NewAssigneeOfCompletedTaskGetsBoth(t *testing.T) {
	before := task(models.TaskInReview, "manager", "m1")
	after := task(models.TaskCompleted, "manager", "m1", "m2")

	effects := PlanTaskUpdated("manager", access.TaskUpdateFull, before, after)
	assert.Equal(t, []models.NotificationType{
		models.NotificationTaskCompleted,
		models.NotificationTaskAssigned,
	}, notifications(effects)["m2"])
}

func TestPlanTaskDeleted_KeepsProjectOnly(t *testing.T) {
	effects := PlanTaskDeleted("admin", task(models.TaskToDo, "manager", "m1"))
	require.Len(t, effects, 1)
	log := firstLog(t, effects)
	assert.Nil(t, log.TaskID)
	require.NotNil(t, log.ProjectID)
	assert.Equal(t, "project", *log.ProjectID)
}
