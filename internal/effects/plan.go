package effects

import (
	"fmt"
	"slices"

	"github.com/adanyl0v/taskflow/internal/access"
	"github.com/adanyl0v/taskflow/internal/models"
)

func PlanProjectCreated(actorID string, p *models.Project) []Effect {
	return []Effect{LogActivity{
		Action:      models.ActionCreated,
		Type:        models.ActivityProject,
		Description: fmt.Sprintf("Project %q was created", p.Name),
		ActorID:     actorID,
		ProjectID:   &p.ID,
	}}
}

func PlanProjectUpdated(actorID string, before, after *models.Project) []Effect {
	log := LogActivity{
		Action:      models.ActionUpdated,
		Type:        models.ActivityProject,
		Description: fmt.Sprintf("Project %q was updated", after.Name),
		ActorID:     actorID,
		ProjectID:   &after.ID,
	}
	if before.Status != after.Status {
		log.Action = models.ActionStatusChanged
		log.Description = fmt.Sprintf("Project %q status changed: %s → %s",
			after.Name, before.Status, after.Status)
	}
	return []Effect{log}
}

// PlanProjectDeleted writes no references to the project, which no longer
// exists when the entry is written.
func PlanProjectDeleted(actorID string, p *models.Project) []Effect {
	return []Effect{LogActivity{
		Action:      models.ActionDeleted,
		Type:        models.ActivityProject,
		Description: fmt.Sprintf("Project %q was deleted", p.Name),
		ActorID:     actorID,
	}}
}

func PlanTaskCreated(actorID string, t *models.TaskDetails) []Effect {
	effects := []Effect{LogActivity{
		Action:      models.ActionCreated,
		Type:        models.ActivityTask,
		Description: fmt.Sprintf("Task %q was created in project %q", t.Title, t.ProjectName),
		ActorID:     actorID,
		TaskID:      &t.ID,
		ProjectID:   &t.ProjectID,
	}}
	for _, id := range t.AssigneeIDs() {
		effects = append(effects, assigned(id, t))
	}
	return effects
}

// PlanTaskUpdated compares the task before and after an update performed in
// the given mode.
//
// Completing a task notifies every assignee and the creator, unless the
// creator is already an assignee or completed the task themselves. Other
// changes notify the current assignees, but only on the full update path.
// Newly added assignees are notified of the assignment in addition to
// anything else, so they may receive two notifications for one update.
func PlanTaskUpdated(actorID string, mode access.TaskUpdate, before, after *models.TaskDetails) []Effect {
	statusChanged := before.Status != after.Status

	log := LogActivity{
		Action:      models.ActionUpdated,
		Type:        models.ActivityTask,
		Description: fmt.Sprintf("Task %q was updated", after.Title),
		ActorID:     actorID,
		TaskID:      &after.ID,
		ProjectID:   &after.ProjectID,
	}
	if statusChanged {
		log.Action = models.ActionStatusChanged
		log.Description = fmt.Sprintf("Task %q status changed: %s → %s",
			after.Title, before.Status, after.Status)
	}
	effects := []Effect{log}

	assignees := after.AssigneeIDs()
	switch {
	case statusChanged && after.Status == models.TaskCompleted:
		for _, id := range completionRecipients(actorID, after) {
			effects = append(effects, Notify{
				RecipientID: id,
				Type:        models.NotificationTaskCompleted,
				Title:       fmt.Sprintf("Task completed: %s", after.Title),
				Message:     fmt.Sprintf("The task %q in project %q has been completed.", after.Title, after.ProjectName),
				TaskID:      &after.ID,
				ProjectID:   &after.ProjectID,
			})
		}
	case mode == access.TaskUpdateFull:
		message := fmt.Sprintf("The task %q in project %q has been updated.", after.Title, after.ProjectName)
		if statusChanged {
			message = fmt.Sprintf("The status of task %q changed from %s to %s.", after.Title, before.Status, after.Status)
		}
		for _, id := range assignees {
			effects = append(effects, Notify{
				RecipientID: id,
				Type:        models.NotificationTaskUpdated,
				Title:       fmt.Sprintf("Task updated: %s", after.Title),
				Message:     message,
				TaskID:      &after.ID,
				ProjectID:   &after.ProjectID,
			})
		}
	}

	previous := before.AssigneeIDs()
	for _, id := range assignees {
		if !slices.Contains(previous, id) {
			effects = append(effects, assigned(id, after))
		}
	}
	return effects
}

// PlanTaskDeleted keeps the project reference; the task itself is gone by
// the time the entry is written.
func PlanTaskDeleted(actorID string, t *models.TaskDetails) []Effect {
	return []Effect{LogActivity{
		Action:      models.ActionDeleted,
		Type:        models.ActivityTask,
		Description: fmt.Sprintf("Task %q was deleted from project %q", t.Title, t.ProjectName),
		ActorID:     actorID,
		ProjectID:   &t.ProjectID,
	}}
}

func assigned(recipientID string, t *models.TaskDetails) Notify {
	return Notify{
		RecipientID: recipientID,
		Type:        models.NotificationTaskAssigned,
		Title:       fmt.Sprintf("New task assigned: %s", t.Title),
		Message:     fmt.Sprintf("You have been assigned to the task %q in project %q.", t.Title, t.ProjectName),
		TaskID:      &t.ID,
		ProjectID:   &t.ProjectID,
	}
}

func completionRecipients(actorID string, t *models.TaskDetails) []string {
	recipients := t.AssigneeIDs()
	creator := t.CreatedByUserID
	if creator != actorID && !slices.Contains(recipients, creator) {
		recipients = append(recipients, creator)
	}
	return recipients
}
