package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskflow/internal/access"
	"github.com/adanyl0v/taskflow/internal/effects"
	"github.com/adanyl0v/taskflow/internal/models"
	"github.com/adanyl0v/taskflow/internal/storage"
	"github.com/adanyl0v/taskflow/internal/store"
)

type taskServiceImpl struct {
	logger     zerolog.Logger
	store      store.Store
	files      storage.Storage
	dispatcher EffectDispatcher
}

func NewTaskService(
	logger zerolog.Logger,
	store store.Store,
	files storage.Storage,
	dispatcher EffectDispatcher,
) TaskService {
	return &taskServiceImpl{
		logger:     logger,
		store:      store,
		files:      files,
		dispatcher: dispatcher,
	}
}

func validateTask(params *TaskParams) error {
	params.Title = strings.TrimSpace(params.Title)
	if params.Title == "" {
		return ErrEmptyTitle
	}
	if params.Priority == "" {
		params.Priority = models.PriorityMedium
	}
	if !params.Priority.Valid() {
		return ErrInvalidPriority
	}
	if !validRange(params.StartDate, params.DueDate) {
		return ErrInvalidDateRange
	}
	params.AssigneeIDs = distinct(params.AssigneeIDs)
	return nil
}

// checkAssignees fails with ErrUnknownAssignee unless every id names an
// existing user.
func checkAssignees(ctx context.Context, repo store.Repository, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	refs, err := repo.GetUserRefs(ctx, ids)
	if err != nil {
		return err
	}
	if len(refs) != len(ids) {
		return ErrUnknownAssignee
	}
	return nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, caller access.Caller, params TaskParams) (*models.TaskDetails, error) {
	if err := access.CanCreateTask(caller); err != nil {
		return nil, err
	}
	if err := validateTask(&params); err != nil {
		return nil, err
	}

	id, err := newID()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to generate task uuid")
		return nil, err
	}
	now := time.Now()
	task := models.Task{
		ID:              id,
		Title:           params.Title,
		Description:     params.Description,
		StartDate:       params.StartDate,
		DueDate:         params.DueDate,
		Status:          models.TaskToDo,
		Priority:        params.Priority,
		ProjectID:       params.ProjectID,
		CreatedByUserID: caller.UserID,
		CreatedAt:       now,
	}

	var (
		details *models.TaskDetails
		pending []effects.Effect
	)
	err = s.store.WithTx(ctx, func(repo store.Repository) error {
		_, err := repo.GetProject(ctx, task.ProjectID, access.ProjectScope{})
		if err != nil {
			return notFoundAs(err, ErrProjectNotFound)
		}
		if err = checkAssignees(ctx, repo, params.AssigneeIDs); err != nil {
			return err
		}
		if err = repo.CreateTask(ctx, &task); err != nil {
			return err
		}
		if err = repo.SetTaskAssignees(ctx, task.ID, params.AssigneeIDs, now); err != nil {
			return err
		}
		details, err = repo.GetTask(ctx, task.ID, access.TaskScope{})
		if err != nil {
			return err
		}
		pending, err = effects.Record(ctx, repo, effects.PlanTaskCreated(caller.UserID, details), now)
		return err
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("project_id", task.ProjectID).
			Str("user_id", caller.UserID).
			Msg("failed to create task")
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, pending)

	s.logger.Info().
		Str("task_id", task.ID).
		Str("user_id", caller.UserID).
		Int("assignees", len(details.Assignees)).
		Msg("created task")
	return details, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, caller access.Caller, id string) (*models.TaskDetails, error) {
	task, err := s.store.GetTask(ctx, id, access.Tasks(caller))
	if err != nil {
		s.logger.Debug().
			Err(err).
			Str("task_id", id).
			Msg("failed to select task")
		return nil, notFoundAs(err, ErrTaskNotFound)
	}
	return task, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, caller access.Caller, projectID string) ([]models.TaskDetails, error) {
	tasks, err := s.store.ListTasks(ctx, store.TaskFilter{
		Scope:     access.Tasks(caller),
		ProjectID: projectID,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", caller.UserID).
			Msg("failed to list tasks")
		return nil, err
	}
	return tasks, nil
}

func (s *taskServiceImpl) ListCalendarTasks(ctx context.Context, caller access.Caller, window access.Window) ([]models.TaskDetails, error) {
	if window.From != nil && window.To != nil && window.To.Before(*window.From) {
		return nil, ErrInvalidCalendarWin
	}

	scope := access.Calendar(caller, window)
	tasks, err := s.store.ListTasks(ctx, store.TaskFilter{
		Scope:       scope.Tasks,
		Window:      scope.Window,
		SortByStart: true,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", caller.UserID).
			Msg("failed to list calendar tasks")
		return nil, err
	}
	return tasks, nil
}

func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	caller access.Caller,
	id string,
	params TaskParams,
) (*models.TaskDetails, error) {
	var (
		mode          access.TaskUpdate
		before, after *models.TaskDetails
		pending       []effects.Effect
	)
	err := s.store.WithTx(ctx, func(repo store.Repository) error {
		var err error
		before, err = repo.GetTask(ctx, id, access.TaskScope{})
		if err != nil {
			return notFoundAs(err, ErrTaskNotFound)
		}
		mode, err = access.CanUpdateTask(caller, before.AssigneeIDs())
		if err != nil {
			return err
		}
		if !params.Status.Valid() {
			return ErrInvalidStatus
		}

		now := time.Now()
		switch mode {
		case access.TaskUpdateFull:
			if err = validateTask(&params); err != nil {
				return err
			}
			if err = checkAssignees(ctx, repo, params.AssigneeIDs); err != nil {
				return err
			}

			task := before.Task
			task.Title = params.Title
			task.Description = params.Description
			task.StartDate = params.StartDate
			task.DueDate = params.DueDate
			task.Status = params.Status
			task.Priority = params.Priority
			task.UpdatedAt = &now
			if err = repo.UpdateTask(ctx, &task); err != nil {
				return notFoundAs(err, ErrTaskNotFound)
			}
			if err = repo.SetTaskAssignees(ctx, id, params.AssigneeIDs, now); err != nil {
				return err
			}
		case access.TaskUpdateStatusOnly:
			if err = repo.UpdateTaskStatus(ctx, id, params.Status, now); err != nil {
				return notFoundAs(err, ErrTaskNotFound)
			}
		}

		after, err = repo.GetTask(ctx, id, access.TaskScope{})
		if err != nil {
			return err
		}
		pending, err = effects.Record(ctx, repo, effects.PlanTaskUpdated(caller.UserID, mode, before, after), now)
		return err
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Str("user_id", caller.UserID).
			Msg("failed to update task")
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, pending)

	s.logger.Info().
		Str("task_id", id).
		Str("user_id", caller.UserID).
		Stringer("mode", mode).
		Msg("updated task")
	return after, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, caller access.Caller, id string) error {
	if err := access.CanDeleteTask(caller); err != nil {
		return err
	}

	var (
		paths   []string
		pending []effects.Effect
	)
	err := s.store.WithTx(ctx, func(repo store.Repository) error {
		task, err := repo.GetTask(ctx, id, access.TaskScope{})
		if err != nil {
			return notFoundAs(err, ErrTaskNotFound)
		}
		paths, err = repo.ListAttachmentPaths(ctx, store.AttachmentFilter{TaskID: id})
		if err != nil {
			return err
		}
		if err = repo.DeleteTask(ctx, id); err != nil {
			return notFoundAs(err, ErrTaskNotFound)
		}
		pending, err = effects.Record(ctx, repo, effects.PlanTaskDeleted(caller.UserID, task), time.Now())
		return err
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return err
	}

	removeFiles(s.logger, s.files, paths)
	s.dispatcher.Dispatch(ctx, pending)

	s.logger.Info().
		Str("task_id", id).
		Str("user_id", caller.UserID).
		Msg("deleted task")
	return nil
}
