package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskflow/internal/access"
	"github.com/adanyl0v/taskflow/internal/models"
	"github.com/adanyl0v/taskflow/internal/store"
)

const (
	DefaultRecentActivityLimit = 20
	MaxRecentActivityLimit     = 100
)

type activityServiceImpl struct {
	logger zerolog.Logger
	store  store.Repository
}

func NewActivityService(logger zerolog.Logger, store store.Repository) ActivityService {
	return &activityServiceImpl{
		logger: logger,
		store:  store,
	}
}

// ListTaskActivity returns the whole history of a task visible to the
// caller.
func (s *activityServiceImpl) ListTaskActivity(ctx context.Context, caller access.Caller, taskID string) ([]models.ActivityLogDetails, error) {
	_, err := s.store.GetTask(ctx, taskID, access.Tasks(caller))
	if err != nil {
		return nil, notFoundAs(err, ErrTaskNotFound)
	}
	return s.list(ctx, store.ActivityLogFilter{TaskID: taskID})
}

// ListProjectActivity returns the whole history of a project visible to
// the caller.
func (s *activityServiceImpl) ListProjectActivity(ctx context.Context, caller access.Caller, projectID string) ([]models.ActivityLogDetails, error) {
	_, err := s.store.GetProject(ctx, projectID, access.Projects(caller))
	if err != nil {
		return nil, notFoundAs(err, ErrProjectNotFound)
	}
	return s.list(ctx, store.ActivityLogFilter{ProjectID: projectID})
}

// ListRecentActivity clamps limit to [1, MaxRecentActivityLimit], using
// DefaultRecentActivityLimit for non-positive values.
func (s *activityServiceImpl) ListRecentActivity(ctx context.Context, caller access.Caller, limit int) ([]models.ActivityLogDetails, error) {
	switch {
	case limit <= 0:
		limit = DefaultRecentActivityLimit
	case limit > MaxRecentActivityLimit:
		limit = MaxRecentActivityLimit
	}
	return s.list(ctx, store.ActivityLogFilter{
		Scope: access.Activities(caller),
		Limit: limit,
	})
}

func (s *activityServiceImpl) list(ctx context.Context, filter store.ActivityLogFilter) ([]models.ActivityLogDetails, error) {
	logs, err := s.store.ListActivityLogs(ctx, filter)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", filter.TaskID).
			Str("project_id", filter.ProjectID).
			Msg("failed to list activity logs")
		return nil, err
	}
	return logs, nil
}
