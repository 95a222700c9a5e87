package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskflow/internal/access"
	"github.com/adanyl0v/taskflow/internal/models"
	"github.com/adanyl0v/taskflow/internal/store"
)

const (
	upcomingTasksWindow = 7 * 24 * time.Hour
	upcomingTasksLimit  = 10
	recentActivityLimit = 10
)

type dashboardServiceImpl struct {
	logger zerolog.Logger
	store  store.Repository
}

func NewDashboardService(logger zerolog.Logger, store store.Repository) DashboardService {
	return &dashboardServiceImpl{
		logger: logger,
		store:  store,
	}
}

func (s *dashboardServiceImpl) GetStats(ctx context.Context, caller access.Caller) (*DashboardStats, error) {
	projects := access.Projects(caller)
	tasks := access.Tasks(caller)
	completed, inProgress := models.TaskCompleted, models.TaskInProgress

	var (
		stats DashboardStats
		err   error
	)
	logErr := func(err error, what string) error {
		s.logger.Error().
			Err(err).
			Str("user_id", caller.UserID).
			Msgf("failed to load %s", what)
		return err
	}

	if stats.TotalProjects, err = s.store.CountProjects(ctx, projects); err != nil {
		return nil, logErr(err, "project count")
	}
	if stats.TotalTasks, err = s.store.CountTasks(ctx, tasks, nil); err != nil {
		return nil, logErr(err, "task count")
	}
	if stats.CompletedTasks, err = s.store.CountTasks(ctx, tasks, &completed); err != nil {
		return nil, logErr(err, "completed task count")
	}
	if stats.InProgressTasks, err = s.store.CountTasks(ctx, tasks, &inProgress); err != nil {
		return nil, logErr(err, "in progress task count")
	}
	if stats.ProjectStatusStats, err = s.store.CountProjectsByStatus(ctx, projects); err != nil {
		return nil, logErr(err, "project status stats")
	}
	if stats.TaskStatusStats, err = s.store.CountTasksByStatus(ctx, tasks); err != nil {
		return nil, logErr(err, "task status stats")
	}

	now := time.Now()
	stats.UpcomingTasks, err = s.store.ListUpcomingTasks(ctx, tasks, now, now.Add(upcomingTasksWindow), upcomingTasksLimit)
	if err != nil {
		return nil, logErr(err, "upcoming tasks")
	}
	stats.RecentActivities, err = s.store.ListActivityLogs(ctx, store.ActivityLogFilter{
		Scope: access.Activities(caller),
		Limit: recentActivityLimit,
	})
	if err != nil {
		return nil, logErr(err, "recent activities")
	}

	return &stats, nil
}
