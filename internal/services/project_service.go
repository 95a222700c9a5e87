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

type projectServiceImpl struct {
	logger     zerolog.Logger
	store      store.Store
	files      storage.Storage
	dispatcher EffectDispatcher
}

func NewProjectService(
	logger zerolog.Logger,
	store store.Store,
	files storage.Storage,
	dispatcher EffectDispatcher,
) ProjectService {
	return &projectServiceImpl{
		logger:     logger,
		store:      store,
		files:      files,
		dispatcher: dispatcher,
	}
}

func validateProject(params *ProjectParams) error {
	params.Name = strings.TrimSpace(params.Name)
	if params.Name == "" {
		return ErrEmptyName
	}
	if !validRange(params.StartDate, params.EndDate) {
		return ErrInvalidDateRange
	}
	return nil
}

func (s *projectServiceImpl) CreateProject(ctx context.Context, caller access.Caller, params ProjectParams) (*models.ProjectDetails, error) {
	if err := access.CanCreateProject(caller); err != nil {
		return nil, err
	}
	if err := validateProject(&params); err != nil {
		return nil, err
	}

	id, err := newID()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to generate project uuid")
		return nil, err
	}
	project := models.Project{
		ID:              id,
		Name:            params.Name,
		Description:     params.Description,
		StartDate:       params.StartDate,
		EndDate:         params.EndDate,
		Status:          models.ProjectNotStarted,
		CreatedByUserID: caller.UserID,
		CreatedAt:       time.Now(),
	}

	var (
		details *models.ProjectDetails
		pending []effects.Effect
	)
	err = s.store.WithTx(ctx, func(repo store.Repository) error {
		if err := repo.CreateProject(ctx, &project); err != nil {
			return err
		}
		var err error
		details, err = repo.GetProject(ctx, project.ID, access.ProjectScope{})
		if err != nil {
			return err
		}
		pending, err = effects.Record(ctx, repo, effects.PlanProjectCreated(caller.UserID, &project), project.CreatedAt)
		return err
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("name", project.Name).
			Msg("failed to create project")
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, pending)

	s.logger.Info().
		Str("project_id", project.ID).
		Str("user_id", caller.UserID).
		Msg("created project")
	return details, nil
}

func (s *projectServiceImpl) GetProject(ctx context.Context, caller access.Caller, id string) (*models.ProjectDetails, error) {
	project, err := s.store.GetProject(ctx, id, access.Projects(caller))
	if err != nil {
		s.logger.Debug().
			Err(err).
			Str("project_id", id).
			Msg("failed to select project")
		return nil, notFoundAs(err, ErrProjectNotFound)
	}
	return project, nil
}

func (s *projectServiceImpl) ListProjects(ctx context.Context, caller access.Caller) ([]models.ProjectDetails, error) {
	projects, err := s.store.ListProjects(ctx, access.Projects(caller))
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", caller.UserID).
			Msg("failed to list projects")
		return nil, err
	}
	return projects, nil
}

func (s *projectServiceImpl) UpdateProject(
	ctx context.Context,
	caller access.Caller,
	id string,
	params ProjectParams,
) (*models.ProjectDetails, error) {
	var (
		before, after *models.ProjectDetails
		pending       []effects.Effect
	)
	err := s.store.WithTx(ctx, func(repo store.Repository) error {
		var err error
		before, err = repo.GetProject(ctx, id, access.ProjectScope{})
		if err != nil {
			return notFoundAs(err, ErrProjectNotFound)
		}
		if err = access.CanUpdateProject(caller, &before.Project); err != nil {
			return err
		}
		if err = validateProject(&params); err != nil {
			return err
		}
		if !params.Status.Valid() {
			return ErrInvalidStatus
		}

		now := time.Now()
		project := before.Project
		project.Name = params.Name
		project.Description = params.Description
		project.StartDate = params.StartDate
		project.EndDate = params.EndDate
		project.Status = params.Status
		project.UpdatedAt = &now
		if err = repo.UpdateProject(ctx, &project); err != nil {
			return notFoundAs(err, ErrProjectNotFound)
		}

		after, err = repo.GetProject(ctx, id, access.ProjectScope{})
		if err != nil {
			return err
		}
		pending, err = effects.Record(ctx, repo, effects.PlanProjectUpdated(caller.UserID, &before.Project, &after.Project), now)
		return err
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("project_id", id).
			Str("user_id", caller.UserID).
			Msg("failed to update project")
		return nil, err
	}

	s.dispatcher.Dispatch(ctx, pending)

	s.logger.Info().
		Str("project_id", id).
		Str("user_id", caller.UserID).
		Msg("updated project")
	return after, nil
}

func (s *projectServiceImpl) DeleteProject(ctx context.Context, caller access.Caller, id string) error {
	if err := access.CanDeleteProject(caller); err != nil {
		return err
	}

	var (
		paths   []string
		pending []effects.Effect
	)
	err := s.store.WithTx(ctx, func(repo store.Repository) error {
		project, err := repo.GetProject(ctx, id, access.ProjectScope{})
		if err != nil {
			return notFoundAs(err, ErrProjectNotFound)
		}
		paths, err = repo.ListAttachmentPaths(ctx, store.AttachmentFilter{ProjectID: id})
		if err != nil {
			return err
		}
		if err = repo.DeleteProject(ctx, id); err != nil {
			return notFoundAs(err, ErrProjectNotFound)
		}
		pending, err = effects.Record(ctx, repo, effects.PlanProjectDeleted(caller.UserID, &project.Project), time.Now())
		return err
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("project_id", id).
			Msg("failed to delete project")
		return err
	}

	removeFiles(s.logger, s.files, paths)
	s.dispatcher.Dispatch(ctx, pending)

	s.logger.Info().
		Str("project_id", id).
		Str("user_id", caller.UserID).
		Msg("deleted project")
	return nil
}

// removeFiles deletes the stored objects of removed attachments. Failures
// leave orphaned files behind and are only logged.
func removeFiles(logger zerolog.Logger, files storage.Storage, paths []string) {
	for _, path := range paths {
		if err := files.Remove(path); err != nil {
			logger.Warn().
				Err(err).
				Str("file_path", path).
				Msg("failed to remove attachment file")
		}
	}
}
