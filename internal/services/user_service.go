package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskflow/internal/access"
	"github.com/adanyl0v/taskflow/internal/models"
	"github.com/adanyl0v/taskflow/internal/store"
)

type userServiceImpl struct {
	logger zerolog.Logger
	store  store.Store
}

func NewUserService(logger zerolog.Logger, store store.Store) UserService {
	return &userServiceImpl{
		logger: logger,
		store:  store,
	}
}

func (s *userServiceImpl) GetCaller(ctx context.Context, userID string) (access.Caller, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return access.Caller{}, err
	}
	return access.Caller{UserID: user.ID, Roles: user.Roles}, nil
}

func (s *userServiceImpl) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select user")
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	return user, nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, err
	}
	return users, nil
}

func (s *userServiceImpl) ListUsersWithRoles(ctx context.Context, caller access.Caller) ([]models.User, error) {
	if err := access.CanListUsersWithRoles(caller); err != nil {
		return nil, err
	}
	return s.ListUsers(ctx)
}

func (s *userServiceImpl) ChangeRole(ctx context.Context, caller access.Caller, userID string, role models.Role) (*models.User, error) {
	if err := access.CanChangeRoles(caller); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select user")
		return nil, notFoundAs(err, ErrUserNotFound)
	}

	user.Roles = models.NewRoleSet(role)
	err = s.store.WithTx(ctx, func(repo store.Repository) error {
		return repo.SetUserRoles(ctx, user.ID, user.Roles)
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", user.ID).
			Msg("failed to set user roles")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("role", role.String()).
		Str("changed_by", caller.UserID).
		Msg("changed user role")
	return user, nil
}
