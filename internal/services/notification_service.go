package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskflow/internal/access"
	"github.com/adanyl0v/taskflow/internal/mail"
	"github.com/adanyl0v/taskflow/internal/models"
	"github.com/adanyl0v/taskflow/internal/store"
)

type notificationServiceImpl struct {
	logger zerolog.Logger
	store  store.Repository
	sender mail.Sender
	appURL string
}

func NewNotificationService(
	logger zerolog.Logger,
	store store.Repository,
	sender mail.Sender,
	appURL string,
) NotificationService {
	return &notificationServiceImpl{
		logger: logger,
		store:  store,
		sender: sender,
		appURL: appURL,
	}
}

func (s *notificationServiceImpl) Deliver(ctx context.Context, n *models.Notification) error {
	err := s.store.CreateNotification(ctx, n)
	if err != nil {
		return err
	}
	s.logger.Debug().
		Str("notification_id", n.ID).
		Str("user_id", n.UserID).
		Str("type", string(n.Type)).
		Msg("inserted notification")

	s.email(ctx, n)
	return nil
}

// email sends n to its recipient, logging instead of returning failures.
func (s *notificationServiceImpl) email(ctx context.Context, n *models.Notification) {
	user, err := s.store.GetUserByID(ctx, n.UserID)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("user_id", n.UserID).
			Msg("failed to select notification recipient")
		return
	}
	if user.Email == "" {
		return
	}

	msg, err := mail.NotificationMessage(user.Email, n, s.appURL)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to render notification email")
		return
	}
	if err = s.sender.Send(ctx, msg); err != nil {
		s.logger.Warn().
			Err(err).
			Str("notification_id", n.ID).
			Str("user_id", n.UserID).
			Msg("failed to send notification email")
		return
	}
	s.logger.Debug().
		Str("notification_id", n.ID).
		Msg("sent notification email")
}

func (s *notificationServiceImpl) ListNotifications(ctx context.Context, caller access.Caller) ([]models.NotificationDetails, error) {
	notifications, err := s.store.ListNotifications(ctx, access.Notifications(caller))
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", caller.UserID).
			Msg("failed to list notifications")
		return nil, err
	}
	return notifications, nil
}

func (s *notificationServiceImpl) MarkRead(ctx context.Context, caller access.Caller, id string) error {
	err := s.store.MarkNotificationRead(ctx, id, access.Notifications(caller).UserID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("notification_id", id).
			Str("user_id", caller.UserID).
			Msg("failed to mark notification read")
		return notFoundAs(err, ErrNotificationNotFound)
	}
	return nil
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, caller access.Caller) (int64, error) {
	n, err := s.store.MarkAllNotificationsRead(ctx, access.Notifications(caller).UserID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", caller.UserID).
			Msg("failed to mark all notifications read")
		return 0, err
	}
	s.logger.Debug().
		Str("user_id", caller.UserID).
		Int64("affected", n).
		Msg("marked all notifications read")
	return n, nil
}

func (s *notificationServiceImpl) UnreadCount(ctx context.Context, caller access.Caller) (int, error) {
	n, err := s.store.CountUnreadNotifications(ctx, access.Notifications(caller).UserID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", caller.UserID).
			Msg("failed to count unread notifications")
		return 0, err
	}
	return n, nil
}
