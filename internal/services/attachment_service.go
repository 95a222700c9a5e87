package services

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskflow/internal/access"
	"github.com/adanyl0v/taskflow/internal/models"
	"github.com/adanyl0v/taskflow/internal/storage"
	"github.com/adanyl0v/taskflow/internal/store"
)

type attachmentServiceImpl struct {
	logger zerolog.Logger
	store  store.Store
	files  storage.Storage
}

func NewAttachmentService(logger zerolog.Logger, store store.Store, files storage.Storage) AttachmentService {
	return &attachmentServiceImpl{
		logger: logger,
		store:  store,
		files:  files,
	}
}

func (s *attachmentServiceImpl) Upload(ctx context.Context, caller access.Caller, params UploadParams) (*models.Attachment, error) {
	if params.Size <= 0 || params.Content == nil {
		return nil, ErrEmptyFile
	}

	_, err := s.store.GetTask(ctx, params.TaskID, access.TaskScope{})
	if err != nil {
		return nil, notFoundAs(err, ErrTaskNotFound)
	}

	handle, written, err := s.files.Save(params.Content)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", params.TaskID).
			Msg("failed to store attachment file")
		return nil, err
	}
	s.logger.Debug().
		Str("file_path", handle).
		Int64("written", written).
		Msg("stored attachment file")

	id, err := newID()
	if err != nil {
		removeFiles(s.logger, s.files, []string{handle})
		return nil, err
	}

	attachment := &models.Attachment{
		ID:               id,
		FileName:         filepath.Base(strings.TrimSpace(params.FileName)),
		FilePath:         handle,
		FileSize:         params.Size,
		TaskID:           params.TaskID,
		UploadedByUserID: caller.UserID,
		UploadedAt:       time.Now(),
	}
	if params.ContentType != "" {
		attachment.ContentType = &params.ContentType
	}

	err = s.store.CreateAttachment(ctx, attachment)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", params.TaskID).
			Msg("failed to insert attachment")
		removeFiles(s.logger, s.files, []string{handle})
		if errors.Is(err, store.ErrReferenced) {
			// task deleted meanwhile
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	s.logger.Info().
		Str("attachment_id", attachment.ID).
		Str("task_id", attachment.TaskID).
		Str("user_id", caller.UserID).
		Msg("uploaded attachment")
	return attachment, nil
}

func (s *attachmentServiceImpl) GetAttachment(ctx context.Context, id string) (*models.Attachment, error) {
	attachment, err := s.store.GetAttachment(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrAttachmentNotFound)
	}
	return attachment, nil
}

func (s *attachmentServiceImpl) ListAttachments(ctx context.Context, caller access.Caller, taskID string) ([]models.Attachment, error) {
	_, err := s.store.GetTask(ctx, taskID, access.Tasks(caller))
	if err != nil {
		return nil, notFoundAs(err, ErrTaskNotFound)
	}

	attachments, err := s.store.ListAttachmentsByTask(ctx, taskID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to list attachments")
		return nil, err
	}
	return attachments, nil
}

func (s *attachmentServiceImpl) Open(ctx context.Context, id string) (*models.Attachment, io.ReadCloser, error) {
	attachment, err := s.GetAttachment(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	content, err := s.files.Open(attachment.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidHandle) {
			s.logger.Error().
				Str("attachment_id", id).
				Str("file_path", attachment.FilePath).
				Msg("attachment file is missing")
			return nil, nil, ErrFileNotFound
		}
		return nil, nil, err
	}
	return attachment, content, nil
}

// DeleteAttachment is open to every authenticated caller.
func (s *attachmentServiceImpl) DeleteAttachment(ctx context.Context, caller access.Caller, id string) error {
	attachment, err := s.GetAttachment(ctx, id)
	if err != nil {
		return err
	}

	err = s.store.DeleteAttachment(ctx, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("attachment_id", id).
			Msg("failed to delete attachment")
		return notFoundAs(err, ErrAttachmentNotFound)
	}
	removeFiles(s.logger, s.files, []string{attachment.FilePath})

	s.logger.Info().
		Str("attachment_id", id).
		Str("user_id", caller.UserID).
		Msg("deleted attachment")
	return nil
}
