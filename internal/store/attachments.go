package store

import (
	"context"
	"fmt"

	"github.com/adanyl0v/taskflow/internal/models"
)

const selectAttachmentQuery = `
SELECT id,
       file_name,
       file_path,
       file_size,
       content_type,
       task_id,
       uploaded_by_user_id,
       uploaded_at
FROM attachments
`

func (q *Queries) CreateAttachment(ctx context.Context, attachment *models.Attachment) error {
	const insertAttachmentQuery = `
INSERT INTO attachments (id,
                         file_name,
                         file_path,
                         file_size,
                         content_type,
                         task_id,
                         uploaded_by_user_id,
                         uploaded_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err := q.exec(ctx, insertAttachmentQuery,
		attachment.ID,
		attachment.FileName,
		attachment.FilePath,
		attachment.FileSize,
		attachment.ContentType,
		attachment.TaskID,
		attachment.UploadedByUserID,
		utc(attachment.UploadedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting attachment: %w", translate(err))
	}
	return nil
}

func (q *Queries) GetAttachment(ctx context.Context, id string) (*models.Attachment, error) {
	attachment := new(models.Attachment)
	err := q.get(ctx, attachment, selectAttachmentQuery+`WHERE id = ?`, id)
	if err != nil {
		return nil, translate(err)
	}
	return attachment, nil
}

func (q *Queries) ListAttachmentsByTask(ctx context.Context, taskID string) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := q.selectAll(ctx, &attachments, selectAttachmentQuery+`WHERE task_id = ? ORDER BY uploaded_at DESC, id DESC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("selecting attachments: %w", err)
	}
	return attachments, nil
}

func (q *Queries) ListAttachmentPaths(ctx context.Context, filter AttachmentFilter) ([]string, error) {
	var w where
	if filter.TaskID != "" {
		w.add(`a.task_id = ?`, filter.TaskID)
	}
	if filter.ProjectID != "" {
		w.add(`a.task_id IN (SELECT t.id FROM tasks t WHERE t.project_id = ?)`, filter.ProjectID)
	}

	var paths []string
	err := q.selectAll(ctx, &paths, `SELECT a.file_path FROM attachments a`+w.String(), w.args...)
	if err != nil {
		return nil, fmt.Errorf("selecting attachment paths: %w", err)
	}
	return paths, nil
}

func (q *Queries) DeleteAttachment(ctx context.Context, id string) error {
	return affected(q.exec(ctx, `DELETE FROM attachments WHERE id = ?`, id))
}
