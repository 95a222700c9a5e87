package models

import "time"

type Attachment struct {
	ID               string    `db:"id"`
	FileName         string    `db:"file_name"`
	FilePath         string    `db:"file_path"`
	FileSize         int64     `db:"file_size"`
	ContentType      *string   `db:"content_type"`
	TaskID           string    `db:"task_id"`
	UploadedByUserID string    `db:"uploaded_by_user_id"`
	UploadedAt       time.Time `db:"uploaded_at"`
}
