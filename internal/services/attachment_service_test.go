package services_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/taskflow/internal/models"
	"github.com/adanyl0v/taskflow/internal/services"
	"github.com/adanyl0v/taskflow/internal/store/storetest"
)

func TestUploadAndOpenAttachment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := storetest.CreateUser(t, env.db, "Mona", models.RoleManager)
	member := storetest.CreateUser(t, env.db, "Mia", models.RoleMember)
	project := storetest.CreateProject(t, env.db, "Launch", manager.ID)
	task := storetest.CreateTask(t, env.db, project.ID, "Write docs", manager.ID, date(2024, 3, 1), nil, member.ID)

	attachment, err := env.attachments.Upload(ctx, callerOf(member), services.UploadParams{
		TaskID:      task.ID,
		FileName:    "../../report.pdf",
		ContentType: "application/pdf",
		Size:        7,
		Content:     strings.NewReader("%PDF-1."),
	})
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", attachment.FileName)
	assert.NotEqual(t, attachment.FileName, attachment.FilePath)
	assert.EqualValues(t, 7, attachment.FileSize)
	require.NotNil(t, attachment.ContentType)
	assert.Equal(t, "application/pdf", *attachment.ContentType)

	list, err := env.attachments.ListAttachments(ctx, callerOf(member), task.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got, content, err := env.attachments.Open(ctx, attachment.ID)
	require.NoError(t, err)
	data, err := io.ReadAll(content)
	require.NoError(t, err)
	require.NoError(t, content.Close())
	assert.Equal(t, attachment.ID, got.ID)
	assert.Equal(t, "%PDF-1.", string(data))
}

func TestUpload_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := storetest.CreateUser(t, env.db, "Mona", models.RoleManager)
	project := storetest.CreateProject(t, env.db, "Launch", manager.ID)
	task := storetest.CreateTask(t, env.db, project.ID, "Write docs", manager.ID, date(2024, 3, 1), nil)

	_, err := env.attachments.Upload(ctx, callerOf(manager), services.UploadParams{
		TaskID:   task.ID,
		FileName: "empty.txt",
		Content:  strings.NewReader(""),
	})
	assert.ErrorIs(t, err, services.ErrEmptyFile)

	_, err = env.attachments.Upload(ctx, callerOf(manager), services.UploadParams{
		TaskID:   "missing",
		FileName: "a.txt",
		Size:     1,
		Content:  strings.NewReader("a"),
	})
	assert.ErrorIs(t, err, services.ErrTaskNotFound)
}

func TestOpenAttachment_MissingObjectIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := storetest.CreateUser(t, env.db, "Mona", models.RoleManager)
	project := storetest.CreateProject(t, env.db, "Launch", manager.ID)
	task := storetest.CreateTask(t, env.db, project.ID, "Write docs", manager.ID, date(2024, 3, 1), nil)

	attachment, err := env.attachments.Upload(ctx, callerOf(manager), services.UploadParams{
		TaskID:   task.ID,
		FileName: "a.txt",
		Size:     1,
		Content:  strings.NewReader("a"),
	})
	require.NoError(t, err)
	require.NoError(t, env.files.Remove(attachment.FilePath))

	_, _, err = env.attachments.Open(ctx, attachment.ID)
	assert.ErrorIs(t, err, services.ErrFileNotFound)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeleteAttachment_AnyCallerMayDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := storetest.CreateUser(t, env.db, "Mona", models.RoleManager)
	stranger := storetest.CreateUser(t, env.db, "Sam", models.RoleMember)
	project := storetest.CreateProject(t, env.db, "Launch", manager.ID)
	task := storetest.CreateTask(t, env.db, project.ID, "Write docs", manager.ID, date(2024, 3, 1), nil)

	attachment, err := env.attachments.Upload(ctx, callerOf(manager), services.UploadParams{
		TaskID:   task.ID,
		FileName: "a.txt",
		Size:     1,
		Content:  strings.NewReader("a"),
	})
	require.NoError(t, err)

	require.NoError(t, env.attachments.DeleteAttachment(ctx, callerOf(stranger), attachment.ID))

	_, err = env.attachments.GetAttachment(ctx, attachment.ID)
	assert.ErrorIs(t, err, services.ErrAttachmentNotFound)
	_, err = env.files.Open(attachment.FilePath)
	assert.Error(t, err)
	assert.ErrorIs(t, env.attachments.DeleteAttachment(ctx, callerOf(stranger), attachment.ID), services.ErrAttachmentNotFound)
}
