package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/taskflow/internal/access"
	"github.com/adanyl0v/taskflow/internal/effects"
	"github.com/adanyl0v/taskflow/internal/mail"
	"github.com/adanyl0v/taskflow/internal/models"
	"github.com/adanyl0v/taskflow/internal/services"
	"github.com/adanyl0v/taskflow/internal/storage"
	"github.com/adanyl0v/taskflow/internal/store"
	"github.com/adanyl0v/taskflow/internal/store/storetest"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg mail.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

type testEnv struct {
	db     *store.DB
	files  *storage.Disk
	sender *recordingSender

	auth          services.AuthService
	users         services.UserService
	projects      services.ProjectService
	tasks         services.TaskService
	attachments   services.AttachmentService
	notifications services.NotificationService
	activity      services.ActivityService
	dashboard     services.DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zerolog.Nop()
	db := storetest.NewTestDB(t)
	files, err := storage.NewDisk(t.TempDir())
	require.NoError(t, err)
	sender := &recordingSender{}

	notifications := services.NewNotificationService(logger, db, sender, "http://localhost:3000")
	dispatcher := effects.NewDispatcher(logger, db, notifications)

	return &testEnv{
		db:            db,
		files:         files,
		sender:        sender,
		auth:          services.NewAuthService(logger, db, "taskflow", []byte("test-key"), time.Minute, time.Hour),
		users:         services.NewUserService(logger, db),
		projects:      services.NewProjectService(logger, db, files, dispatcher),
		tasks:         services.NewTaskService(logger, db, files, dispatcher),
		attachments:   services.NewAttachmentService(logger, db, files),
		notifications: notifications,
		activity:      services.NewActivityService(logger, db),
		dashboard:     services.NewDashboardService(logger, db),
	}
}

func callerOf(u *models.User) access.Caller {
	return access.Caller{UserID: u.ID, Roles: u.Roles}
}

func ptr[T any](v T) *T {
	return &v
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// notificationTypes lists the types of the user's notifications, oldest
// first.
func notificationTypes(t *testing.T, env *testEnv, u *models.User) []models.NotificationType {
	t.Helper()
	list, err := env.notifications.ListNotifications(context.Background(), callerOf(u))
	require.NoError(t, err)

	types := make([]models.NotificationType, len(list))
	for i, n := range list {
		types[len(list)-1-i] = n.Type
	}
	return types
}
