package store

import (
	"context"
	"time"

	"github.com/adanyl0v/taskflow/internal/access"
	"github.com/adanyl0v/taskflow/internal/models"
)

// Repository is the set of persistence operations available both on the
// database handle and inside a transaction.
//
// Lookups by id return ErrNotFound when no row matches, or when the row
// falls outside the given scope. Inserts return ErrConflict on unique
// violations and ErrReferenced when a referenced row is missing.
type Repository interface {
	UserRepository
	SessionRepository
	ProjectRepository
	TaskRepository
	AttachmentRepository
	NotificationRepository
	ActivityLogRepository
}

type UserRepository interface {
	// CreateUser inserts the user together with its role set.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// ListUsers returns every user with roles, ordered by name.
	ListUsers(ctx context.Context) ([]models.User, error)
	// GetUserRefs returns the existing users among ids.
	GetUserRefs(ctx context.Context, ids []string) ([]models.UserRef, error)
	// SetUserRoles replaces the role set of the user.
	SetUserRoles(ctx context.Context, userID string, roles models.RoleSet) error
}

type SessionRepository interface {
	CreateSession(ctx context.Context, session *models.Session) error
	GetSessionByID(ctx context.Context, id string) (*models.Session, error)
	GetSessionByRefreshToken(ctx context.Context, refreshToken, fingerprint string) (*models.Session, error)
	UpdateSession(ctx context.Context, session *models.Session) error
	DeleteSessionsByUserID(ctx context.Context, userID string) (int64, error)
}

type ProjectRepository interface {
	CreateProject(ctx context.Context, project *models.Project) error
	GetProject(ctx context.Context, id string, scope access.ProjectScope) (*models.ProjectDetails, error)
	ListProjects(ctx context.Context, scope access.ProjectScope) ([]models.ProjectDetails, error)
	UpdateProject(ctx context.Context, project *models.Project) error
	DeleteProject(ctx context.Context, id string) error
	CountProjects(ctx context.Context, scope access.ProjectScope) (int, error)
	CountProjectsByStatus(ctx context.Context, scope access.ProjectScope) (map[models.ProjectStatus]int, error)
}

type TaskRepository interface {
	CreateTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, id string, scope access.TaskScope) (*models.TaskDetails, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]models.TaskDetails, error)
	// ListUpcomingTasks returns unfinished tasks due within [from, to],
	// earliest due date first.
	ListUpcomingTasks(ctx context.Context, scope access.TaskScope, from, to time.Time, limit int) ([]models.TaskDetails, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus, updatedAt time.Time) error
	DeleteTask(ctx context.Context, id string) error
	// SetTaskAssignees replaces every assignment of the task with one row
	// per user id.
	SetTaskAssignees(ctx context.Context, taskID string, userIDs []string, assignedAt time.Time) error
	CountTasks(ctx context.Context, scope access.TaskScope, status *models.TaskStatus) (int, error)
	CountTasksByStatus(ctx context.Context, scope access.TaskScope) (map[models.TaskStatus]int, error)
}

type AttachmentRepository interface {
	CreateAttachment(ctx context.Context, attachment *models.Attachment) error
	GetAttachment(ctx context.Context, id string) (*models.Attachment, error)
	ListAttachmentsByTask(ctx context.Context, taskID string) ([]models.Attachment, error)
	// ListAttachmentPaths returns the storage handles of the attachments
	// matched by the filter.
	ListAttachmentPaths(ctx context.Context, filter AttachmentFilter) ([]string, error)
	DeleteAttachment(ctx context.Context, id string) error
}

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	ListNotifications(ctx context.Context, scope access.NotificationScope) ([]models.NotificationDetails, error)
	// MarkNotificationRead returns ErrNotFound unless the notification
	// belongs to userID.
	MarkNotificationRead(ctx context.Context, id, userID string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error)
	CountUnreadNotifications(ctx context.Context, userID string) (int, error)
}

type ActivityLogRepository interface {
	CreateActivityLog(ctx context.Context, log *models.ActivityLog) error
	ListActivityLogs(ctx context.Context, filter ActivityLogFilter) ([]models.ActivityLogDetails, error)
}

type TaskFilter struct {
	Scope     access.TaskScope
	ProjectID string
	Window    access.Window
	// SortByStart orders by start date instead of newest first.
	SortByStart bool
}

type AttachmentFilter struct {
	TaskID    string
	ProjectID string
}

type ActivityLogFilter struct {
	Scope     access.ActivityScope
	TaskID    string
	ProjectID string
	// Limit of zero means no limit.
	Limit int
}
