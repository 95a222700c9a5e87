package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adanyl0v/taskflow/internal/access"
	"github.com/adanyl0v/taskflow/internal/effects"
	"github.com/adanyl0v/taskflow/internal/models"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = access.ErrForbidden
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")

	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrProjectNotFound      = fmt.Errorf("project %w", ErrNotFound)
	ErrTaskNotFound         = fmt.Errorf("task %w", ErrNotFound)
	ErrAttachmentNotFound   = fmt.Errorf("attachment %w", ErrNotFound)
	ErrFileNotFound         = fmt.Errorf("file %w", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("notification %w", ErrNotFound)

	ErrEmptyName          = fmt.Errorf("%w: name is required", ErrValidation)
	ErrEmptyTitle         = fmt.Errorf("%w: title is required", ErrValidation)
	ErrInvalidStatus      = fmt.Errorf("%w: invalid status", ErrValidation)
	ErrInvalidPriority    = fmt.Errorf("%w: invalid priority", ErrValidation)
	ErrInvalidDateRange   = fmt.Errorf("%w: end date is before start date", ErrValidation)
	ErrUnknownAssignee    = fmt.Errorf("%w: assigned user does not exist", ErrValidation)
	ErrInvalidRole        = fmt.Errorf("%w: invalid role", ErrValidation)
	ErrEmptyFile          = fmt.Errorf("%w: file is empty", ErrValidation)
	ErrInvalidCalendarWin = fmt.Errorf("%w: calendar end is before its start", ErrValidation)

	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")
)

// EffectDispatcher executes the side effects of a committed mutation.
type EffectDispatcher interface {
	Dispatch(ctx context.Context, effects []effects.Effect)
}

type AuthService interface {
	// Login authenticates the user by email and password.
	//
	// It deletes all sessions with the same user ID and creates
	// a new session and generates a new JWT token pair.
	//
	// It returns ErrUserNotFound if the user with the given
	// email doesn't exist or ErrUserPasswordMismatch if the
	// given password doesn't match the user's password.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Refresh updates the session with the given refresh token.
	//
	// It returns ErrSessionNotFound if the session with the
	// given refresh token doesn't exist or ErrSessionExpired
	// if the session is expired.
	Refresh(ctx context.Context, params RefreshParams) (*LoginResult, error)

	// Register creates a user holding the Member role.
	//
	// It hashes the password, generates a unique ID and creates a
	// session with the given fingerprint and a fresh JWT token pair.
	//
	// It returns ErrUserAlreadyExists if the user
	// with the given email already exists.
	Register(ctx context.Context, params RegisterParams) (*LoginResult, error)

	// Logout invalidates all sessions with the given user ID.
	Logout(ctx context.Context, userID string) error

	// ParseJWTToken parses the given JWT token and returns the registered
	// claims or jwt.ErrTokenExpired if the token is expired.
	ParseJWTToken(token string) (*jwt.RegisteredClaims, error)
}

type SessionService interface {
	GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error)
}

type UserService interface {
	// GetCaller loads the role set of an authenticated user.
	GetCaller(ctx context.Context, userID string) (access.Caller, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	// ListUsers returns every user, for assignee pickers.
	ListUsers(ctx context.Context) ([]models.User, error)
	// ListUsersWithRoles is ListUsers restricted to admins.
	ListUsersWithRoles(ctx context.Context, caller access.Caller) ([]models.User, error)
	// ChangeRole replaces every role of the user with the given one.
	ChangeRole(ctx context.Context, caller access.Caller, userID string, role models.Role) (*models.User, error)
}

type ProjectService interface {
	CreateProject(ctx context.Context, caller access.Caller, params ProjectParams) (*models.ProjectDetails, error)
	// GetProject returns ErrProjectNotFound for projects outside the
	// caller's read scope.
	GetProject(ctx context.Context, caller access.Caller, id string) (*models.ProjectDetails, error)
	ListProjects(ctx context.Context, caller access.Caller) ([]models.ProjectDetails, error)
	// UpdateProject replaces every editable field of the project.
	UpdateProject(ctx context.Context, caller access.Caller, id string, params ProjectParams) (*models.ProjectDetails, error)
	// DeleteProject removes the project with its tasks and their
	// attachment files.
	DeleteProject(ctx context.Context, caller access.Caller, id string) error
}

type TaskService interface {
	CreateTask(ctx context.Context, caller access.Caller, params TaskParams) (*models.TaskDetails, error)
	GetTask(ctx context.Context, caller access.Caller, id string) (*models.TaskDetails, error)
	// ListTasks returns the caller's visible tasks, newest first. A non-empty
	// projectID narrows the list to that project.
	ListTasks(ctx context.Context, caller access.Caller, projectID string) ([]models.TaskDetails, error)
	// ListCalendarTasks returns the visible tasks whose interval intersects
	// the window, ordered by start date.
	ListCalendarTasks(ctx context.Context, caller access.Caller, window access.Window) ([]models.TaskDetails, error)
	// UpdateTask replaces the task for privileged callers. For assigned
	// members only params.Status is applied.
	UpdateTask(ctx context.Context, caller access.Caller, id string, params TaskParams) (*models.TaskDetails, error)
	DeleteTask(ctx context.Context, caller access.Caller, id string) error
}

type AttachmentService interface {
	Upload(ctx context.Context, caller access.Caller, params UploadParams) (*models.Attachment, error)
	GetAttachment(ctx context.Context, id string) (*models.Attachment, error)
	ListAttachments(ctx context.Context, caller access.Caller, taskID string) ([]models.Attachment, error)
	// Open returns the attachment with its content, which the caller must
	// close.
	Open(ctx context.Context, id string) (*models.Attachment, io.ReadCloser, error)
	DeleteAttachment(ctx context.Context, caller access.Caller, id string) error
}

type NotificationService interface {
	// Deliver persists the notification, then emails its recipient.
	// Only the persistence error is returned.
	Deliver(ctx context.Context, notification *models.Notification) error
	ListNotifications(ctx context.Context, caller access.Caller) ([]models.NotificationDetails, error)
	MarkRead(ctx context.Context, caller access.Caller, id string) error
	MarkAllRead(ctx context.Context, caller access.Caller) (int64, error)
	UnreadCount(ctx context.Context, caller access.Caller) (int, error)
}

type ActivityService interface {
	ListTaskActivity(ctx context.Context, caller access.Caller, taskID string) ([]models.ActivityLogDetails, error)
	ListProjectActivity(ctx context.Context, caller access.Caller, projectID string) ([]models.ActivityLogDetails, error)
	ListRecentActivity(ctx context.Context, caller access.Caller, limit int) ([]models.ActivityLogDetails, error)
}

type DashboardService interface {
	GetStats(ctx context.Context, caller access.Caller) (*DashboardStats, error)
}

type LoginParams struct {
	Email       string
	Password    string
	Fingerprint string
}

type RegisterParams struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	Fingerprint string
}

type LoginResult struct {
	UserID                string
	SessionID             string
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

type RefreshParams struct {
	RefreshToken string
	Fingerprint  string
}

// ProjectParams carries the editable fields of a project. Status is ignored
// on create.
type ProjectParams struct {
	Name        string
	Description *string
	StartDate   time.Time
	EndDate     *time.Time
	Status      models.ProjectStatus
}

// TaskParams carries the editable fields of a task. ProjectID and Status
// are ignored on update and create respectively.
type TaskParams struct {
	ProjectID   string
	Title       string
	Description *string
	StartDate   time.Time
	DueDate     *time.Time
	Status      models.TaskStatus
	Priority    models.TaskPriority
	AssigneeIDs []string
}

type UploadParams struct {
	TaskID      string
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type DashboardStats struct {
	TotalProjects      int
	TotalTasks         int
	CompletedTasks     int
	InProgressTasks    int
	ProjectStatusStats map[models.ProjectStatus]int
	TaskStatusStats    map[models.TaskStatus]int
	UpcomingTasks      []models.TaskDetails
	RecentActivities   []models.ActivityLogDetails
}
