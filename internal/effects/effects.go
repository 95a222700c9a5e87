// Package effects plans and executes the side effects of mutations.
//
// Planning is pure: each Plan function turns a mutation into an ordered list
// of effects, the activity log entry first and notifications after it.
// Record writes the activity log entries in the mutation's transaction and
// a Dispatcher executes the remaining notifications once it is committed,
// isolating every failure.
package effects

import (
	"github.com/adanyl0v/taskflow/internal/models"
)

// Effect is either a LogActivity or a Notify.
type Effect interface {
	effect()
}

// LogActivity appends an entry to the activity log.
type LogActivity struct {
	Action      string
	Type        models.ActivityType
	Description string
	ActorID     string
	TaskID      *string
	ProjectID   *string
}

// Notify delivers a notification to a single recipient.
type Notify struct {
	RecipientID string
	Type        models.NotificationType
	Title       string
	Message     string
	TaskID      *string
	ProjectID   *string
}

func (LogActivity) effect() {}
func (Notify) effect()      {}
