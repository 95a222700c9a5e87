package effects

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/taskflow/internal/models"
)

type ActivityWriter interface {
	CreateActivityLog(ctx context.Context, log *models.ActivityLog) error
}

// Deliverer persists a notification and sends it to its recipient.
type Deliverer interface {
	Deliver(ctx context.Context, notification *models.Notification) error
}

// Dispatcher executes planned effects. A failing effect is logged and
// skipped; the remaining effects still run.
type Dispatcher struct {
	logger     zerolog.Logger
	activities ActivityWriter
	deliverer  Deliverer
	now        func() time.Time
}

func NewDispatcher(logger zerolog.Logger, activities ActivityWriter, deliverer Deliverer) *Dispatcher {
	return &Dispatcher{
		logger:     logger,
		activities: activities,
		deliverer:  deliverer,
		now:        time.Now,
	}
}

// Dispatch runs after the mutation has been committed, so cancelling the
// request must not abort it halfway. Services record LogActivity effects
// inside the mutation's transaction with Record and dispatch the rest.
func (d *Dispatcher) Dispatch(ctx context.Context, effects []Effect) {
	ctx = context.WithoutCancel(ctx)
	for _, e := range effects {
		switch e := e.(type) {
		case LogActivity:
			d.logActivity(ctx, e)
		case Notify:
			d.notify(ctx, e)
		}
	}
}

func (d *Dispatcher) logActivity(ctx context.Context, e LogActivity) {
	log, err := newActivityLog(e, d.now())
	if err != nil {
		d.logger.Error().Err(err).Msg("failed to generate activity log id")
		return
	}
	if err = d.activities.CreateActivityLog(ctx, log); err != nil {
		d.logger.Error().Err(err).
			Str("action", e.Action).
			Str("type", string(e.Type)).
			Str("user_id", e.ActorID).
			Msg("failed to write activity log")
		return
	}
	d.logger.Debug().Str("activity_log_id", log.ID).Str("action", e.Action).Msg("wrote activity log")
}

func (d *Dispatcher) notify(ctx context.Context, e Notify) {
	id, err := uuid.NewV7()
	if err != nil {
		d.logger.Error().Err(err).Msg("failed to generate notification id")
		return
	}

	var message *string
	if e.Message != "" {
		message = &e.Message
	}
	n := models.Notification{
		ID:        id.String(),
		UserID:    e.RecipientID,
		Title:     e.Title,
		Message:   message,
		Type:      e.Type,
		CreatedAt: d.now().UTC(),
		TaskID:    e.TaskID,
		ProjectID: e.ProjectID,
	}
	if err = d.deliverer.Deliver(ctx, &n); err != nil {
		d.logger.Error().Err(err).
			Str("user_id", e.RecipientID).
			Str("type", string(e.Type)).
			Msg("failed to deliver notification")
	}
}
