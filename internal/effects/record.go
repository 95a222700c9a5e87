package effects

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adanyl0v/taskflow/internal/models"
)

// Record writes every LogActivity effect through w and returns the
// remaining effects in order. It is meant to run inside the transaction of
// the mutation, so an error must abort that transaction.
func Record(ctx context.Context, w ActivityWriter, effects []Effect, now time.Time) ([]Effect, error) {
	rest := make([]Effect, 0, len(effects))
	for _, e := range effects {
		entry, ok := e.(LogActivity)
		if !ok {
			rest = append(rest, e)
			continue
		}

		log, err := newActivityLog(entry, now)
		if err != nil {
			return nil, err
		}
		if err = w.CreateActivityLog(ctx, log); err != nil {
			return nil, fmt.Errorf("writing %s activity log: %w", entry.Action, err)
		}
	}
	return rest, nil
}

func newActivityLog(e LogActivity, now time.Time) (*models.ActivityLog, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generating activity log id: %w", err)
	}

	var description *string
	if e.Description != "" {
		description = &e.Description
	}
	return &models.ActivityLog{
		ID:          id.String(),
		Action:      e.Action,
		Description: description,
		Type:        e.Type,
		CreatedAt:   now.UTC(),
		UserID:      e.ActorID,
		TaskID:      e.TaskID,
		ProjectID:   e.ProjectID,
	}, nil
}
