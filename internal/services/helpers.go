package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adanyl0v/taskflow/internal/store"
)

// notFoundAs replaces store.ErrNotFound with the given service error.
func notFoundAs(err, target error) error {
	if errors.Is(err, store.ErrNotFound) {
		return target
	}
	return err
}

func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// distinct drops empty and repeated ids, keeping the first occurrence.
func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validRange(start time.Time, end *time.Time) bool {
	return end == nil || !end.Before(start)
}
