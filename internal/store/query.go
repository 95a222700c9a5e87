package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// where accumulates AND-ed conditions and their arguments.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// newID returns a time-ordered identifier for rows the store creates on its
// own behalf.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// utc normalizes timestamps before they are written, so that SQLite's
// textual comparison orders them correctly.
func utc(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := utc(*t)
	return &v
}
