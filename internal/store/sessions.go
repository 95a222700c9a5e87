package store

import (
	"context"
	"fmt"

	"github.com/adanyl0v/taskflow/internal/models"
)

const selectSessionQuery = `
SELECT id,
       user_id,
       fingerprint,
       refresh_token,
       expires_at,
       created_at,
       updated_at
FROM sessions
`

func (q *Queries) CreateSession(ctx context.Context, session *models.Session) error {
	const insertSessionQuery = `
INSERT INTO sessions (id,
                      user_id,
                      fingerprint,
                      refresh_token,
                      expires_at,
                      created_at,
                      updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`
	_, err := q.exec(ctx, insertSessionQuery,
		session.ID,
		session.UserID,
		session.Fingerprint,
		session.RefreshToken,
		utc(session.ExpiresAt),
		utc(session.CreatedAt),
		utc(session.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", translate(err))
	}
	return nil
}

func (q *Queries) GetSessionByID(ctx context.Context, id string) (*models.Session, error) {
	session := new(models.Session)
	err := q.get(ctx, session, selectSessionQuery+`WHERE id = ?`, id)
	if err != nil {
		return nil, translate(err)
	}
	return session, nil
}

func (q *Queries) GetSessionByRefreshToken(ctx context.Context, refreshToken, fingerprint string) (*models.Session, error) {
	session := new(models.Session)
	err := q.get(ctx, session, selectSessionQuery+`WHERE refresh_token = ? AND fingerprint = ?`,
		refreshToken, fingerprint)
	if err != nil {
		return nil, translate(err)
	}
	return session, nil
}

func (q *Queries) UpdateSession(ctx context.Context, session *models.Session) error {
	const updateSessionQuery = `
UPDATE sessions
SET refresh_token = ?,
    expires_at = ?,
    updated_at = ?
WHERE id = ?
`
	return affected(q.exec(ctx, updateSessionQuery,
		session.RefreshToken,
		utc(session.ExpiresAt),
		utc(session.UpdatedAt),
		session.ID,
	))
}

func (q *Queries) DeleteSessionsByUserID(ctx context.Context, userID string) (int64, error) {
	n, err := q.exec(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("deleting sessions: %w", err)
	}
	return n, nil
}
