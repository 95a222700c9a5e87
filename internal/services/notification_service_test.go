package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/taskflow/internal/models"
	"github.com/adanyl0v/taskflow/internal/services"
	"github.com/adanyl0v/taskflow/internal/store/storetest"
)

func deliver(t *testing.T, env *testEnv, user *models.User, title string) *models.Notification {
	t.Helper()
	n := &models.Notification{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Title:     title,
		Type:      models.NotificationOther,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, env.notifications.Deliver(context.Background(), n))
	return n
}

func TestDeliver_SendsEmail(t *testing.T) {
	env := newTestEnv(t)
	user := storetest.CreateUser(t, env.db, "Una", models.RoleMember)

	deliver(t, env, user, "Hello")

	require.Len(t, env.sender.sent, 1)
	assert.Equal(t, user.Email, env.sender.sent[0].To)
	assert.Contains(t, env.sender.sent[0].HTML, "Hello")
}

func TestDeliver_EmailFailureKeepsNotification(t *testing.T) {
	env := newTestEnv(t)
	env.sender.err = errors.New("connection refused")
	user := storetest.CreateUser(t, env.db, "Una", models.RoleMember)

	deliver(t, env, user, "Hello")

	count, err := env.notifications.UnreadCount(context.Background(), callerOf(user))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMarkRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := storetest.CreateUser(t, env.db, "Una", models.RoleMember)
	admin := storetest.CreateUser(t, env.db, "Ada", models.RoleAdmin)
	n := deliver(t, env, owner, "Hello")
	deliver(t, env, owner, "World")

	err := env.notifications.MarkRead(ctx, callerOf(admin), n.ID)
	assert.ErrorIs(t, err, services.ErrNotificationNotFound)

	require.NoError(t, env.notifications.MarkRead(ctx, callerOf(owner), n.ID))
	require.NoError(t, env.notifications.MarkRead(ctx, callerOf(owner), n.ID))

	count, err := env.notifications.UnreadCount(ctx, callerOf(owner))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	affected, err := env.notifications.MarkAllRead(ctx, callerOf(owner))
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	count, err = env.notifications.UnreadCount(ctx, callerOf(owner))
	require.NoError(t, err)
	assert.Zero(t, count)

	list, err := env.notifications.ListNotifications(ctx, callerOf(admin))
	require.NoError(t, err)
	assert.Empty(t, list)
}
