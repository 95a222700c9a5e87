package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/taskflow/internal/models"
	"github.com/adanyl0v/taskflow/internal/services"
)

const fingerprint = `{"client_ip":"127.0.0.1","user_agent":"test"}`

func TestRegisterLoginRefreshLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	registered, err := env.auth.Register(ctx, services.RegisterParams{
		FirstName:   "Una",
		LastName:    "Tester",
		Email:       " Una@Example.com ",
		Password:    "secret123",
		Fingerprint: fingerprint,
	})
	require.NoError(t, err)

	user, err := env.users.GetUser(ctx, registered.UserID)
	require.NoError(t, err)
	assert.Equal(t, "una@example.com", user.Email)
	assert.Equal(t, models.NewRoleSet(models.RoleMember), user.Roles)

	claims, err := env.auth.ParseJWTToken(registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.SessionID, claims.Subject)

	_, err = env.auth.Register(ctx, services.RegisterParams{
		Email:       "una@example.com",
		Password:    "secret123",
		Fingerprint: fingerprint,
	})
	assert.ErrorIs(t, err, services.ErrUserAlreadyExists)

	_, err = env.auth.Login(ctx, services.LoginParams{Email: "una@example.com", Password: "wrong", Fingerprint: fingerprint})
	assert.ErrorIs(t, err, services.ErrUserPasswordMismatch)
	_, err = env.auth.Login(ctx, services.LoginParams{Email: "nobody@example.com", Password: "x", Fingerprint: fingerprint})
	assert.ErrorIs(t, err, services.ErrUserNotFound)

	loggedIn, err := env.auth.Login(ctx, services.LoginParams{Email: "UNA@example.com", Password: "secret123", Fingerprint: fingerprint})
	require.NoError(t, err)
	assert.NotEqual(t, registered.SessionID, loggedIn.SessionID)

	_, err = env.auth.Refresh(ctx, services.RefreshParams{RefreshToken: registered.RefreshToken, Fingerprint: fingerprint})
	assert.ErrorIs(t, err, services.ErrSessionNotFound)

	_, err = env.auth.Refresh(ctx, services.RefreshParams{RefreshToken: loggedIn.RefreshToken, Fingerprint: "other"})
	assert.ErrorIs(t, err, services.ErrSessionNotFound)

	refreshed, err := env.auth.Refresh(ctx, services.RefreshParams{RefreshToken: loggedIn.RefreshToken, Fingerprint: fingerprint})
	require.NoError(t, err)
	assert.Equal(t, loggedIn.SessionID, refreshed.SessionID)
	assert.NotEqual(t, loggedIn.RefreshToken, refreshed.RefreshToken)

	require.NoError(t, env.auth.Logout(ctx, registered.UserID))
	_, err = env.auth.Refresh(ctx, services.RefreshParams{RefreshToken: refreshed.RefreshToken, Fingerprint: fingerprint})
	assert.ErrorIs(t, err, services.ErrSessionNotFound)
}

func TestParseJWTToken_RejectsForeignTokens(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.auth.ParseJWTToken("not-a-token")
	assert.Error(t, err)
}
