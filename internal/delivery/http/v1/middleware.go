package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/adanyl0v/taskflow/internal/access"
	"github.com/adanyl0v/taskflow/internal/services"
)

const (
	userIDCtxKey    = "user_id"
	sessionIDCtxKey = "session_id"
	callerCtxKey    = "caller"
)

// accessToken reads the bearer token, falling back to the cookie.
func accessToken(c *gin.Context) (string, bool) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		token, err := c.Cookie(accessTokenCookie)
		return token, err == nil && token != ""
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	token, ok := accessToken(c)
	if !ok {
		h.logger.Warn().Msg("access token required")
		abort(c, newUnauthorizedError(services.ErrUnauthorized.Error()))
		return
	}

	claims, err := h.auth.ParseJWTToken(token)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			h.logger.Warn().
				Err(err).
				Msg("failed to parse token")
			abort(c, newUnauthorizedError(services.ErrUnauthorized.Error()))
			return
		}

		if !h.refresh(c) {
			return
		}

		token = c.GetString(accessTokenCtxKey)
		claims, err = h.auth.ParseJWTToken(token)
		if err != nil {
			h.logger.Error().
				Err(err).
				Msg("failed to parse fresh token")
			abort(c, newUnauthorizedError(services.ErrUnauthorized.Error()))
			return
		}
	}

	session, err := h.sessions.GetSessionByID(c, claims.Subject)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			h.logger.Warn().
				Str("session_id", claims.Subject).
				Msg("session not found")
			abort(c, newUnauthorizedError(services.ErrSessionNotFound.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to fetch session")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	browserFingerprint, err := generateFingerprint(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to generate fingerprint")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	if browserFingerprint != session.Fingerprint {
		h.logger.Warn().
			Str("session_id", session.ID).
			Msg("fingerprint mismatch")
		abort(c, newUnauthorizedError(services.ErrUnauthorized.Error()))
		return
	}

	caller, err := h.users.GetCaller(c, session.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			abort(c, newUnauthorizedError(services.ErrUnauthorized.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Str("user_id", session.UserID).
			Msg("failed to load caller")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.Set(userIDCtxKey, session.UserID)
	c.Set(sessionIDCtxKey, session.ID)
	c.Set(callerCtxKey, caller)
	c.Next()
}

// callerFrom returns the caller stored by HandleAuthMiddleware.
func callerFrom(c *gin.Context) access.Caller {
	caller, _ := c.MustGet(callerCtxKey).(access.Caller)
	return caller
}
