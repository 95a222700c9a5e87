package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskflow/internal/services"
)

var (
	errInvalidRequestBody      = errors.New("invalid request body")
	errInvalidQuery            = errors.New("invalid query parameters")
	errMandatoryCookieNotFound = errors.New("mandatory cookie not found")
	errFileRequired            = errors.New("multipart field \"file\" is required")
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

func newForbiddenError(message string) apiError {
	return newAPIError(http.StatusForbidden, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

func newConflictError(message string) apiError {
	return newAPIError(http.StatusConflict, message)
}

// newServiceError maps the service error taxonomy onto HTTP statuses.
// Unknown errors are reported as internal without leaking their text.
func newServiceError(err error) apiError {
	switch {
	case errors.Is(err, services.ErrValidation):
		return newBadRequestError(err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		return newUnauthorizedError(err.Error())
	case errors.Is(err, services.ErrForbidden):
		return newForbiddenError(err.Error())
	case errors.Is(err, services.ErrNotFound):
		return newNotFoundError(err.Error())
	case errors.Is(err, services.ErrUserAlreadyExists):
		return newConflictError(err.Error())
	default:
		return newStatusTextError(http.StatusInternalServerError)
	}
}

// fail logs err and aborts the request with the matching status.
func (h *handlerImpl) fail(c *gin.Context, err error, msg string) {
	apiErr := newServiceError(err)
	event := h.logger.Error()
	if apiErr.Code < http.StatusInternalServerError {
		event = h.logger.Warn()
	}
	event.Err(err).
		Str("path", c.FullPath()).
		Int("status", apiErr.Code).
		Msg(msg)
	abort(c, apiErr)
}
