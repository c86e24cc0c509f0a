package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string              `json:"status"`
	Code    int                 `json:"code"`
	Message string              `json:"message,omitempty"`
	TraceID string              `json:"trace_id,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

const loggerKey = "logger"

// SetRequestLogger stores a request scoped logger on the gin context.
func SetRequestLogger(c *gin.Context, log *zap.Logger) {
	c.Set(loggerKey, log)
}

// RequestLogger returns the request scoped logger, or a no-op logger when
// the logging middleware is not installed.
func RequestLogger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if log, ok := v.(*zap.Logger); ok {
			return log
		}
	}
	return zap.NewNop()
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusCreated, data, message)
}

func RespondWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

func RespondFieldErrors(c *gin.Context, code int, message string, fields map[string][]string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
		Errors:  fields,
	})
}

func HandleServiceError(c *gin.Context, err error) {
	var validation *ValidationError

	switch {
	case errors.As(err, &validation):
		message := "Validation failed"
		if validation.Conflict {
			message = "Conflict"
		}
		RespondFieldErrors(c, http.StatusBadRequest, message, validation.Fields)
	case errors.Is(err, ErrNotFound):
		RespondError(c, http.StatusNotFound, "Not found")
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "No active account found with the given credentials")
	case errors.Is(err, ErrAccountNotAuthorized):
		RespondError(c, http.StatusForbidden, "Account is not allowed to log in")
	case errors.Is(err, ErrInvalidToken):
		RespondError(c, http.StatusUnauthorized, "Token is invalid or expired")
	case errors.Is(err, ErrUnauthenticated):
		RespondError(c, http.StatusUnauthorized, "Authentication credentials were not provided")
	case errors.Is(err, ErrForbidden):
		RespondError(c, http.StatusForbidden, "You do not have permission to perform this action")
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
	case errors.Is(err, ErrDatabaseError), errors.Is(err, ErrStorage):
		RequestLogger(c).Error("service failure", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		RequestLogger(c).Error("unhandled service error", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
