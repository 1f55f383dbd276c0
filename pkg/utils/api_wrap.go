package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	TraceIDKey   = "trace_id"
	LoggerKey    = "logger"
	LanguageKey  = "lang"
	SessionIDKey = "session_id"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func TraceID(c *gin.Context) string { return c.GetString(TraceIDKey) }

func Language(c *gin.Context) string { return c.GetString(LanguageKey) }

// Logger returns the request scoped logger, or the global one outside a request.
func Logger(c *gin.Context) *zap.Logger {
	if l, ok := c.Get(LoggerKey); ok {
		if zl, ok := l.(*zap.Logger); ok {
			return zl
		}
	}
	return zap.L()
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: TraceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	RespondFailure(c, code, message, nil)
}

// RespondFailure is RespondError with a payload, used when the client still needs
// the current state (for example the wizard after a failed submission).
func RespondFailure(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: TraceID(c),
		Data:    data,
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrInvalidSession):
		RespondError(c, http.StatusNotFound, "Quote session not found, start a new one")
	case errors.Is(err, ErrPageNotFound):
		RespondError(c, http.StatusNotFound, "Page not found")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrConflict):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrMailRelay):
		Logger(c).Error("mail relay error", zap.Error(err))
		RespondError(c, http.StatusBadGateway, "Could not send the message")
	default:
		Logger(c).Error("unknown error", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
