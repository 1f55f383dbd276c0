package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"freightline/pkg/utils"
)

// TraceIDMiddleware tags the request with a trace id and a logger carrying it.
// An incoming X-Trace-ID is kept when it is a valid uuid.
func TraceIDMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Trace-ID")
		if _, err := uuid.Parse(traceID); err != nil {
			traceID = uuid.New().String()
		}
		c.Set(utils.TraceIDKey, traceID)
		c.Set(utils.LoggerKey, log.With(zap.String("trace_id", traceID)))
		c.Writer.Header().Set("X-Trace-ID", traceID)
		c.Next()
	}
}
