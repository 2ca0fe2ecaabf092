package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ssuzuki/toukidocs/internal/logger"
)

// Logger records one structured entry per request and stores a
// request-scoped logger in the context for the handlers.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestLogger := log.WithRequestID(GetRequestID(c))
		c.Set("logger", requestLogger)

		c.Next()

		fields := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"ip":          c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if len(c.Request.URL.RawQuery) > 0 {
			fields["query"] = c.Request.URL.RawQuery
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			requestLogger.Error("Request completed with server error", nil, fields)
		case status >= 400:
			requestLogger.Warn("Request completed with client error", fields)
		default:
			requestLogger.Info("Request completed", fields)
		}
	}
}

// GetLogger retrieves the request-scoped logger from the gin context.
// Returns nil when the middleware did not run.
func GetLogger(c *gin.Context) *logger.Logger {
	if v, exists := c.Get("logger"); exists {
		if log, ok := v.(*logger.Logger); ok {
			return log
		}
	}
	return nil
}
