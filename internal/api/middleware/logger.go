package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

const slogLoggerKey = "slogLogger"

// SlogLoggerMiddleware stores a request-scoped logger carrying the
// correlation ID and workspace, and logs one line per finished request.
func SlogLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		requestLogger := logger.With(
			slog.String("correlation_id", GetCorrelationID(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
		)
		c.Set(slogLoggerKey, requestLogger)

		start := time.Now()
		c.Next()

		attrs := []any{
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		}
		if ws := GetWorkspace(c); ws != "" {
			attrs = append(attrs, slog.String("workspace", ws))
		}
		if c.Writer.Status() >= 500 {
			LoggerFromContext(c).Error("request completed", attrs...)
			return
		}
		LoggerFromContext(c).Info("request completed", attrs...)
	}
}

// LoggerFromContext returns the request logger, or slog.Default outside a request.
func LoggerFromContext(c *gin.Context) *slog.Logger {
	if value, ok := c.Get(slogLoggerKey); ok {
		if logger, ok := value.(*slog.Logger); ok {
			return logger
		}
	}
	return slog.Default()
}
