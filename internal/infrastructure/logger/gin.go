package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GinMiddleware returns the access-log middleware. It builds a
// request-scoped logger keyed by request id, plants it in both the gin
// context and the request context (so repositories and services reach it
// through L(ctx)), and emits one entry per request. Tenant and user
// identity resolved later in the chain by the auth middleware is read back
// from the request context when the entry is written.
func GinMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		// Set by the RequestID middleware, which runs first.
		requestID := c.GetString("request_id")

		reqLogger := logger.With(
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
		)
		c.Set("logger", reqLogger)

		ctx, _ := WithRequestID(c.Request.Context(), reqLogger, requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Int("body_size", c.Writer.Size()),
		}
		if query != "" {
			fields = append(fields, zap.String("query", query))
		}
		// The auth middleware enriches the request context once the bearer
		// token is validated; unauthenticated routes simply omit these.
		if tenantID := GetTenantID(c.Request.Context()); tenantID != "" {
			fields = append(fields, zap.String("tenant_id", tenantID))
		}
		if userID := GetUserID(c.Request.Context()); userID != "" {
			fields = append(fields, zap.String("user_id", userID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		msg := "HTTP Request"
		switch {
		case status >= 500:
			reqLogger.Error(msg, fields...)
		case status >= 400:
			reqLogger.Warn(msg, fields...)
		default:
			reqLogger.Info(msg, fields...)
		}
	}
}

// Recovery returns a gin middleware that recovers from panics and logs them
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				fields := []zap.Field{
					zap.String("request_id", c.GetString("request_id")),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", err),
					zap.Stack("stacktrace"),
				}
				if tenantID := GetTenantID(c.Request.Context()); tenantID != "" {
					fields = append(fields, zap.String("tenant_id", tenantID))
				}
				logger.Error("Panic recovered", fields...)

				c.AbortWithStatus(500)
			}
		}()
		c.Next()
	}
}

// GetGinLogger retrieves the logger from gin context
func GetGinLogger(c *gin.Context) *zap.Logger {
	if logger, exists := c.Get("logger"); exists {
		if l, ok := logger.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}
