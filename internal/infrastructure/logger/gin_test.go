package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGinMiddlewareLogsRequest(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping?q=1", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zap.InfoLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, "/ping", fields["path"])
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "q=1", fields["query"])
}

func TestGinMiddlewareEmitsRequestIdentity(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "req-42")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core)))
	// Downstream identity enrichment, the way the auth middleware does it
	// after validating the bearer token.
	router.Use(func(c *gin.Context) {
		ctx, ctxLogger := WithTenantID(c.Request.Context(), FromContext(c.Request.Context()), "tenant-1")
		ctx, _ = WithUserID(ctx, ctxLogger, "user-1")
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	var handlerCtxRequestID string
	router.GET("/clients", func(c *gin.Context) {
		handlerCtxRequestID = GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clients", nil))

	// The access-log middleware planted the request id in the request
	// context before the handler ran.
	assert.Equal(t, "req-42", handlerCtxRequestID)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.Equal(t, "tenant-1", fields["tenant_id"])
	assert.Equal(t, "user-1", fields["user_id"])
}

func TestGinMiddlewareWarnsOnClientError(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zap.WarnLevel, logs.All()[0].Level)
}

func TestGinMiddlewareErrorsOnServerError(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zap.ErrorLevel, logs.All()[0].Level)
}

func TestRecoveryMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) {
		panic("unexpected")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Panic recovered", logs.All()[0].Message)
}

func TestGetGinLogger(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	// Missing logger falls back to no-op
	require.NotNil(t, GetGinLogger(c))

	logger := zap.NewNop()
	c.Set("logger", logger)
	assert.Same(t, logger, GetGinLogger(c))
}
