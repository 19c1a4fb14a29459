package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContextAndFromContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestFromContextReturnsNopWhenMissing(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	// No-op logger must be safe to use
	logger.Info("ignored")
}

func TestWithRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx, enriched := WithRequestID(context.Background(), zap.New(core), "req-123")

	assert.Equal(t, "req-123", GetRequestID(ctx))
	enriched.Info("hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-123", logs.All()[0].ContextMap()["request_id"])
}

func TestWithTenantID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx, enriched := WithTenantID(context.Background(), zap.New(core), "tenant-42")

	assert.Equal(t, "tenant-42", GetTenantID(ctx))
	enriched.Info("hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "tenant-42", logs.All()[0].ContextMap()["tenant_id"])
}

func TestWithUserID(t *testing.T) {
	ctx, _ := WithUserID(context.Background(), zap.NewNop(), "user-7")
	assert.Equal(t, "user-7", GetUserID(ctx))
}

func TestGettersReturnEmptyWhenMissing(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetTenantID(ctx))
	assert.Empty(t, GetUserID(ctx))
}

func TestLEnrichesFromContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := WithContext(context.Background(), zap.New(core))
	ctx = context.WithValue(ctx, RequestIDKey, "req-9")
	ctx = context.WithValue(ctx, TenantIDKey, "tenant-9")

	L(ctx).Info("scoped")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-9", fields["request_id"])
	assert.Equal(t, "tenant-9", fields["tenant_id"])
	assert.NotContains(t, fields, "user_id")
}
