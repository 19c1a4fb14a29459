package auth

import (
	"testing"
	"time"

	"github.com/gestor/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	cfg := config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test-issuer",
	}
	return NewJWTService(cfg)
}

func newTestInput() GenerateTokenInput {
	return GenerateTokenInput{
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Email:    "user@example.com",
	}
}

func TestNewJWTService(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:                "test-secret",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test-issuer",
	}

	svc := NewJWTService(cfg)

	assert.NotNil(t, svc)
	assert.Equal(t, []byte(cfg.Secret), svc.secret)
	assert.Equal(t, cfg.AccessTokenExpiration, svc.expiration)
	assert.Equal(t, cfg.Issuer, svc.issuer)
}

func TestGenerateToken(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	token, err := svc.GenerateToken(input)

	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.True(t, token.ExpiresAt.After(time.Now()))
}

func TestValidateToken_Success(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	token, err := svc.GenerateToken(input)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token.AccessToken)

	require.NoError(t, err)
	assert.Equal(t, input.TenantID.String(), claims.TenantID)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, input.Email, claims.Email)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken_ExpiredToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: -1 * time.Hour, // Already expired
		Issuer:                "test-issuer",
	}
	svc := NewJWTService(cfg)
	input := newTestInput()

	token, err := svc.GenerateToken(input)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token.AccessToken)

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_InvalidToken(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.ValidateToken("invalid-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_DifferentSecret(t *testing.T) {
	svc1 := newTestJWTService()
	input := newTestInput()

	token, err := svc1.GenerateToken(input)
	require.NoError(t, err)

	cfg := config.JWTConfig{
		Secret:                "different-secret-key-32-chars!!!",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test-issuer",
	}
	svc2 := NewJWTService(cfg)

	_, err = svc2.ValidateToken(token.AccessToken)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClaims_GetTenantUUID(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	token, err := svc.GenerateToken(input)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)

	tenantUUID, err := claims.GetTenantUUID()

	require.NoError(t, err)
	assert.Equal(t, input.TenantID, tenantUUID)
}

func TestClaims_GetUserUUID(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	token, err := svc.GenerateToken(input)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)

	userUUID, err := claims.GetUserUUID()

	require.NoError(t, err)
	assert.Equal(t, input.UserID, userUUID)
}

func TestClaims_GetRemainingTTL(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	token, err := svc.GenerateToken(input)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)

	ttl := claims.GetRemainingTTL()
	assert.Greater(t, ttl, 14*time.Minute)
	assert.LessOrEqual(t, ttl, 15*time.Minute)
}

func TestClaims_GetRemainingTTL_NoExpiry(t *testing.T) {
	claims := &Claims{}
	assert.Equal(t, time.Duration(0), claims.GetRemainingTTL())
}
