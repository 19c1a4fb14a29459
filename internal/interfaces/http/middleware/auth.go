package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gestor/backend/internal/infrastructure/auth"
	"github.com/gestor/backend/internal/infrastructure/logger"
	"github.com/gestor/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context keys populated by the auth middleware.
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTTenantIDKey = "jwt_tenant_id"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// TokenRevocationChecker reports whether a token that passed signature
// validation has since been revoked by a logout or a password change.
type TokenRevocationChecker interface {
	IsTokenRevoked(ctx context.Context, claims *auth.Claims) (bool, error)
}

// AuthConfig holds configuration for the auth middleware
type AuthConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// Revocation is optional; when nil, revocation is not checked
	Revocation TokenRevocationChecker
	// SkipPaths are exact paths that don't require authentication
	SkipPaths []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// Auth creates JWT authentication middleware. Requests to skip paths pass
// through untouched; everything else needs a valid, unrevoked bearer token.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, "Missing token")
			return
		}

		claims, err := cfg.JWTService.ValidateToken(tokenString)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		if cfg.Revocation != nil {
			revoked, err := cfg.Revocation.IsTokenRevoked(c.Request.Context(), claims)
			if err != nil {
				// Fail open: a blacklist outage must not take the API down.
				if cfg.Logger != nil {
					cfg.Logger.Error("Failed to check token revocation",
						zap.String("jti", claims.ID),
						zap.Error(err))
				}
			} else if revoked {
				abortUnauthorized(c, "Token has been revoked")
				return
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTTenantIDKey, claims.TenantID)

		// Stamp the resolved identity onto the request context so the
		// context logger and the access-log entry carry it.
		ctx, ctxLogger := logger.WithTenantID(c.Request.Context(),
			logger.FromContext(c.Request.Context()), claims.TenantID)
		ctx, _ = logger.WithUserID(ctx, ctxLogger, claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	requestID := c.GetString(RequestIDKey)
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, requestID))
}

// GetClaims returns the validated claims set by the auth middleware.
func GetClaims(c *gin.Context) *auth.Claims {
	if v, exists := c.Get(JWTClaimsKey); exists {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetTenantID returns the authenticated tenant ID from the request context.
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	if v, exists := c.Get(JWTTenantIDKey); exists {
		if s, ok := v.(string); ok {
			if id, err := uuid.Parse(s); err == nil && id != uuid.Nil {
				return id, true
			}
		}
	}
	return uuid.Nil, false
}

// GetUserID returns the authenticated user ID from the request context.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	if v, exists := c.Get(JWTUserIDKey); exists {
		if s, ok := v.(string); ok {
			if id, err := uuid.Parse(s); err == nil && id != uuid.Nil {
				return id, true
			}
		}
	}
	return uuid.Nil, false
}
