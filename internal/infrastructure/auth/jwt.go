package auth

import (
	"errors"
	"time"

	"github.com/gestor/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingTenantID  = errors.New("missing tenant_id in claims")
	ErrMissingUserID    = errors.New("missing user_id in claims")
	ErrTokenBlacklisted = errors.New("token has been revoked")
)

// Claims represents custom JWT claims carried by access tokens
type Claims struct {
	jwt.RegisteredClaims
	TenantID string `json:"tenant_id"`
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
}

// Token represents an issued access token
type Token struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"` // Bearer
}

// JWTService handles JWT token operations
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.AccessTokenExpiration,
		issuer:     cfg.Issuer,
	}
}

// GenerateTokenInput contains input for token generation
type GenerateTokenInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Email    string
}

// GenerateToken generates a signed access token
func (s *JWTService) GenerateToken(input GenerateTokenInput) (*Token, error) {
	now := time.Now()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   input.UserID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		TenantID: input.TenantID.String(),
		UserID:   input.UserID.String(),
		Email:    input.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &Token{
		AccessToken: signed,
		ExpiresAt:   now.Add(s.expiration),
		TokenType:   "Bearer",
	}, nil
}

// ValidateToken validates an access token and returns its claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if claims.TenantID == "" {
		return nil, ErrMissingTenantID
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}

	return claims, nil
}

// GetTenantUUID extracts and parses the tenant ID from claims
func (c *Claims) GetTenantUUID() (uuid.UUID, error) {
	return uuid.Parse(c.TenantID)
}

// GetUserUUID extracts and parses the user ID from claims
func (c *Claims) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// GetRemainingTTL returns the remaining time until the token expires
func (c *Claims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	remaining := time.Until(c.ExpiresAt.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// GetAccessTokenExpiration returns the access token expiration duration
func (s *JWTService) GetAccessTokenExpiration() time.Duration {
	return s.expiration
}
