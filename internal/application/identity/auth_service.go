package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/gestor/backend/internal/application/notification"
	"github.com/gestor/backend/internal/domain/identity"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrDuplicateEmail rejects a registration for an address that already has
// an account.
var ErrDuplicateEmail = shared.NewDomainError("DUPLICATE_EMAIL", "An account with this email already exists")

// AuthService handles registration, login and session lifecycle. Every
// registered account owns a fresh tenant partition minted by NewUser.
type AuthService struct {
	userRepo  identity.UserRepository
	hasher    *auth.PasswordHasher
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	emails    *notification.EmailService
	logger    *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo identity.UserRepository,
	hasher *auth.PasswordHasher,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	emails *notification.EmailService,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:  userRepo,
		hasher:    hasher,
		jwt:       jwtService,
		blacklist: blacklist,
		emails:    emails,
		logger:    logger,
	}
}

// Register creates an account with its own tenant partition and returns a
// first session token. The welcome email is fire-and-forget: a delivery
// failure is logged and never fails the registration.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PASSWORD", err.Error())
	}

	user, err := identity.NewUser(req.Name, email, hash)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.emails != nil {
		if err := s.emails.SendWelcome(ctx, user.Email, user.Name); err != nil {
			s.logger.Warn("welcome email failed after registration",
				zap.String("user_id", user.ID.String()),
				zap.Error(err))
		}
	}

	return s.issueToken(user)
}

// Login verifies the credentials and issues an access token. Unknown
// addresses, inactive accounts and wrong passwords all surface the same
// UNAUTHORIZED failure so login cannot be used to probe for accounts.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive() {
		return nil, shared.ErrUnauthorized
	}
	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		return nil, shared.ErrUnauthorized
	}

	return s.issueToken(user)
}

// Logout blacklists the presented token for its remaining lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.AddToBlacklist(ctx, claims.ID, ttl)
}

// Me returns the authenticated account.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ChangePassword replaces the stored credential after verifying the current
// one, then invalidates every token issued before the change.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(user.PasswordHash, req.CurrentPassword) {
		return shared.ErrUnauthorized
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return shared.NewDomainError("INVALID_PASSWORD", err.Error())
	}
	user.SetPasswordHash(hash)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	if err := s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), s.jwt.GetAccessTokenExpiration()); err != nil {
		s.logger.Warn("failed to invalidate existing sessions after password change",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}
	return nil
}

// IsTokenRevoked reports whether a validated token has been logged out or
// superseded by a password change. Used by the auth middleware.
func (s *AuthService) IsTokenRevoked(ctx context.Context, claims *auth.Claims) (bool, error) {
	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil || revoked {
		return revoked, err
	}
	if claims.IssuedAt == nil {
		return false, nil
	}
	return s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.IssuedAt.Time)
}

func (s *AuthService) issueToken(user *identity.User) (*AuthResponse, error) {
	token, err := s.jwt.GenerateToken(auth.GenerateTokenInput{
		TenantID: user.TenantID,
		UserID:   user.ID,
		Email:    user.Email,
	})
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token: token,
		User:  ToUserResponse(user),
	}, nil
}
