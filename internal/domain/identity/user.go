package identity

import (
	"regexp"
	"strings"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User is an account holder. Each registered account owns its own tenant
// partition; the tenant identifier issued at registration is embedded in
// every token minted for the user.
type User struct {
	shared.TenantAggregateRoot
	Name         string
	Email        string
	PasswordHash string
	Status       UserStatus
}

var userEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// NewUser creates a new account with a freshly minted tenant partition.
func NewUser(name, email, passwordHash string) (*User, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !userEmailRegex.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}

	return &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(uuid.New()),
		Name:                name,
		Email:               email,
		PasswordHash:        passwordHash,
		Status:              UserStatusActive,
	}, nil
}

// SetPasswordHash replaces the stored credential hash.
func (u *User) SetPasswordHash(hash string) {
	u.PasswordHash = hash
	u.Touch()
}

// IsActive returns true if the account is active
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
