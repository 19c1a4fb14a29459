package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository owns storage access for accounts. Email lookup is global
// (login happens before any tenant context exists); everything else is
// scoped by the user's own id.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
