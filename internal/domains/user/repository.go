package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the account+profile data access layer. Creates and
// deletes move both rows together.
type Repository interface {
	Create(ctx context.Context, account *Account, profile *Profile) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindAccountByEmail(ctx context.Context, email string) (*Account, error)

	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, profile *Profile) error

	// UpdateCredentials changes email and/or password hash; nil fields
	// are left untouched.
	UpdateCredentials(ctx context.Context, id uuid.UUID, email, passwordHash *string) error

	// ListUsers joins identities with profile name/role.
	ListUsers(ctx context.Context) ([]AdminUser, error)

	// Delete removes the identity and the profile row.
	Delete(ctx context.Context, id uuid.UUID) error
}
