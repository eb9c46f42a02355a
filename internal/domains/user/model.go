package user

import (
	"time"

	"github.com/google/uuid"
)

// Roles. The original data also allowed for an editor role but nothing
// ever gates on it; authorization checks admin only.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account is the auth identity: what the hosted auth service used to
// own. One account has exactly one profile.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the public-facing identity attached to an account.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminUser is the identity-joined-with-profile row the admin console
// lists.
type AdminUser struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
}
