package user

import (
	"context"

	"github.com/google/uuid"
)

// Service is the user business logic layer.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Profile, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*Profile, error)
	UploadAvatar(ctx context.Context, id uuid.UUID, filename string, data []byte, contentType string) (string, error)

	// Admin user API.
	ListUsers(ctx context.Context) ([]AdminUser, error)
	CreateUser(ctx context.Context, req AdminCreateUserRequest) (*AdminUser, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req AdminUpdateUserRequest) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
