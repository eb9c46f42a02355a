package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"news-portal-backend/internal/domains/user"
	"news-portal-backend/internal/infrastructure/storage"
	"news-portal-backend/pkg/jwt"
)

// Uploader is the slice of object storage the service needs for
// avatars.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type userService struct {
	repo       user.Repository
	jwtManager *jwt.Manager
	storage    Uploader
}

func NewUserService(repo user.Repository, jwtManager *jwt.Manager, storage Uploader) user.Service {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
		storage:    storage,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	// bcrypt cost 12 balances security and login latency.
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	id := uuid.New()

	account := &user.Account{
		ID:           id,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(passwordHash),
		CreatedAt:    now,
	}
	profile := &user.Profile{
		ID:        id,
		FullName:  req.FullName,
		Role:      user.RoleUser,
		CreatedAt: now,
	}

	if err := s.repo.Create(ctx, account, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	account, err := s.repo.FindAccountByEmail(ctx, req.Email)
	if err != nil {
		// Do not reveal whether the email exists.
		return nil, user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	profile, err := s.repo.GetProfile(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	token, err := s.jwtManager.GenerateToken(account.ID.String(), account.Email, profile.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &user.LoginResponse{
		Token:   token,
		Profile: *profile,
		Email:   account.Email,
	}, nil
}

// ========================================
// PROFILE
// ========================================

func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*user.Profile, error) {
	return s.repo.GetProfile(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, req user.UpdateProfileRequest) (*user.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	profile.FullName = req.FullName
	if req.AvatarURL != nil {
		profile.AvatarURL = req.AvatarURL
	}

	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// UploadAvatar stores the image and persists the resolved URL on the
// profile. The previous avatar object is left in place.
func (s *userService) UploadAvatar(ctx context.Context, id uuid.UUID, filename string, data []byte, contentType string) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}

	key := fmt.Sprintf("%s/%s_%d%s", storage.PrefixAvatars, id.String(), time.Now().Unix(), ext)

	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	profile, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return "", err
	}
	profile.AvatarURL = &url
	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		return "", err
	}

	return url, nil
}

// ========================================
// ADMIN USER API
// ========================================

func (s *userService) ListUsers(ctx context.Context) ([]user.AdminUser, error) {
	return s.repo.ListUsers(ctx)
}

func (s *userService) CreateUser(ctx context.Context, req user.AdminCreateUserRequest) (*user.AdminUser, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = user.RoleUser
	}

	now := time.Now()
	id := uuid.New()

	account := &user.Account{
		ID:           id,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(passwordHash),
		CreatedAt:    now,
	}
	profile := &user.Profile{
		ID:        id,
		FullName:  req.FullName,
		Role:      role,
		CreatedAt: now,
	}

	if err := s.repo.Create(ctx, account, profile); err != nil {
		return nil, err
	}

	return &user.AdminUser{
		ID:       id,
		Email:    account.Email,
		FullName: profile.FullName,
		Role:     profile.Role,
	}, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, req user.AdminUpdateUserRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	profile, err := s.repo.GetProfile(ctx, id)
	if err != nil {
		return err
	}

	if req.FullName != "" {
		profile.FullName = req.FullName
	}
	if req.Role != "" {
		profile.Role = req.Role
	}
	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		return err
	}

	// Credentials only when provided.
	var email, passwordHash *string
	if req.Email != "" {
		lowered := strings.ToLower(req.Email)
		email = &lowered
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		h := string(hashed)
		passwordHash = &h
	}

	return s.repo.UpdateCredentials(ctx, id, email, passwordHash)
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
