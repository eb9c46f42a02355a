package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"news-portal-backend/internal/domains/user"
	"news-portal-backend/pkg/jwt"
)

type fakeUserRepository struct {
	accounts map[string]*user.Account
	profiles map[uuid.UUID]*user.Profile

	createdAccount *user.Account
	createdProfile *user.Profile
	deletedID      uuid.UUID
}

var _ user.Repository = (*fakeUserRepository)(nil)

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		accounts: map[string]*user.Account{},
		profiles: map[uuid.UUID]*user.Profile{},
	}
}

func (f *fakeUserRepository) seed(email, password, role string) *user.Account {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	id := uuid.New()
	account := &user.Account{ID: id, Email: email, PasswordHash: string(hash), CreatedAt: time.Now()}
	f.accounts[email] = account
	f.profiles[id] = &user.Profile{ID: id, FullName: "Seeded User", Role: role, CreatedAt: time.Now()}
	return account
}

func (f *fakeUserRepository) Create(ctx context.Context, account *user.Account, profile *user.Profile) error {
	f.createdAccount = account
	f.createdProfile = profile
	f.accounts[account.Email] = account
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := f.accounts[email]
	return ok, nil
}

func (f *fakeUserRepository) FindAccountByEmail(ctx context.Context, email string) (*user.Account, error) {
	account, ok := f.accounts[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return account, nil
}

func (f *fakeUserRepository) GetProfile(ctx context.Context, id uuid.UUID) (*user.Profile, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return nil, user.ErrProfileNotFound
	}
	return profile, nil
}

func (f *fakeUserRepository) UpdateProfile(ctx context.Context, profile *user.Profile) error {
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeUserRepository) UpdateCredentials(ctx context.Context, id uuid.UUID, email, passwordHash *string) error {
	return nil
}

func (f *fakeUserRepository) ListUsers(ctx context.Context) ([]user.AdminUser, error) {
	users := make([]user.AdminUser, 0, len(f.accounts))
	for _, a := range f.accounts {
		p := f.profiles[a.ID]
		users = append(users, user.AdminUser{ID: a.ID, Email: a.Email, FullName: p.FullName, Role: p.Role})
	}
	return users, nil
}

func (f *fakeUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	f.deletedID = id
	return nil
}

type fakeAvatarUploader struct {
	lastKey string
	err     error
}

func (f *fakeAvatarUploader) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	f.lastKey = key
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example.com/" + key, nil
}

func newTestService(repo user.Repository) user.Service {
	return NewUserService(repo, jwt.NewManager("test-secret", time.Hour), &fakeAvatarUploader{})
}

func TestRegisterCreatesAccountAndProfile(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestService(repo)

	profile, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:    "Budi@Example.com",
		Password: "rahasia123",
		FullName: "Budi Santoso",
	})
	require.NoError(t, err)

	assert.Equal(t, "Budi Santoso", profile.FullName)
	assert.Equal(t, user.RoleUser, profile.Role)

	require.NotNil(t, repo.createdAccount)
	require.NotNil(t, repo.createdProfile)
	// Identity and profile share one id.
	assert.Equal(t, repo.createdAccount.ID, repo.createdProfile.ID)
	assert.Equal(t, "budi@example.com", repo.createdAccount.Email)
	// Never the raw password.
	assert.NotEqual(t, "rahasia123", repo.createdAccount.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(repo.createdAccount.PasswordHash), []byte("rahasia123")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepository()
	repo.seed("budi@example.com", "x", user.RoleUser)
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Email:    "budi@example.com",
		Password: "rahasia123",
		FullName: "Budi",
	})
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestLoginReturnsTokenWithRole(t *testing.T) {
	repo := newFakeUserRepository()
	repo.seed("admin@example.com", "rahasia123", user.RoleAdmin)
	svc := newTestService(repo)

	resp, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "admin@example.com",
		Password: "rahasia123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := jwt.NewManager("test-secret", time.Hour).ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, claims.Role)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestLoginHidesWhetherEmailExists(t *testing.T) {
	repo := newFakeUserRepository()
	repo.seed("budi@example.com", "rahasia123", user.RoleUser)
	svc := newTestService(repo)

	_, wrongPassword := svc.Login(context.Background(), user.LoginRequest{
		Email:    "budi@example.com",
		Password: "salah",
	})
	_, unknownEmail := svc.Login(context.Background(), user.LoginRequest{
		Email:    "tidakada@example.com",
		Password: "rahasia123",
	})

	// Both failure modes collapse into the same error.
	assert.ErrorIs(t, wrongPassword, user.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, user.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestUploadAvatarPersistsURLOnProfile(t *testing.T) {
	repo := newFakeUserRepository()
	account := repo.seed("budi@example.com", "rahasia123", user.RoleUser)
	uploader := &fakeAvatarUploader{}
	svc := NewUserService(repo, jwt.NewManager("test-secret", time.Hour), uploader)

	url, err := svc.UploadAvatar(context.Background(), account.ID, "me.png", []byte("img"), "image/png")
	require.NoError(t, err)

	assert.Contains(t, uploader.lastKey, "avatars/")
	assert.Contains(t, uploader.lastKey, account.ID.String())

	profile, err := repo.GetProfile(context.Background(), account.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.AvatarURL)
	assert.Equal(t, url, *profile.AvatarURL)
}

func TestCreateUserDefaultsRole(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestService(repo)

	created, err := svc.CreateUser(context.Background(), user.AdminCreateUserRequest{
		Email:    "redaksi@example.com",
		Password: "rahasia123",
		FullName: "Redaksi",
	})
	require.NoError(t, err)
	assert.Equal(t, user.RoleUser, created.Role)
}
