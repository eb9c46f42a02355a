package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"news-portal-backend/internal/domains/user"
	"news-portal-backend/pkg/database"
)

type postgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresUserRepository{pool: pool}
}

// Create inserts the identity and its profile in one transaction, so a
// half-created user can never exist.
func (r *postgresUserRepository) Create(ctx context.Context, account *user.Account, profile *user.Profile) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO accounts (id, email, password_hash, created_at)
			VALUES ($1, $2, $3, $4)
		`, account.ID, account.Email, account.PasswordHash, account.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return user.ErrEmailAlreadyExists
			}
			return fmt.Errorf("failed to create account: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO profiles (id, full_name, role, avatar_url, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, profile.ID, profile.FullName, profile.Role, profile.AvatarURL, profile.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}

		return nil
	})
}

func (r *postgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE LOWER(email) = LOWER($1))`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (r *postgresUserRepository) FindAccountByEmail(ctx context.Context, email string) (*user.Account, error) {
	account := &user.Account{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM accounts
		WHERE LOWER(email) = LOWER($1)
	`, email).Scan(&account.ID, &account.Email, &account.PasswordHash, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	return account, nil
}

func (r *postgresUserRepository) GetProfile(ctx context.Context, id uuid.UUID) (*user.Profile, error) {
	profile := &user.Profile{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, full_name, role, avatar_url, created_at
		FROM profiles
		WHERE id = $1
	`, id).Scan(&profile.ID, &profile.FullName, &profile.Role, &profile.AvatarURL, &profile.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (r *postgresUserRepository) UpdateProfile(ctx context.Context, profile *user.Profile) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE profiles SET full_name = $2, role = $3, avatar_url = $4
		WHERE id = $1
	`, profile.ID, profile.FullName, profile.Role, profile.AvatarURL)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrProfileNotFound
	}
	return nil
}

func (r *postgresUserRepository) UpdateCredentials(ctx context.Context, id uuid.UUID, email, passwordHash *string) error {
	if email == nil && passwordHash == nil {
		return nil
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE accounts SET
			email = COALESCE($2, email),
			password_hash = COALESCE($3, password_hash)
		WHERE id = $1
	`, id, email, passwordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to update credentials: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *postgresUserRepository) ListUsers(ctx context.Context) ([]user.AdminUser, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.email, COALESCE(p.full_name, '-'), COALESCE(p.role, '-')
		FROM accounts a
		LEFT JOIN profiles p ON p.id = a.id
		ORDER BY a.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]user.AdminUser, 0)
	for rows.Next() {
		var u user.AdminUser
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.Role); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}

	return users, nil
}

// Delete removes the identity and profile together.
func (r *postgresUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return user.ErrUserNotFound
		}
		return nil
	})
}
