package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"news-portal-backend/internal/domains/ad/model"
)

type AdRepository interface {
	ListBySlots(ctx context.Context, slots []string) ([]model.Ad, error)
	Upsert(ctx context.Context, ad *model.Ad) error
}

type postgresAdRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresAdRepository(pool *pgxpool.Pool) AdRepository {
	return &postgresAdRepository{pool: pool}
}

func (r *postgresAdRepository) ListBySlots(ctx context.Context, slots []string) ([]model.Ad, error) {
	query := `
		SELECT slot_name, image_url, redirect_url, updated_at
		FROM ads
		WHERE slot_name = ANY($1)
		ORDER BY slot_name
	`

	rows, err := r.pool.Query(ctx, query, slots)
	if err != nil {
		return nil, fmt.Errorf("failed to list ads: %w", err)
	}
	defer rows.Close()

	ads := make([]model.Ad, 0, len(slots))
	for rows.Next() {
		var a model.Ad
		if err := rows.Scan(&a.SlotName, &a.ImageURL, &a.RedirectURL, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ad: %w", err)
		}
		ads = append(ads, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ads: %w", err)
	}

	return ads, nil
}

// Upsert creates the slot row on first use and replaces it afterwards.
func (r *postgresAdRepository) Upsert(ctx context.Context, ad *model.Ad) error {
	query := `
		INSERT INTO ads (slot_name, image_url, redirect_url, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (slot_name) DO UPDATE SET
			image_url = EXCLUDED.image_url,
			redirect_url = EXCLUDED.redirect_url,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query, ad.SlotName, ad.ImageURL, ad.RedirectURL, ad.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert ad: %w", err)
	}

	return nil
}
