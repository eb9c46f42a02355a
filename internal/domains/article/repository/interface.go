package repository

import (
	"context"

	"github.com/google/uuid"

	"news-portal-backend/internal/domains/article/model"
)

// ArticleRepository is the article store access layer.
type ArticleRepository interface {
	// List returns one page of the filtered, reverse-chronological feed
	// plus the exact total row count for the same filter.
	List(ctx context.Context, f model.FeedFilter) ([]model.Article, int, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.Article, error)

	// Related returns the latest published articles sharing a category,
	// excluding the article itself.
	Related(ctx context.Context, id uuid.UUID, category string, limit int) ([]model.Article, error)

	Create(ctx context.Context, a *model.Article) error
	Update(ctx context.Context, a *model.Article) error
	Delete(ctx context.Context, id uuid.UUID) error
}
