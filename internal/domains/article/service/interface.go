package service

import (
	"context"

	"github.com/google/uuid"

	"news-portal-backend/internal/domains/article/model"
)

// ServiceInterface is the article business logic layer.
type ServiceInterface interface {
	// ListFeed serves public listing pages. Store errors are logged and
	// surfaced as an empty page, not propagated.
	ListFeed(ctx context.Context, req model.ListArticlesRequest) (model.FeedResponse, error)

	GetDetail(ctx context.Context, id uuid.UUID) (*model.Article, error)
	Related(ctx context.Context, id uuid.UUID) ([]model.Article, error)

	// Admin surface: drafts visible, errors propagated.
	ListAll(ctx context.Context, req model.ListArticlesRequest) (model.FeedResponse, error)
	Create(ctx context.Context, authorID uuid.UUID, req model.CreateArticleRequest) (*model.Article, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateArticleRequest) (*model.Article, error)
	Delete(ctx context.Context, id uuid.UUID) error

	UploadImage(ctx context.Context, uploaderID uuid.UUID, filename string, data []byte, contentType string) (string, error)
}

// Uploader is the slice of object storage the service needs.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
