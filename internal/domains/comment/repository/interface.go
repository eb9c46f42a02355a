package repository

import (
	"context"

	"github.com/google/uuid"

	"news-portal-backend/internal/domains/comment/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error

	// ListByArticle returns comments in creation order.
	ListByArticle(ctx context.Context, articleID uuid.UUID) ([]model.Comment, error)
}
