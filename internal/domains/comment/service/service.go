package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	articlerepo "news-portal-backend/internal/domains/article/repository"
	"news-portal-backend/internal/domains/comment/model"
	"news-portal-backend/internal/domains/comment/repository"
)

type ServiceInterface interface {
	Create(ctx context.Context, articleID, authorID uuid.UUID, req model.CreateCommentRequest) (*model.Comment, error)
	ListByArticle(ctx context.Context, articleID uuid.UUID) ([]model.Comment, error)
}

type commentService struct {
	repo     repository.CommentRepository
	articles articlerepo.ArticleRepository
}

func NewCommentService(repo repository.CommentRepository, articles articlerepo.ArticleRepository) ServiceInterface {
	return &commentService{repo: repo, articles: articles}
}

// Create stores a comment on an existing article. Any authenticated
// user may comment; anyone may read.
func (s *commentService) Create(ctx context.Context, articleID, authorID uuid.UUID, req model.CreateCommentRequest) (*model.Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The article must exist; a dangling comment is useless.
	if _, err := s.articles.GetByID(ctx, articleID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:        uuid.New(),
		ArticleID: articleID,
		AuthorID:  authorID,
		Content:   strings.TrimSpace(req.Content),
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) ListByArticle(ctx context.Context, articleID uuid.UUID) ([]model.Comment, error) {
	// Verify the article exists so a bad id yields 404, not [].
	if _, err := s.articles.GetByID(ctx, articleID); err != nil {
		return nil, err
	}

	return s.repo.ListByArticle(ctx, articleID)
}
