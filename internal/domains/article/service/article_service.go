package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"

	"news-portal-backend/internal/domains/article/model"
	"news-portal-backend/internal/domains/article/repository"
	"news-portal-backend/internal/infrastructure/storage"
	"news-portal-backend/internal/shared/pagination"
	"news-portal-backend/internal/shared/utils"
)

const relatedLimit = 4

type articleService struct {
	repo      repository.ArticleRepository
	storage   Uploader
	sanitizer *bluemonday.Policy
}

func NewArticleService(repo repository.ArticleRepository, storage Uploader) ServiceInterface {
	return &articleService{
		repo:    repo,
		storage: storage,
		// UGC policy: article bodies are rendered as HTML, so strip
		// anything beyond ordinary formatting before it reaches the row.
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// =====================================================
// PUBLIC FEED
// =====================================================

// ListFeed composes the public feed query: published only, optional
// category and text filter, fixed page size. A store failure degrades
// to an empty page with a logged error; callers cannot tell "error"
// from "genuinely empty" through rows/count, per the feed contract.
func (s *articleService) ListFeed(ctx context.Context, req model.ListArticlesRequest) (model.FeedResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}

	filter := model.FeedFilter{
		PublishedOnly: true,
		Category:      req.Category,
		Search:        req.Search,
		Page:          page,
		PageSize:      pagination.DefaultPageSize,
	}

	articles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		log.Error().Err(err).
			Str("search", req.Search).
			Str("category", req.Category).
			Int("page", page).
			Msg("feed query failed")
		return model.NewFeedResponse(nil, page, filter.PageSize, 0), nil
	}

	return model.NewFeedResponse(articles, page, filter.PageSize, total), nil
}

func (s *articleService) GetDetail(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *articleService) Related(ctx context.Context, id uuid.UUID) ([]model.Article, error) {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.Category == nil || *article.Category == "" {
		return []model.Article{}, nil
	}

	related, err := s.repo.Related(ctx, id, *article.Category, relatedLimit)
	if err != nil {
		log.Error().Err(err).Str("article_id", id.String()).Msg("related query failed")
		return []model.Article{}, nil
	}
	return related, nil
}

// =====================================================
// ADMIN
// =====================================================

// ListAll is the admin listing: unpublished drafts included, store
// errors propagated so the console can show them.
func (s *articleService) ListAll(ctx context.Context, req model.ListArticlesRequest) (model.FeedResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}

	filter := model.FeedFilter{
		PublishedOnly: false,
		Category:      req.Category,
		Search:        req.Search,
		Page:          page,
		PageSize:      pagination.DefaultPageSize,
	}

	articles, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return model.FeedResponse{}, fmt.Errorf("list articles: %w", err)
	}

	return model.NewFeedResponse(articles, page, filter.PageSize, total), nil
}

func (s *articleService) Create(ctx context.Context, authorID uuid.UUID, req model.CreateArticleRequest) (*model.Article, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	article := &model.Article{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(req.Title),
		Body:      s.sanitizer.Sanitize(req.Body),
		Published: req.Published,
		Tags:      utils.SplitTags(req.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if req.Category != "" {
		category := req.Category
		article.Category = &category
	}
	if req.ImageURL != "" {
		imageURL := req.ImageURL
		article.ImageURL = &imageURL
	}
	if authorID != uuid.Nil {
		article.AuthorID = &authorID
	}

	if err := s.repo.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	return article, nil
}

func (s *articleService) Update(ctx context.Context, id uuid.UUID, req model.UpdateArticleRequest) (*model.Article, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	article.Title = strings.TrimSpace(req.Title)
	article.Body = s.sanitizer.Sanitize(req.Body)
	article.Published = req.Published
	article.Tags = utils.SplitTags(req.Tags)
	article.UpdatedAt = time.Now()

	article.Category = nil
	if req.Category != "" {
		category := req.Category
		article.Category = &category
	}
	article.ImageURL = nil
	if req.ImageURL != "" {
		imageURL := req.ImageURL
		article.ImageURL = &imageURL
	}

	if err := s.repo.Update(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

func (s *articleService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// UploadImage is step one of the two-step authoring upload: store the
// binary under a collision-resistant key and hand back the public URL
// the article row will persist.
func (s *articleService) UploadImage(ctx context.Context, uploaderID uuid.UUID, filename string, data []byte, contentType string) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}

	key := fmt.Sprintf("%s/%d_%s%s", storage.PrefixArticles, time.Now().Unix(), uploaderID.String(), ext)

	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return "", fmt.Errorf("upload article image: %w", err)
	}

	return url, nil
}
