package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"news-portal-backend/internal/shared/pagination"
)

// FeedFilter is the repository-level query description built from UI
// filter state.
type FeedFilter struct {
	PublishedOnly bool   // always true on public paths
	Category      string // optional; matched case-insensitively against stored text
	Search        string // optional; trimmed-empty means "no text filter"
	Page          int    // 1-based
	PageSize      int
}

// ListArticlesRequest carries the public feed query parameters.
type ListArticlesRequest struct {
	Search   string
	Category string
	Page     int
}

// CreateArticleRequest is the authoring form payload. Tags arrive as a
// single comma-separated string.
type CreateArticleRequest struct {
	Title     string `json:"title" binding:"required"`
	Body      string `json:"body" binding:"required"`
	Category  string `json:"category"`
	Tags      string `json:"tags"`
	ImageURL  string `json:"image_url"`
	Published bool   `json:"published"`
}

func (r CreateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(3, 300),
		),
		validation.Field(&r.Body,
			validation.Required.Error("body is required"),
		),
		validation.Field(&r.Category,
			validation.When(r.Category != "", validation.Length(2, 50)),
		),
	)
}

// UpdateArticleRequest mirrors the create payload; edits are
// last-write-wins with no concurrency token.
type UpdateArticleRequest struct {
	Title     string `json:"title" binding:"required"`
	Body      string `json:"body" binding:"required"`
	Category  string `json:"category"`
	Tags      string `json:"tags"`
	ImageURL  string `json:"image_url"`
	Published bool   `json:"published"`
}

func (r UpdateArticleRequest) Validate() error {
	return CreateArticleRequest(r).Validate()
}

// FeedResponse is a render-ready page of articles.
type FeedResponse struct {
	Articles   []Article `json:"articles"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	Total      int       `json:"total"`
	TotalPages int       `json:"total_pages"`
}

func NewFeedResponse(articles []Article, page, pageSize, total int) FeedResponse {
	if articles == nil {
		articles = []Article{}
	}
	return FeedResponse{
		Articles:   articles,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: pagination.TotalPages(total, pageSize),
	}
}

// UploadImageResponse returns the resolved public URL of an uploaded
// cover image.
type UploadImageResponse struct {
	URL string `json:"url"`
}
