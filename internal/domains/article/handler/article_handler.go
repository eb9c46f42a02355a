package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"news-portal-backend/internal/domains/article/model"
	"news-portal-backend/internal/domains/article/service"
	"news-portal-backend/internal/shared/middleware"
	"news-portal-backend/internal/shared/response"
	"news-portal-backend/internal/shared/utils"
	"news-portal-backend/pkg/cache"
)

const (
	detailCacheTTL = 10 * time.Minute
	maxImageBytes  = 10 << 20
)

// Handler serves HTTP for the article domain.
type Handler struct {
	service service.ServiceInterface
	cache   cache.Cache
}

func NewHandler(service service.ServiceInterface, cache cache.Cache) *Handler {
	return &Handler{
		service: service,
		cache:   cache,
	}
}

func parsePage(c *gin.Context) int {
	page := 1
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	return page
}

// =====================================================
// PUBLIC FEED
// =====================================================

// ListArticles - GET /articles
// Query params: search, category, page
func (h *Handler) ListArticles(c *gin.Context) {
	req := model.ListArticlesRequest{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Page:     parsePage(c),
	}

	feed, err := h.service.ListFeed(c.Request.Context(), req)
	if err != nil {
		response.InternalServerError(c, "Internal server error")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, feed.Articles, &response.Meta{
		Page:       feed.Page,
		Limit:      feed.PageSize,
		Total:      feed.Total,
		TotalPages: feed.TotalPages,
	})
}

// ListByCategory - GET /categories/:slug/articles
// The slug is matched case-insensitively against the stored category
// text; an unknown slug yields an empty feed, not an error.
func (h *Handler) ListByCategory(c *gin.Context) {
	req := model.ListArticlesRequest{
		Search:   c.Query("search"),
		Category: c.Param("slug"),
		Page:     parsePage(c),
	}

	feed, err := h.service.ListFeed(c.Request.Context(), req)
	if err != nil {
		response.InternalServerError(c, "Internal server error")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, feed.Articles, &response.Meta{
		Page:       feed.Page,
		Limit:      feed.PageSize,
		Total:      feed.Total,
		TotalPages: feed.TotalPages,
	})
}

// GetArticleDetail - GET /articles/:id
func (h *Handler) GetArticleDetail(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidUUID(id) {
		response.BadRequest(c, "invalid article id")
		return
	}

	// Check cache first.
	cacheKey := "article:detail:" + id
	var cached model.Article
	found, err := h.cache.Get(c.Request.Context(), cacheKey, &cached)
	if found {
		response.Success(c, http.StatusOK, &cached)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("key", cacheKey).Msg("cache error")
	}

	article, err := h.service.GetDetail(c.Request.Context(), utils.ParseStringToUUID(id))
	if err != nil {
		if errors.Is(err, model.ErrArticleNotFound) {
			response.NotFound(c, "Article not found")
			return
		}
		response.InternalServerError(c, "Internal server error")
		return
	}

	if err := h.cache.Set(c.Request.Context(), cacheKey, article, detailCacheTTL); err != nil {
		log.Error().Err(err).Str("key", cacheKey).Msg("failed to cache article detail")
	}

	response.Success(c, http.StatusOK, article)
}

// GetRelatedArticles - GET /articles/:id/related
func (h *Handler) GetRelatedArticles(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidUUID(id) {
		response.BadRequest(c, "invalid article id")
		return
	}

	related, err := h.service.Related(c.Request.Context(), utils.ParseStringToUUID(id))
	if err != nil {
		if errors.Is(err, model.ErrArticleNotFound) {
			response.NotFound(c, "Article not found")
			return
		}
		response.InternalServerError(c, "Internal server error")
		return
	}

	response.Success(c, http.StatusOK, related)
}

// =====================================================
// ADMIN
// =====================================================

// ListAllArticles - GET /admin/articles
// Unfiltered: drafts are visible here and only here.
func (h *Handler) ListAllArticles(c *gin.Context) {
	req := model.ListArticlesRequest{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Page:     parsePage(c),
	}

	feed, err := h.service.ListAll(c.Request.Context(), req)
	if err != nil {
		response.InternalServerError(c, "Internal server error")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, feed.Articles, &response.Meta{
		Page:       feed.Page,
		Limit:      feed.PageSize,
		Total:      feed.Total,
		TotalPages: feed.TotalPages,
	})
}

// CreateArticle - POST /admin/articles
func (h *Handler) CreateArticle(c *gin.Context) {
	var req model.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data")
		return
	}

	authorID := middleware.UserIDFromContext(c)

	article, err := h.service.Create(c.Request.Context(), authorID, req)
	if err != nil {
		if isValidationError(err) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", err.Error())
			return
		}
		response.InternalServerError(c, "Internal server error")
		return
	}

	response.Success(c, http.StatusCreated, article)
}

// UpdateArticle - PUT /admin/articles/:id
func (h *Handler) UpdateArticle(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidUUID(id) {
		response.BadRequest(c, "invalid article id")
		return
	}

	var req model.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data")
		return
	}

	article, err := h.service.Update(c.Request.Context(), utils.ParseStringToUUID(id), req)
	if err != nil {
		if errors.Is(err, model.ErrArticleNotFound) {
			response.NotFound(c, "Article not found")
			return
		}
		if isValidationError(err) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", err.Error())
			return
		}
		response.InternalServerError(c, "Internal server error")
		return
	}

	// Drop the stale cached detail. The next read repopulates it.
	if err := h.cache.Delete(c.Request.Context(), "article:detail:"+id); err != nil {
		log.Error().Err(err).Str("article_id", id).Msg("failed to invalidate article cache")
	}

	response.Success(c, http.StatusOK, article)
}

// DeleteArticle - DELETE /admin/articles/:id
func (h *Handler) DeleteArticle(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidUUID(id) {
		response.BadRequest(c, "invalid article id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), utils.ParseStringToUUID(id)); err != nil {
		if errors.Is(err, model.ErrArticleNotFound) {
			response.NotFound(c, "Article not found")
			return
		}
		response.InternalServerError(c, "Internal server error")
		return
	}

	if err := h.cache.Delete(c.Request.Context(), "article:detail:"+id); err != nil {
		log.Error().Err(err).Str("article_id", id).Msg("failed to invalidate article cache")
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// UploadImage - POST /admin/articles/image
// Multipart field "image". Returns the public URL the authoring form
// stores on the article row.
func (h *Handler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required")
		return
	}
	if fileHeader.Size > maxImageBytes {
		response.BadRequest(c, "image exceeds maximum size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalServerError(c, "failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.InternalServerError(c, "failed to read upload")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	uploaderID := middleware.UserIDFromContext(c)
	url, err := h.service.UploadImage(c.Request.Context(), uploaderID, fileHeader.Filename, data, contentType)
	if err != nil {
		response.InternalServerError(c, "failed to upload image")
		return
	}

	response.Success(c, http.StatusCreated, model.UploadImageResponse{URL: url})
}

func isValidationError(err error) bool {
	var verrs validation.Errors
	return errors.As(err, &verrs)
}
