package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	articlemodel "news-portal-backend/internal/domains/article/model"
	"news-portal-backend/internal/domains/comment/model"
	"news-portal-backend/internal/domains/comment/service"
	"news-portal-backend/internal/shared/middleware"
	"news-portal-backend/internal/shared/response"
	"news-portal-backend/internal/shared/utils"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListComments - GET /articles/:id/comments
func (h *Handler) ListComments(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidUUID(id) {
		response.BadRequest(c, "invalid article id")
		return
	}

	comments, err := h.service.ListByArticle(c.Request.Context(), utils.ParseStringToUUID(id))
	if err != nil {
		if errors.Is(err, articlemodel.ErrArticleNotFound) {
			response.NotFound(c, "Article not found")
			return
		}
		response.InternalServerError(c, "Internal server error")
		return
	}

	response.Success(c, http.StatusOK, comments)
}

// CreateComment - POST /articles/:id/comments (auth required)
func (h *Handler) CreateComment(c *gin.Context) {
	id := c.Param("id")
	if !utils.IsValidUUID(id) {
		response.BadRequest(c, "invalid article id")
		return
	}

	var req model.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data")
		return
	}

	authorID := middleware.UserIDFromContext(c)

	comment, err := h.service.Create(c.Request.Context(), utils.ParseStringToUUID(id), authorID, req)
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", verrs)
		case errors.Is(err, articlemodel.ErrArticleNotFound):
			response.NotFound(c, "Article not found")
		default:
			response.InternalServerError(c, "Internal server error")
		}
		return
	}

	response.Success(c, http.StatusCreated, comment)
}
