package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"news-portal-backend/internal/domains/ad/model"
	"news-portal-backend/internal/domains/ad/service"
	"news-portal-backend/internal/shared/response"
)

const maxCreativeBytes = 10 << 20

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListAds - GET /ads?slots=home_banner,news_sidebar
// Public: render slots fetch their creatives here.
func (h *Handler) ListAds(c *gin.Context) {
	var slots []string
	if raw := c.Query("slots"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				slots = append(slots, s)
			}
		}
	}

	ads, err := h.service.ListBySlots(c.Request.Context(), slots)
	if err != nil {
		if errors.Is(err, model.ErrUnknownSlot) {
			response.BadRequest(c, "unknown ad slot")
			return
		}
		response.InternalServerError(c, "Internal server error")
		return
	}

	response.Success(c, http.StatusOK, ads)
}

// UpdateAd - PUT /admin/ads/:slot
func (h *Handler) UpdateAd(c *gin.Context) {
	slot := c.Param("slot")

	var req model.UpdateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data")
		return
	}

	ad, err := h.service.Update(c.Request.Context(), slot, req)
	if err != nil {
		if errors.Is(err, model.ErrUnknownSlot) {
			response.BadRequest(c, "unknown ad slot")
			return
		}
		response.InternalServerError(c, "Internal server error")
		return
	}

	response.Success(c, http.StatusOK, ad)
}

// UploadCreative - POST /admin/ads/:slot/image
// Multipart field "image". Uploads the creative and upserts the slot
// with the returned URL.
func (h *Handler) UploadCreative(c *gin.Context) {
	slot := c.Param("slot")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required")
		return
	}
	if fileHeader.Size > maxCreativeBytes {
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

	url, err := h.service.UploadCreative(c.Request.Context(), slot, fileHeader.Filename, data, contentType)
	if err != nil {
		if errors.Is(err, model.ErrUnknownSlot) {
			response.BadRequest(c, "unknown ad slot")
			return
		}
		response.InternalServerError(c, "failed to upload creative")
		return
	}

	// Persist the new creative on the slot, keeping any redirect URL
	// the caller sent along.
	ad, err := h.service.Update(c.Request.Context(), slot, model.UpdateAdRequest{
		ImageURL:    url,
		RedirectURL: c.PostForm("redirect_url"),
	})
	if err != nil {
		response.InternalServerError(c, "failed to update ad slot")
		return
	}

	response.Success(c, http.StatusCreated, ad)
}
