package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"news-portal-backend/internal/domains/task/djm"
	"news-portal-backend/internal/shared/response"
)

const maxTaskFileBytes = 20 << 20

type Handler struct {
	djmClient *djm.Client
}

func NewHandler(djmClient *djm.Client) *Handler {
	return &Handler{djmClient: djmClient}
}

// CreateDJM - POST /tasks/djm
// Forwards the PR and template files to the DJM webhook and returns
// the generated-file name to download-URL mapping verbatim.
func (h *Handler) CreateDJM(c *gin.Context) {
	prFile, err := readFilePart(c, "pr_file")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	templateFile, err := readFilePart(c, "template_file")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	files, err := h.djmClient.Generate(c.Request.Context(), prFile, templateFile)
	if err != nil {
		var badStatus *djm.ErrBadStatus
		if errors.As(err, &badStatus) {
			response.BadGateway(c, "DJM webhook rejected the request")
			return
		}
		response.BadGateway(c, "DJM webhook is unreachable")
		return
	}

	response.Success(c, http.StatusOK, files)
}

func readFilePart(c *gin.Context, field string) (djm.FilePart, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return djm.FilePart{}, errors.New(field + " is required")
	}
	if fileHeader.Size > maxTaskFileBytes {
		return djm.FilePart{}, errors.New(field + " exceeds maximum size")
	}

	data, err := readAll(fileHeader)
	if err != nil {
		return djm.FilePart{}, errors.New("failed to read " + field)
	}

	return djm.FilePart{
		FieldName: field,
		FileName:  fileHeader.Filename,
		Data:      data,
	}, nil
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
