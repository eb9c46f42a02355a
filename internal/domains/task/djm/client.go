package djm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// =====================================================
// DJM WEBHOOK CLIENT
// =====================================================

// Client forwards document-generation jobs to the external DJM
// webhook. The webhook takes a PR file and a template file and
// answers with a map of generated file names to download URLs.
type Client struct {
	uploadURL  string
	httpClient *http.Client
}

func NewClient(uploadURL string) *Client {
	return &Client{
		uploadURL: uploadURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FilePart is one uploaded file forwarded to the webhook.
type FilePart struct {
	FieldName string
	FileName  string
	Data      []byte
}

// ErrBadStatus wraps a non-2xx webhook answer.
type ErrBadStatus struct {
	StatusCode int
	Body       string
}

func (e *ErrBadStatus) Error() string {
	return fmt.Sprintf("DJM webhook returned status %d: %s", e.StatusCode, e.Body)
}

// Generate posts both files as multipart form data and decodes the
// name to download-URL mapping from the response.
func (c *Client) Generate(ctx context.Context, prFile, templateFile FilePart) (map[string]string, error) {
	if c.uploadURL == "" {
		return nil, fmt.Errorf("DJM webhook URL is not configured")
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, part := range []FilePart{prFile, templateFile} {
		fw, err := writer.CreateFormFile(part.FieldName, part.FileName)
		if err != nil {
			return nil, fmt.Errorf("failed to build multipart body: %w", err)
		}
		if _, err := fw.Write(part.Data); err != nil {
			return nil, fmt.Errorf("failed to build multipart body: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.uploadURL, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call DJM webhook: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ErrBadStatus{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	var files map[string]string
	if err := json.Unmarshal(bodyBytes, &files); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return files, nil
}
