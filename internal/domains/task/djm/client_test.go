package djm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filePart(field, name, content string) FilePart {
	return FilePart{FieldName: field, FileName: name, Data: []byte(content)}
}

func TestGenerateSendsBothMultipartParts(t *testing.T) {
	var gotPR, gotTemplate string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		pr, _, err := r.FormFile("pr_file")
		require.NoError(t, err)
		defer pr.Close()
		prBytes, _ := io.ReadAll(pr)
		gotPR = string(prBytes)

		tmpl, tmplHeader, err := r.FormFile("template_file")
		require.NoError(t, err)
		defer tmpl.Close()
		tmplBytes, _ := io.ReadAll(tmpl)
		gotTemplate = string(tmplBytes)

		assert.Equal(t, "template.docx", tmplHeader.Filename)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"DJM_2024_001.docx": "https://files.example.com/DJM_2024_001.docx",
			"DJM_2024_002.docx": "https://files.example.com/DJM_2024_002.docx",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	files, err := client.Generate(context.Background(),
		filePart("pr_file", "pr.xlsx", "pr-content"),
		filePart("template_file", "template.docx", "template-content"),
	)
	require.NoError(t, err)

	assert.Equal(t, "pr-content", gotPR)
	assert.Equal(t, "template-content", gotTemplate)
	assert.Equal(t, map[string]string{
		"DJM_2024_001.docx": "https://files.example.com/DJM_2024_001.docx",
		"DJM_2024_002.docx": "https://files.example.com/DJM_2024_002.docx",
	}, files)
}

func TestGenerateNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "template invalid", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Generate(context.Background(),
		filePart("pr_file", "pr.xlsx", "x"),
		filePart("template_file", "template.docx", "y"),
	)

	var badStatus *ErrBadStatus
	require.ErrorAs(t, err, &badStatus)
	assert.Equal(t, http.StatusUnprocessableEntity, badStatus.StatusCode)
}

func TestGenerateInvalidResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Generate(context.Background(),
		filePart("pr_file", "pr.xlsx", "x"),
		filePart("template_file", "template.docx", "y"),
	)
	assert.Error(t, err)
}

func TestGenerateWithoutConfiguredURL(t *testing.T) {
	client := NewClient("")

	_, err := client.Generate(context.Background(),
		filePart("pr_file", "pr.xlsx", "x"),
		filePart("template_file", "template.docx", "y"),
	)
	assert.Error(t, err)
}
