package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func record(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)
	return w
}

func TestSuccessEnvelope(t *testing.T) {
	w := record(func(c *gin.Context) {
		Success(c, http.StatusOK, gin.H{"title": "Berita"})
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.JSONEq(t, `true`, string(body["success"]))
	assert.Contains(t, body, "data")
	assert.NotContains(t, body, "error")
}

func TestErrorEnvelope(t *testing.T) {
	w := record(func(c *gin.Context) {
		NotFound(c, "article not found")
	})

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "article not found", resp.Error.Message)
}

func TestSuccessWithMetaCarriesPagination(t *testing.T) {
	w := record(func(c *gin.Context) {
		SuccessWithMeta(c, http.StatusOK, []string{}, &Meta{
			Page:       2,
			Limit:      10,
			Total:      35,
			TotalPages: 4,
		})
	})

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 35, resp.Meta.Total)
	assert.Equal(t, 4, resp.Meta.TotalPages)
}
