package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-portal-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(jwtManager *jwt.Manager) *gin.Engine {
	r := gin.New()
	r.GET("/admin",
		AuthMiddleware(jwtManager),
		AdminMiddleware(),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	return r
}

func TestAdminRouteRejectsAnonymous(t *testing.T) {
	r := protectedRouter(jwt.NewManager("test-secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRouteRejectsUserRole(t *testing.T) {
	m := jwt.NewManager("test-secret", time.Hour)
	r := protectedRouter(m)

	token, err := m.GenerateToken(uuid.New().String(), "budi@example.com", "user")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminRouteAllowsAdminRole(t *testing.T) {
	m := jwt.NewManager("test-secret", time.Hour)
	r := protectedRouter(m)

	token, err := m.GenerateToken(uuid.New().String(), "admin@example.com", "admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	r := protectedRouter(jwt.NewManager("test-secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
