package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/registrar-labs/course-registry-api/internal/models"
	"github.com/registrar-labs/course-registry-api/internal/service"
	"github.com/registrar-labs/course-registry-api/pkg/config"
)

func newTestRouter(t *testing.T, scopes []string, requiredScope string) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth := service.NewAuthService(config.JWTConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "course-registry",
	}, zap.NewNop())

	token, err := auth.IssueToken("registrar", scopes)
	require.NoError(t, err)

	router := gin.New()
	router.POST("/guarded", JWT(auth), RequireScope(requiredScope), func(c *gin.Context) {
		claims := c.MustGet(ContextClaimsKey).(*models.Claims)
		c.JSON(http.StatusOK, gin.H{"subject": claims.Subject})
	})
	return router, token
}

func TestJWTAllowsValidToken(t *testing.T) {
	router, token := newTestRouter(t, []string{models.ScopeManageStudents}, models.ScopeManageStudents)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "registrar")
}

func TestJWTRejectsMissingHeader(t *testing.T) {
	router, _ := newTestRouter(t, []string{models.ScopeManageStudents}, models.ScopeManageStudents)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/guarded", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTRejectsMalformedHeader(t *testing.T) {
	router, token := newTestRouter(t, []string{models.ScopeManageStudents}, models.ScopeManageStudents)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/guarded", nil)
	req.Header.Set("Authorization", token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTRejectsTamperedToken(t *testing.T) {
	router, token := newTestRouter(t, []string{models.ScopeManageStudents}, models.ScopeManageStudents)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireScopeRejectsWrongScope(t *testing.T) {
	router, token := newTestRouter(t, []string{models.ScopeManageCourses}, models.ScopeManageStudents)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
