package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T, issuer *TokenIssuer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/me", RequireAuth(issuer), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": ClaimsFromContext(c).Subject})
	})
	router.GET("/admin", RequireAuth(issuer), RequireRole("Admin"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequireAuthMissingHeader(t *testing.T) {
	issuer, err := NewTokenIssuer("mw-secret", time.Hour)
	require.NoError(t, err)
	router := setupRouter(t, issuer)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	issuer, err := NewTokenIssuer("mw-secret", time.Hour)
	require.NoError(t, err)
	router := setupRouter(t, issuer)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	issuer, err := NewTokenIssuer("mw-secret", time.Hour)
	require.NoError(t, err)
	router := setupRouter(t, issuer)

	user := testUser()
	token, err := issuer.Issue(user)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), user.ID)
}

func TestRequireRole(t *testing.T) {
	issuer, err := NewTokenIssuer("mw-secret", time.Hour)
	require.NoError(t, err)
	router := setupRouter(t, issuer)

	admin := testUser()
	adminToken, err := issuer.Issue(admin)
	require.NoError(t, err)

	plain := testUser()
	plain.Roles = nil
	plainToken, err := issuer.Issue(plain)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+plainToken)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
