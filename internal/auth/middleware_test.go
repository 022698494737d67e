package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)

	resolver := NewResolver(testSecret)
	r := gin.New()

	authed := r.Group("/", Middleware(resolver, log))
	authed.GET("/me", func(c *gin.Context) {
		ident, _ := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": ident.ID, "role": string(ident.Role)})
	})

	admin := r.Group("/admin", Middleware(resolver, log), RequireAdmin())
	admin.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	r.POST("/public", Optional(resolver), func(c *gin.Context) {
		if ident, ok := IdentityFrom(c); ok {
			c.JSON(http.StatusOK, gin.H{"id": ident.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": ""})
	})

	return r
}

func bearerFor(t *testing.T, sub string, role Role) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": string(role),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddlewareAcceptsValidToken(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", bearerFor(t, "user-1", RoleUser))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "user-1")
}

func TestRequireAdminForbidsUser(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", bearerFor(t, "user-1", RoleUser))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", bearerFor(t, "admin-1", RoleAdmin))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestOptionalNeverRejects(t *testing.T) {
	r := newTestRouter(t)

	// Anonymous request passes through.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/public", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// A bad token is ignored rather than rejected.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/public", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// A good token attaches the identity.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/public", nil)
	req.Header.Set("Authorization", bearerFor(t, "user-1", RoleUser))
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "user-1")
}
