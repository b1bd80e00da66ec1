package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/melodexbackend/auth"
	"github.com/princinho/melodexbackend/utils"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("middleware-test-secret")

func newEngine(v *auth.Verifier, perms ...func(auth.Role) bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{AuthMiddleware(v)}
	for _, perm := range perms {
		handlers = append(handlers, RequirePermission(perm))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID": c.GetString("userID"),
			"role":   c.GetString("role"),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func do(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func envelope(t *testing.T, w *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAuthMiddleware(t *testing.T) {
	v := auth.NewVerifier(testSecret, auth.NewBlacklist())
	r := newEngine(v)

	token, err := auth.GenerateToken("u1", "u1@example.com", string(auth.RoleViewer), testSecret, time.Hour)
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		w := do(r, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
		resp := envelope(t, w)
		require.Equal(t, http.StatusUnauthorized, resp.Status)
		require.Nil(t, resp.Data)
		require.Contains(t, resp.Message, "Missing token")
	})

	t.Run("valid token reaches the handler", func(t *testing.T) {
		w := do(r, "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), `"userID":"u1"`)
	})

	t.Run("invalidated token is rejected afterwards", func(t *testing.T) {
		w := do(r, "Bearer "+token)
		require.Equal(t, http.StatusOK, w.Code)

		v.Invalidate(token)

		w = do(r, "Bearer "+token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, envelope(t, w).Message, "invalidated")
	})

	t.Run("expired token is invalid, not revoked", func(t *testing.T) {
		expired, err := auth.GenerateToken("u2", "u2@example.com", string(auth.RoleViewer), testSecret, -time.Minute)
		require.NoError(t, err)

		w := do(r, "Bearer "+expired)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, envelope(t, w).Message, "Invalid token")
	})
}

func TestRequirePermission(t *testing.T) {
	v := auth.NewVerifier(testSecret, auth.NewBlacklist())
	adminOnly := newEngine(v, auth.CanManageUsers)

	mint := func(t *testing.T, role string) string {
		t.Helper()
		token, err := auth.GenerateToken("u1", "u1@example.com", role, testSecret, time.Hour)
		require.NoError(t, err)
		return token
	}

	t.Run("admin is allowed", func(t *testing.T) {
		w := do(adminOnly, "Bearer "+mint(t, string(auth.RoleAdmin)))
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("viewer is forbidden", func(t *testing.T) {
		w := do(adminOnly, "Bearer "+mint(t, string(auth.RoleViewer)))
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("absent role claim is unauthorized, not forbidden", func(t *testing.T) {
		w := do(adminOnly, "Bearer "+mint(t, ""))
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("editor passes the catalog gate but viewer does not", func(t *testing.T) {
		catalog := newEngine(v, auth.CanManageCatalog)

		w := do(catalog, "Bearer "+mint(t, string(auth.RoleEditor)))
		require.Equal(t, http.StatusOK, w.Code)

		w = do(catalog, "Bearer "+mint(t, string(auth.RoleViewer)))
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}
