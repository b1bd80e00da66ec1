package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/melodexbackend/auth"
	"github.com/princinho/melodexbackend/middleware"
	"github.com/stretchr/testify/require"
)

func TestLogoutRevokesToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	secret := []byte("logout-test-secret")
	verifier := auth.NewVerifier(secret, auth.NewBlacklist())

	r := gin.New()
	authed := r.Group("", middleware.AuthMiddleware(verifier))
	authed.POST("/logout", Logout(verifier))
	authed.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID")})
	})

	token, err := auth.GenerateToken("u1", "u1@example.com", string(auth.RoleViewer), secret, time.Hour)
	require.NoError(t, err)

	do := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	// Token works before logout.
	require.Equal(t, http.StatusOK, do(http.MethodGet, "/whoami").Code)

	// Logout succeeds and revokes.
	require.Equal(t, http.StatusOK, do(http.MethodPost, "/logout").Code)

	// The same token is rejected afterwards, as revoked rather than invalid.
	w := do(http.MethodGet, "/whoami")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "invalidated")

	// A second logout attempt with the revoked token is blocked by the
	// middleware; the registry state is unchanged.
	require.Equal(t, http.StatusUnauthorized, do(http.MethodPost, "/logout").Code)
}
