package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/melodexbackend/auth"
	"github.com/princinho/melodexbackend/utils"
)

// AuthMiddleware validates the bearer token and attaches the authenticated
// identity to the request context. The three failure modes are reported
// distinctly but all map to 401.
func AuthMiddleware(v *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := v.VerifyHeader(c.GetHeader("Authorization"))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrMissingToken):
				utils.AbortError(c, http.StatusUnauthorized, "Unauthorized: Missing token.", nil)
			case errors.Is(err, auth.ErrRevokedToken):
				utils.AbortError(c, http.StatusUnauthorized, "Unauthorized: Token has been invalidated.", nil)
			default:
				utils.AbortError(c, http.StatusUnauthorized, "Unauthorized: Invalid token.", err.Error())
			}
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("token", strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")))
		c.Next()
	}
}

// RequirePermission gates a route on a policy check over the role claim. A
// missing or unknown role is an authentication problem (401); a known role
// failing the check is an authorization one (403).
func RequirePermission(allowed func(auth.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := auth.ParseRole(c.GetString("role"))
		if err != nil {
			utils.AbortError(c, http.StatusUnauthorized, "Unauthorized Access", nil)
			return
		}
		if !allowed(role) {
			utils.AbortError(c, http.StatusForbidden, "Forbidden Access: Insufficient permissions.", nil)
			return
		}
		c.Next()
	}
}
