package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/recipehub/recipehub/pkg/helpers"
	"github.com/recipehub/recipehub/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

// Auth validates the bearer token and injects the caller identity into the
// Gin context. The Authorization header takes precedence over the auth-token
// cookie. Verification is pure signature + expiry, no store lookup.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			response.AbortError[any](c, http.StatusUnauthorized, "missing token", nil)
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortError[any](c, http.StatusUnauthorized, "invalid or expired token", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Next()
	}
}

// TokenFromRequest extracts the bearer token from the Authorization header,
// falling back to the auth-token cookie.
func TokenFromRequest(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if v, err := c.Cookie(helpers.AuthCookieName); err == nil {
		return v
	}
	return ""
}
