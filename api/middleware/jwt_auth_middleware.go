package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/metalvault/metalvault/api/controller"
	"github.com/metalvault/metalvault/util/tokenutil"
)

// ContextUsername 认证通过后用户名在 gin 上下文中的键
const ContextUsername = "x-username"

func JwtAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			controller.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
			return
		}

		username, err := tokenutil.ParseAccessToken(strings.TrimSpace(token), secret)
		if err != nil {
			controller.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
			return
		}
		c.Set(ContextUsername, username)
		c.Next()
	}
}
